package service

import (
	"context"
	"encoding/json"

	"verser/internal/models"
	"verser/internal/repository"
)

// NotificationService records and serves in-app notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) record(ctx context.Context, userID uint, kind models.NotificationKind, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.notificationRepo.Create(ctx, &models.Notification{
		UserID:  userID,
		Kind:    kind,
		Payload: data,
	})
}

// NotifyFollow records that followerID followed targetID.
func (s *NotificationService) NotifyFollow(ctx context.Context, targetID, followerID uint) error {
	return s.record(ctx, targetID, models.NotificationKindFollow, map[string]uint{
		"follower_id": followerID,
	})
}

// NotifyLike records that actorID liked postID.
func (s *NotificationService) NotifyLike(ctx context.Context, postOwnerID, actorID, postID uint) error {
	return s.record(ctx, postOwnerID, models.NotificationKindLike, map[string]uint{
		"user_id": actorID,
		"post_id": postID,
	})
}

// NotifyRepost records that actorID reposted postID.
func (s *NotificationService) NotifyRepost(ctx context.Context, postOwnerID, actorID, postID uint) error {
	return s.record(ctx, postOwnerID, models.NotificationKindRepost, map[string]uint{
		"user_id": actorID,
		"post_id": postID,
	})
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead marks the given ids read; with no ids, everything unread.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return s.notificationRepo.MarkAllRead(ctx, userID)
	}
	return s.notificationRepo.MarkRead(ctx, userID, ids)
}
