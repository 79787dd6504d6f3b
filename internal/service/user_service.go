package service

import (
	"context"

	"verser/internal/models"
	"verser/internal/repository"
)

// UserService provides user profile, settings and follow-graph logic.
type UserService struct {
	userRepo repository.UserRepository
	notifier NotificationWriter
}

// NotificationWriter is the slice of NotificationService the user service
// needs to record follow events.
type NotificationWriter interface {
	NotifyFollow(ctx context.Context, targetID, followerID uint) error
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, notifier NotificationWriter) *UserService {
	return &UserService{userRepo: userRepo, notifier: notifier}
}

// GetProfile returns a user as seen by viewerID: privacy flags hide
// last-seen and online status from everyone but the owner.
func (s *UserService) GetProfile(ctx context.Context, userID, viewerID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if viewerID != userID {
		user.Sanitize()
	}
	return user, nil
}

// UpdateSettingsInput carries the PATCHable profile fields. Nil pointers
// leave the field unchanged.
type UpdateSettingsInput struct {
	Bio              *string `json:"bio"`
	About            *string `json:"about"`
	Avatar           *string `json:"avatar"`
	ShowLastSeen     *bool   `json:"show_last_seen"`
	ShowOnlineStatus *bool   `json:"show_online_status"`
}

// UpdateSettings applies a partial settings update and returns the fresh
// record.
func (s *UserService) UpdateSettings(ctx context.Context, userID uint, in UpdateSettingsInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.About != nil {
		updates["about"] = *in.About
	}
	if in.Avatar != nil {
		updates["avatar"] = *in.Avatar
	}
	if in.ShowLastSeen != nil {
		updates["show_last_seen"] = *in.ShowLastSeen
	}
	if in.ShowOnlineStatus != nil {
		updates["show_online_status"] = *in.ShowOnlineStatus
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateSettings(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(ctx, userID)
}

// Follow records actorID following targetID. Duplicate follows are
// idempotent; following yourself is rejected.
func (s *UserService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}
	// Target must exist.
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	created, err := s.userRepo.Follow(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if created && s.notifier != nil {
		// Notification failures never fail the follow.
		_ = s.notifier.NotifyFollow(ctx, targetID, actorID)
	}
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone you don't follow is
// a no-op.
func (s *UserService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	_, err := s.userRepo.Unfollow(ctx, actorID, targetID)
	return err
}

// SetStatus updates presence and returns the stored record.
func (s *UserService) SetStatus(ctx context.Context, userID uint, status models.UserStatus) error {
	switch status {
	case models.UserStatusOnline, models.UserStatusOffline, models.UserStatusAway:
	default:
		return models.NewValidationError("Status must be 'online', 'offline' or 'away'")
	}
	return s.userRepo.UpdateStatus(ctx, userID, status)
}
