package service

import (
	"context"
	"strings"

	"verser/internal/models"
	"verser/internal/repository"
)

// FeedService provides post creation, feed filtering and engagement logic.
type FeedService struct {
	postRepo repository.PostRepository
	notifier NotificationWriterPosts
}

// NotificationWriterPosts records like/repost events for post owners.
type NotificationWriterPosts interface {
	NotifyLike(ctx context.Context, postOwnerID, actorID, postID uint) error
	NotifyRepost(ctx context.Context, postOwnerID, actorID, postID uint) error
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, notifier NotificationWriterPosts) *FeedService {
	return &FeedService{postRepo: postRepo, notifier: notifier}
}

// CreatePostInput is the input for creating a post.
type CreatePostInput struct {
	UserID      uint
	Type        models.PostType
	Content     string
	MediaURL    string
	Tags        []string
	CommunityID *uint
	Sentiment   models.Sentiment
}

const (
	maxPostContentLen = 5000
	maxTagCount       = 10
	maxTagLen         = 40
)

// CreatePost validates and persists a feed item.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Type == "" {
		in.Type = models.PostTypeText
	}
	switch in.Type {
	case models.PostTypeText, models.PostTypeImage, models.PostTypeVideo, models.PostTypeShort:
	default:
		return nil, models.NewValidationError("Post type must be 'text', 'image', 'video' or 'short'")
	}
	if in.Type == models.PostTypeText && in.Content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if in.Type != models.PostTypeText && in.MediaURL == "" {
		return nil, models.NewValidationError("Media posts require a media_url")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Post content too long (max 5000 characters)")
	}
	if len(in.Tags) > maxTagCount {
		return nil, models.NewValidationError("Too many tags (max 10)")
	}

	// Tags keep their order; empty and oversized entries are rejected.
	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, models.NewValidationError("Tags cannot be empty")
		}
		if len(tag) > maxTagLen {
			return nil, models.NewValidationError("Tag too long (max 40 characters)")
		}
		tags = append(tags, tag)
	}

	if in.Sentiment == "" {
		in.Sentiment = models.SentimentNeutral
	}
	switch in.Sentiment {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		return nil, models.NewValidationError("Sentiment must be 'positive', 'negative' or 'neutral'")
	}

	post := &models.Post{
		UserID:      in.UserID,
		Type:        in.Type,
		Content:     in.Content,
		MediaURL:    in.MediaURL,
		Tags:        tags,
		CommunityID: in.CommunityID,
		Sentiment:   in.Sentiment,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns one post by id.
func (s *FeedService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// ListFeed returns posts matching the filter, newest first.
func (s *FeedService) ListFeed(ctx context.Context, filter repository.FeedFilter) ([]*models.Post, error) {
	if filter.Type != "" {
		switch filter.Type {
		case models.PostTypeText, models.PostTypeImage, models.PostTypeVideo, models.PostTypeShort:
		default:
			return nil, models.NewValidationError("Unknown post type filter")
		}
	}
	return s.postRepo.List(ctx, filter)
}

// Like records a like. Duplicate likes are idempotent: one row, one counter
// increment, no error.
func (s *FeedService) Like(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	created, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return err
	}
	if created && s.notifier != nil && post.UserID != userID {
		_ = s.notifier.NotifyLike(ctx, post.UserID, userID, postID)
	}
	return nil
}

// Unlike removes a like; a missing like is a no-op.
func (s *FeedService) Unlike(ctx context.Context, userID, postID uint) error {
	_, err := s.postRepo.Unlike(ctx, userID, postID)
	return err
}

// Repost duplicates a post into the user's feed and bumps the original's
// counter.
func (s *FeedService) Repost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	repost, err := s.postRepo.Repost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil && repost.OriginalPostID != nil {
		if original, err := s.postRepo.GetByID(ctx, *repost.OriginalPostID); err == nil && original.UserID != userID {
			_ = s.notifier.NotifyRepost(ctx, original.UserID, userID, original.ID)
		}
	}
	return repost, nil
}
