package service

import (
	"context"

	"verser/internal/models"
	"verser/internal/repository"
)

// CommunityService provides community browsing and creation logic.
type CommunityService struct {
	communityRepo repository.CommunityRepository
	postRepo      repository.PostRepository
}

// NewCommunityService returns a new CommunityService.
func NewCommunityService(communityRepo repository.CommunityRepository, postRepo repository.PostRepository) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, postRepo: postRepo}
}

// CreateCommunityInput is the input for creating a community.
type CreateCommunityInput struct {
	UserID      uint
	Name        string
	Description string
	Avatar      string
	Banner      string
	Category    string
}

// CreateCommunity validates and persists a community.
func (s *CommunityService) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.Community, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Community name is required")
	}
	if len(in.Name) > 60 {
		return nil, models.NewValidationError("Community name too long (max 60 characters)")
	}

	community := &models.Community{
		Name:        in.Name,
		Description: in.Description,
		Avatar:      in.Avatar,
		Banner:      in.Banner,
		Category:    in.Category,
		CreatedBy:   in.UserID,
		MemberCount: 1,
	}
	if err := s.communityRepo.Create(ctx, community); err != nil {
		return nil, err
	}
	return community, nil
}

// GetCommunity returns one community by id.
func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*models.Community, error) {
	return s.communityRepo.GetByID(ctx, id)
}

// ListCommunities returns communities, optionally filtered by category.
func (s *CommunityService) ListCommunities(ctx context.Context, category string, limit, offset int) ([]*models.Community, error) {
	return s.communityRepo.List(ctx, category, limit, offset)
}

// ListCommunityPosts returns a community's posts, newest first.
func (s *CommunityService) ListCommunityPosts(ctx context.Context, communityID uint, limit, offset int) ([]*models.Post, error) {
	// 404 for unknown communities rather than an empty feed.
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.postRepo.List(ctx, repository.FeedFilter{
		CommunityID: communityID,
		Limit:       limit,
		Offset:      offset,
	})
}
