package repository

import (
	"context"
	"errors"

	"verser/internal/cache"
	"verser/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository defines persistence operations for communities.
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	List(ctx context.Context, category string, limit, offset int) ([]*models.Community, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository returns a new CommunityRepository implementation.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	if err := r.db.WithContext(ctx).Create(community).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Community name already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	key := cache.CommunityKey(id)

	err := cache.Aside(ctx, key, &community, cache.CommunityTTL, func() error {
		if err := r.db.WithContext(ctx).First(&community, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Community", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) List(ctx context.Context, category string, limit, offset int) ([]*models.Community, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var communities []*models.Community
	err := q.Order("member_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&communities).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return communities, nil
}
