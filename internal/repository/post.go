package repository

import (
	"context"
	"errors"

	"verser/internal/cache"
	"verser/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedFilter narrows the feed listing. Zero values mean "no filter".
type FeedFilter struct {
	Type        models.PostType
	Tag         string
	CommunityID uint
	Trending    bool
	Limit       int
	Offset      int
}

// PostRepository defines persistence operations for feed content.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter FeedFilter) ([]*models.Post, error)
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	Repost(ctx context.Context, userID, postID uint) (*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter FeedFilter) ([]*models.Post, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	q := r.db.WithContext(ctx).Preload("User")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Tag != "" {
		// Tags are a JSON-encoded list; match the quoted element.
		q = q.Where(`tags LIKE ?`, `%"`+filter.Tag+`"%`)
	}
	if filter.CommunityID != 0 {
		q = q.Where("community_id = ?", filter.CommunityID)
	}
	if filter.Trending {
		q = q.Where("is_trending = ?", true)
	}

	var posts []*models.Post
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Like inserts the (user, post) pair and bumps the counter in one
// transaction. The unique index plus ON CONFLICT DO NOTHING makes repeated
// likes leave exactly one row and one increment. Returns false on duplicate.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.PostLike{UserID: userID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if created {
		cache.InvalidatePost(ctx, postID)
	}
	return created, nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Post{}).Where("id = ? AND likes_count > 0", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if removed {
		cache.InvalidatePost(ctx, postID)
	}
	return removed, nil
}

// Repost creates a new post referencing the original and bumps its repost
// counter.
func (r *postRepository) Repost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	var original models.Post
	if err := r.db.WithContext(ctx).First(&original, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	// Repost the source of a repost chain so counters land on the original.
	sourceID := original.ID
	if original.IsRepost && original.OriginalPostID != nil {
		sourceID = *original.OriginalPostID
	}

	repost := &models.Post{
		UserID:         userID,
		Type:           original.Type,
		Content:        original.Content,
		MediaURL:       original.MediaURL,
		Tags:           original.Tags,
		CommunityID:    original.CommunityID,
		OriginalPostID: &sourceID,
		IsRepost:       true,
		Sentiment:      original.Sentiment,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(repost).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", sourceID).
			UpdateColumn("reposts_count", gorm.Expr("reposts_count + 1")).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, sourceID)
	return repost, nil
}
