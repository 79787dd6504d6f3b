package repository

import (
	"context"
	"testing"

	"verser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(t *testing.T, repo PostRepository, userID uint) {
	t.Helper()
	ctx := context.Background()
	posts := []*models.Post{
		{UserID: userID, Type: models.PostTypeText, Content: "about go", Tags: []string{"go", "dev"}},
		{UserID: userID, Type: models.PostTypeText, Content: "about cooking", Tags: []string{"food"}},
		{UserID: userID, Type: models.PostTypeShort, Content: "clip", MediaURL: "https://cdn.example.com/a.mp4", IsTrending: true},
	}
	for _, p := range posts {
		require.NoError(t, repo.Create(ctx, p))
	}
}

func TestPostRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	seedPosts(t, repo, 1)

	t.Run("No filter returns everything", func(t *testing.T) {
		posts, err := repo.List(ctx, FeedFilter{})
		require.NoError(t, err)
		assert.Len(t, posts, 3)
	})

	t.Run("Type filter", func(t *testing.T) {
		posts, err := repo.List(ctx, FeedFilter{Type: models.PostTypeShort})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "clip", posts[0].Content)
	})

	t.Run("Tag filter matches whole tag", func(t *testing.T) {
		posts, err := repo.List(ctx, FeedFilter{Tag: "go"})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "about go", posts[0].Content)
	})

	t.Run("Trending filter", func(t *testing.T) {
		posts, err := repo.List(ctx, FeedFilter{Trending: true})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.True(t, posts[0].IsTrending)
	})
}

func TestPostRepositoryLikeUnlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Type: models.PostTypeText, Content: "like target"}
	require.NoError(t, repo.Create(ctx, post))

	created, err := repo.Like(ctx, 2, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Like(ctx, 2, post.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.LikesCount)

	// A different user adds a second like.
	created, err = repo.Like(ctx, 3, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	removed, err := repo.Unlike(ctx, 2, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.LikesCount)
}

func TestPostRepositoryRepostChain(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	original := &models.Post{UserID: 1, Type: models.PostTypeText, Content: "the source"}
	require.NoError(t, repo.Create(ctx, original))

	first, err := repo.Repost(ctx, 2, original.ID)
	require.NoError(t, err)
	require.NotNil(t, first.OriginalPostID)
	assert.Equal(t, original.ID, *first.OriginalPostID)

	// Reposting the repost still points at and credits the original.
	second, err := repo.Repost(ctx, 3, first.ID)
	require.NoError(t, err)
	require.NotNil(t, second.OriginalPostID)
	assert.Equal(t, original.ID, *second.OriginalPostID)

	var stored models.Post
	require.NoError(t, db.First(&stored, original.ID).Error)
	assert.Equal(t, 2, stored.RepostsCount)

	t.Run("Unknown post", func(t *testing.T) {
		_, err := repo.Repost(ctx, 2, 999)
		require.Error(t, err)
	})
}
