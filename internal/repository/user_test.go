package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"verser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo UserRepository, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    email,
		Password: "hashed",
		Status:   models.UserStatusOffline,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, repo, "alice", "alice@example.com")
	require.NotZero(t, created.ID)

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("GetByEmail missing returns nil, nil", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByUsername missing returns nil, nil", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "hashed",
		})
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	})

	t.Run("GetByID missing is NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})
}

func TestUserRepositoryFollow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, repo, "alice", "alice@example.com")
	bob := createTestUser(t, repo, "bob", "bob@example.com")

	created, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Second follow is absorbed without touching the counters.
	created, err = repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	var stored models.User
	require.NoError(t, db.First(&stored, bob.ID).Error)
	assert.Equal(t, 1, stored.FollowersCount)

	t.Run("Unfollow", func(t *testing.T) {
		removed, err := repo.Unfollow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		// Unfollowing again is a no-op, and counters never go negative.
		removed, err = repo.Unfollow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		var after models.User
		require.NoError(t, db.First(&after, bob.ID).Error)
		assert.Equal(t, 0, after.FollowersCount)
	})
}

func TestUserRepositoryUpdateSettings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "carol", "carol@example.com")

	require.NoError(t, repo.UpdateSettings(ctx, user.ID, map[string]interface{}{
		"bio":            "updated bio",
		"show_last_seen": false,
	}))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "updated bio", stored.Bio)
	assert.False(t, stored.ShowLastSeen)

	t.Run("Unknown user is NotFound", func(t *testing.T) {
		err := repo.UpdateSettings(ctx, 999, map[string]interface{}{"bio": "x"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})
}

func TestUserRepositoryUpdateStatusStampsLastSeen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "dave", "dave@example.com")

	require.NoError(t, repo.UpdateStatus(ctx, user.ID, models.UserStatusOnline))
	var online models.User
	require.NoError(t, db.First(&online, user.ID).Error)
	assert.Equal(t, models.UserStatusOnline, online.Status)
	assert.Nil(t, online.LastSeen)

	require.NoError(t, repo.UpdateStatus(ctx, user.ID, models.UserStatusOffline))
	var offline models.User
	require.NoError(t, db.First(&offline, user.ID).Error)
	assert.Equal(t, models.UserStatusOffline, offline.Status)
	assert.NotNil(t, offline.LastSeen)
}

func TestUserRepositoryListError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), 10, 0)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.ErrCodeInternal, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
