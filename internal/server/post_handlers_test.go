package server

import (
	"net/http"
	"testing"

	"verser/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, app *fiber.App, token string, body map[string]any) models.Post {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)
	return post
}

func TestCreatePost(t *testing.T) {
	_, app := newTestServer(t)
	token, userID := signupUser(t, app, "poster", "poster@example.com")

	t.Run("Text post", func(t *testing.T) {
		post := createPost(t, app, token, map[string]any{
			"type":    "text",
			"content": "first post",
			"tags":    []string{"intro", "hello"},
		})
		assert.Equal(t, userID, post.UserID)
		assert.Equal(t, models.PostTypeText, post.Type)
		assert.Equal(t, []string{"intro", "hello"}, post.Tags)
	})

	t.Run("Video requires media URL", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{
			"type":    "video",
			"content": "watch this",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown type rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{
			"type":    "poll",
			"content": "pick one",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Requires auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", "", map[string]any{
			"type":    "text",
			"content": "anonymous",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestFeedFilters(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "curator", "curator@example.com")

	createPost(t, app, token, map[string]any{
		"type": "text", "content": "plain words", "tags": []string{"words"},
	})
	createPost(t, app, token, map[string]any{
		"type": "short", "content": "clip", "media_url": "https://cdn.example.com/clip.mp4",
	})

	feed := func(query string) []models.Post {
		resp := doJSON(t, app, http.MethodGet, "/api/posts"+query, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Posts []models.Post `json:"posts"`
		}
		decodeBody(t, resp, &body)
		return body.Posts
	}

	assert.Len(t, feed(""), 2)

	shorts := feed("?type=short")
	require.Len(t, shorts, 1)
	assert.Equal(t, models.PostTypeShort, shorts[0].Type)

	tagged := feed("?tag=words")
	require.Len(t, tagged, 1)
	assert.Equal(t, "plain words", tagged[0].Content)

	assert.Empty(t, feed("?tag=nosuchtag"))
	assert.Empty(t, feed("?trending=true"))

	t.Run("Invalid type filter rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts?type=bogus", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLikeIsIdempotent(t *testing.T) {
	s, app := newTestServer(t)
	token, _ := signupUser(t, app, "liker", "liker@example.com")
	post := createPost(t, app, token, map[string]any{
		"type": "text", "content": "like me",
	})

	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/1/like", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// One like row, one counted like, no matter how many requests.
	var likeRows int64
	require.NoError(t, s.db.Model(&models.PostLike{}).Count(&likeRows).Error)
	assert.EqualValues(t, 1, likeRows)

	var stored models.Post
	require.NoError(t, s.db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.LikesCount)

	t.Run("Unlike drops to zero once", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := doJSON(t, app, http.MethodDelete, "/api/posts/1/like", token, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			_ = resp.Body.Close()
		}
		var after models.Post
		require.NoError(t, s.db.First(&after, post.ID).Error)
		assert.Equal(t, 0, after.LikesCount)
	})
}

func TestRepostCreditsOriginal(t *testing.T) {
	s, app := newTestServer(t)
	authorToken, _ := signupUser(t, app, "author", "author@example.com")
	sharerToken, sharerID := signupUser(t, app, "sharer", "sharer@example.com")

	original := createPost(t, app, authorToken, map[string]any{
		"type": "text", "content": "share-worthy",
	})

	resp := doJSON(t, app, http.MethodPost, "/api/posts/1/repost", sharerToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var repost models.Post
	decodeBody(t, resp, &repost)
	assert.True(t, repost.IsRepost)
	assert.Equal(t, sharerID, repost.UserID)
	require.NotNil(t, repost.OriginalPostID)
	assert.Equal(t, original.ID, *repost.OriginalPostID)

	var stored models.Post
	require.NoError(t, s.db.First(&stored, original.ID).Error)
	assert.Equal(t, 1, stored.RepostsCount)

	t.Run("Reposting a repost credits the source", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/2/repost", authorToken, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var second models.Post
		decodeBody(t, resp, &second)
		require.NotNil(t, second.OriginalPostID)
		assert.Equal(t, original.ID, *second.OriginalPostID)

		var after models.Post
		require.NoError(t, s.db.First(&after, original.ID).Error)
		assert.Equal(t, 2, after.RepostsCount)
	})
}

func TestGetPostPublic(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "public", "public@example.com")
	post := createPost(t, app, token, map[string]any{
		"type": "text", "content": "readable by anyone",
	})

	resp := doJSON(t, app, http.MethodGet, "/api/posts/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Post
	decodeBody(t, resp, &fetched)
	assert.Equal(t, post.ID, fetched.ID)

	t.Run("Missing post", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/999", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
