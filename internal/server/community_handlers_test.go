package server

import (
	"net/http"
	"testing"

	"verser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunities(t *testing.T) {
	_, app := newTestServer(t)
	token, userID := signupUser(t, app, "founder", "founder@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/communities", token, map[string]string{
		"name":        "gophers",
		"description": "all things Go",
		"category":    "tech",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var community models.Community
	decodeBody(t, resp, &community)
	assert.Equal(t, "gophers", community.Name)
	assert.Equal(t, userID, community.CreatedBy)

	t.Run("Duplicate name conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/communities", token, map[string]string{
			"name": "gophers",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Browsable without auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/communities?category=tech", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Communities []models.Community `json:"communities"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Communities, 1)
		assert.Equal(t, "gophers", body.Communities[0].Name)
	})

	t.Run("Community posts", func(t *testing.T) {
		createPost(t, app, token, map[string]any{
			"type": "text", "content": "community post", "community_id": community.ID,
		})

		resp := doJSON(t, app, http.MethodGet, "/api/communities/1/posts", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Posts []models.Post `json:"posts"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Posts, 1)
		assert.Equal(t, "community post", body.Posts[0].Content)
	})

	t.Run("Posts of unknown community", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/communities/999/posts", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
