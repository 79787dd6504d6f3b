package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIUnauthorizedEvictsToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid or expired token"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, nil)
	api.SetToken("expired-token")

	err := api.Get(context.Background(), "/api/auth/me", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, api.Token(), "401 must evict the stored token")
}

func TestAPIGetUsesCacheUntilMutation(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":2}`))
			return
		}
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, NewCache())
	ctx := context.Background()

	var out []map[string]interface{}
	require.NoError(t, api.Get(ctx, "/api/conversations", &out))
	require.NoError(t, api.Get(ctx, "/api/conversations", &out))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second read must be served from cache")

	var created map[string]interface{}
	require.NoError(t, api.Post(ctx, "/api/conversations", map[string]string{"name": "general"}, &created))

	require.NoError(t, api.Get(ctx, "/api/conversations", &out))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "mutation must invalidate the path")
}

func TestAPIBearerHeaderAndErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"username":"ada"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, nil)

	err := api.Get(context.Background(), "/api/users/1", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	api.SetToken("tok-123")
	var out map[string]interface{}
	require.NoError(t, api.Get(context.Background(), "/api/users/1", &out))
	assert.Equal(t, "ada", out["username"])
}
