package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrUnauthorized is returned when the server responds 401. The stored token
// is evicted before the error is returned.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx response.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

// API is a JSON client for the Verser REST surface. It stores the bearer
// token and integrates with Cache for GET responses.
type API struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.RWMutex
	token string
	cache *Cache
}

// NewAPI creates an API client. cache may be nil to disable caching.
func NewAPI(baseURL string, cache *Cache) *API {
	return &API{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

// SetToken stores the bearer token used on subsequent requests.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// Token returns the stored bearer token, empty after eviction.
func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Cache exposes the response cache, nil when caching is disabled.
func (a *API) Cache() *Cache {
	return a.cache
}

// Get fetches path through the cache (when configured) and decodes the JSON
// response into out.
func (a *API) Get(ctx context.Context, path string, out interface{}) error {
	fetch := func(ctx context.Context) ([]byte, error) {
		return a.do(ctx, http.MethodGet, path, nil)
	}

	var data []byte
	var err error
	if a.cache != nil {
		data, err = a.cache.Get(ctx, path, fetch)
	} else {
		data, err = fetch(ctx)
	}
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Post sends body as JSON and decodes the response into out. Mutations
// invalidate the target path so the next Get re-fetches.
func (a *API) Post(ctx context.Context, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	data, err := a.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}

	if a.cache != nil {
		a.cache.Invalidate(path)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (a *API) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The token is no longer valid; evict it so the caller can
		// re-authenticate.
		a.SetToken("")
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: data}
	}
	return data, nil
}
