package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Sup3r$ecretPass!",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username": "otheruser",
				"email":    "test@example.com",
				"password": "Sup3r$ecretPass!",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Duplicate username",
			body: map[string]string{
				"username": "testuser",
				"email":    "unused@example.com",
				"password": "Sup3r$ecretPass!",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"username": "weakuser",
				"email":    "weak@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"username": "emailuser",
				"email":    "not-an-email",
				"password": "Sup3r$ecretPass!",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "loginuser", "login@example.com")

	t.Run("Success", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "Sup3r$ecretPass!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body AuthResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "loginuser", body.User.Username)
	})

	t.Run("Wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "WrongPassword99!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown account gets the same error", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "Sup3r$ecretPass!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	_, app := newTestServer(t)
	token, userID := signupUser(t, app, "meuser", "me@example.com")

	t.Run("With valid token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, userID, body.ID)
		assert.Equal(t, "meuser", body.Username)
	})

	t.Run("Without token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("With garbage token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "not.a.jwt", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "byeuser", "bye@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// The same token must be rejected once its jti is blacklisted.
	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
