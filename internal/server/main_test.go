package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"verser/internal/cache"
	"verser/internal/config"
	"verser/internal/database"
	"verser/internal/relay"
	"verser/internal/repository"
	"verser/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a full server against in-memory SQLite and miniredis.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.MigrationModels...))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{JWTSecret: "test_secret", Env: "test"}
	s := &Server{
		config:           cfg,
		db:               db,
		redis:            rdb,
		userRepo:         repository.NewUserRepository(db),
		chatRepo:         repository.NewChatRepository(db),
		postRepo:         repository.NewPostRepository(db),
		communityRepo:    repository.NewCommunityRepository(db),
		paymentRepo:      repository.NewPaymentRepository(db),
		orderRepo:        repository.NewOrderRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		hub:              relay.NewHub(),
		notifier:         relay.NewNotifier(rdb),
	}
	s.notificationService = service.NewNotificationService(s.notificationRepo)
	s.chatService = service.NewChatService(s.chatRepo, s.userRepo)
	s.userService = service.NewUserService(s.userRepo, s.notificationService)
	s.feedService = service.NewFeedService(s.postRepo, s.notificationService)
	s.communityService = service.NewCommunityService(s.communityRepo, s.postRepo)
	s.paymentService = service.NewPaymentService(s.paymentRepo)
	s.orderService = service.NewOrderService(s.orderRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// doJSON issues a request with a JSON body and optional bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodes a JSON response body into out and closes it.
func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signupUser registers a user through the API and returns their token and ID.
func signupUser(t *testing.T, app *fiber.App, username, email string) (string, uint) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "Sup3r$ecretPass!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User.ID
}
