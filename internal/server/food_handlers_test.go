package server

import (
	"net/http"
	"testing"

	"verser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMenu(t *testing.T, s *Server) []models.FoodItem {
	t.Helper()
	items := []models.FoodItem{
		{Name: "Margherita", Category: "pizza", Price: 1200, Available: true},
		{Name: "Pad Thai", Category: "noodles", Price: 1450, Available: true},
		{Name: "Seasonal Special", Category: "specials", Price: 1800, Available: false},
	}
	require.NoError(t, s.db.Create(&items).Error)
	return items
}

func TestGetMenu(t *testing.T) {
	s, app := newTestServer(t)
	seedMenu(t, s)

	resp := doJSON(t, app, http.MethodGet, "/api/food/menu", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []models.FoodItem `json:"items"`
	}
	decodeBody(t, resp, &body)

	// Unavailable items are not on the menu.
	require.Len(t, body.Items, 2)
	for _, item := range body.Items {
		assert.True(t, item.Available)
	}
}

func TestCreateFoodOrder(t *testing.T) {
	s, app := newTestServer(t)
	items := seedMenu(t, s)
	token, userID := signupUser(t, app, "hungry", "hungry@example.com")

	t.Run("Priced from current menu", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/food/orders", token, map[string]any{
			"items": []map[string]any{
				{"food_item_id": items[0].ID, "quantity": 2},
				{"food_item_id": items[1].ID, "quantity": 1},
			},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var order models.FoodOrder
		decodeBody(t, resp, &order)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, models.FoodOrderStatusPlaced, order.Status)
		assert.EqualValues(t, 2*1200+1450, order.Total)
		require.Len(t, order.Items, 2)
		assert.EqualValues(t, 1200, order.Items[0].UnitPrice)
	})

	t.Run("Unavailable item rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/food/orders", token, map[string]any{
			"items": []map[string]any{
				{"food_item_id": items[2].ID, "quantity": 1},
			},
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown item rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/food/orders", token, map[string]any{
			"items": []map[string]any{
				{"food_item_id": 999, "quantity": 1},
			},
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Empty order rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/food/orders", token, map[string]any{
			"items": []map[string]any{},
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Orders listed with items", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/food/orders", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Orders []models.FoodOrder `json:"orders"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Orders, 1)
		assert.Len(t, body.Orders[0].Items, 2)
	})
}
