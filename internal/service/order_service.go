package service

import (
	"context"

	"verser/internal/models"
	"verser/internal/repository"
)

// OrderService provides the food menu and ordering logic.
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService returns a new OrderService.
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// OrderLine is one requested menu item.
type OrderLine struct {
	FoodItemID uint `json:"food_item_id"`
	Quantity   int  `json:"quantity"`
}

// CreateOrderInput is the input for placing a food order.
type CreateOrderInput struct {
	UserID uint
	Lines  []OrderLine
}

// ListMenu returns available menu items.
func (s *OrderService) ListMenu(ctx context.Context) ([]*models.FoodItem, error) {
	return s.orderRepo.ListMenu(ctx)
}

// CreateOrder validates the requested lines against the menu, prices the
// order at current unit prices and persists it atomically.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.FoodOrder, error) {
	if len(in.Lines) == 0 {
		return nil, models.NewValidationError("An order needs at least one item")
	}

	ids := make([]uint, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, models.NewValidationError("Item quantity must be positive")
		}
		ids = append(ids, line.FoodItemID)
	}

	items, err := s.orderRepo.GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.FoodItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	order := &models.FoodOrder{
		UserID: in.UserID,
		Status: models.FoodOrderStatusPlaced,
	}
	for _, line := range in.Lines {
		item, ok := byID[line.FoodItemID]
		if !ok {
			return nil, models.NewNotFoundError("Food item", line.FoodItemID)
		}
		if !item.Available {
			return nil, models.NewValidationError("Item '" + item.Name + "' is not available")
		}
		order.Items = append(order.Items, models.FoodOrderItem{
			FoodItemID: item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
		})
		order.Total += item.Price * int64(line.Quantity)
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]*models.FoodOrder, error) {
	return s.orderRepo.ListByUser(ctx, userID, limit, offset)
}
