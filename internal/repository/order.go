package repository

import (
	"context"

	"verser/internal/cache"
	"verser/internal/models"

	"gorm.io/gorm"
)

// OrderRepository defines persistence operations for the food menu and orders.
type OrderRepository interface {
	ListMenu(ctx context.Context) ([]*models.FoodItem, error)
	GetItems(ctx context.Context, ids []uint) ([]*models.FoodItem, error)
	CreateOrder(ctx context.Context, order *models.FoodOrder) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.FoodOrder, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns a new OrderRepository implementation.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListMenu(ctx context.Context) ([]*models.FoodItem, error) {
	var items []*models.FoodItem

	err := cache.Aside(ctx, cache.MenuKey, &items, cache.MenuTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("available = ?", true).
			Order("category, name").
			Find(&items).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) GetItems(ctx context.Context, ids []uint) ([]*models.FoodItem, error) {
	var items []*models.FoodItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// CreateOrder persists the order and its line items atomically.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.FoodOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.FoodOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	var orders []*models.FoodOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.FoodItem").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return orders, nil
}
