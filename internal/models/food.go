package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodItem is a menu entry in the food-ordering section. Price is in minor
// units (cents).
type FoodItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Image       string         `json:"image"`
	Category    string         `gorm:"index" json:"category"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// FoodOrderStatus represents the lifecycle state of a food order.
type FoodOrderStatus string

const (
	FoodOrderStatusPlaced    FoodOrderStatus = "placed"
	FoodOrderStatusPreparing FoodOrderStatus = "preparing"
	FoodOrderStatusDelivered FoodOrderStatus = "delivered"
	FoodOrderStatusCancelled FoodOrderStatus = "cancelled"
)

// FoodOrder is a placed order. Total is the sum of item price * quantity at
// order time; menu price changes do not retroactively alter it.
type FoodOrder struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Status    FoodOrderStatus `gorm:"type:varchar(20);default:'placed'" json:"status"`
	Total     int64           `gorm:"not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
	Items     []FoodOrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// FoodOrderItem is one line of a food order, with the unit price captured at
// order time.
type FoodOrderItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    uint     `gorm:"not null;index" json:"order_id"`
	FoodItemID uint     `gorm:"not null" json:"food_item_id"`
	FoodItem   FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  int64    `gorm:"not null" json:"unit_price"`
}
