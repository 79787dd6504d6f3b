package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	// PaymentStatusPending indicates a payment that has not settled yet.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusCompleted indicates a settled payment.
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusFailed indicates a payment rejected by the processor.
	PaymentStatusFailed PaymentStatus = "failed"
)

// Payment records a payment made through the mock processor. Amount is in
// minor units (cents).
type Payment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Amount    int64          `gorm:"not null" json:"amount"`
	Currency  string         `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status    PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Reference string         `gorm:"unique;not null" json:"reference"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
