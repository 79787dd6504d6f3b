package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// NotificationKind names the event that produced a notification.
type NotificationKind string

const (
	// NotificationKindFollow is emitted when someone follows the user.
	NotificationKindFollow NotificationKind = "follow"
	// NotificationKindLike is emitted when someone likes the user's post.
	NotificationKindLike NotificationKind = "like"
	// NotificationKindRepost is emitted when someone reposts the user's post.
	NotificationKindRepost NotificationKind = "repost"
	// NotificationKindMessage is emitted for chat activity digests.
	NotificationKindMessage NotificationKind = "message"
)

// Notification is an in-app notification delivered via the REST API.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Kind      NotificationKind `gorm:"type:varchar(30);not null" json:"kind"`
	Payload   json.RawMessage  `gorm:"type:json" json:"payload,omitempty"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}
