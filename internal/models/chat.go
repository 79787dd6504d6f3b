// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ConversationType distinguishes group rooms from one-on-one threads.
type ConversationType string

const (
	// ConversationTypeGroup is a named multi-member room.
	ConversationTypeGroup ConversationType = "group"
	// ConversationTypeDirect is a one-on-one thread.
	ConversationTypeDirect ConversationType = "direct"
)

// Conversation represents a chat conversation. Membership is implicit: there
// is no participant table, and MemberCount is a display aggregate rather than
// an access-control list.
type Conversation struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Type        ConversationType `gorm:"type:varchar(20);default:'group'" json:"type"`
	Avatar      string           `json:"avatar"`
	Description string           `json:"description"`
	MemberCount int              `gorm:"default:0" json:"member_count"`
	CreatedBy   uint             `gorm:"index" json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	Messages    []Message        `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// MessageType categorizes message content.
type MessageType string

const (
	// MessageTypeText is a plain text message.
	MessageTypeText MessageType = "text"
	// MessageTypeImage is a message carrying an image URL.
	MessageTypeImage MessageType = "image"
	// MessageTypeFile is a message carrying a file URL.
	MessageTypeFile MessageType = "file"
)

// Message represents a chat message. Messages are immutable once written:
// there are no edit or delete operations, and UpdatedAt only ever equals
// CreatedAt.
type Message struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ConversationID uint          `gorm:"not null;index" json:"conversation_id"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content        string        `gorm:"type:text;not null" json:"content"`
	Type           MessageType   `gorm:"type:varchar(20);default:'text'" json:"type"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
