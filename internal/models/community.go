package models

import (
	"time"

	"gorm.io/gorm"
)

// Community represents a topic-centered group page. MemberCount and
// OnlineCount are display aggregates, not derived from a membership table.
type Community struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"unique;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Avatar      string         `json:"avatar"`
	Banner      string         `json:"banner"`
	Category    string         `gorm:"index" json:"category"`
	MemberCount int            `gorm:"default:0" json:"member_count"`
	OnlineCount int            `gorm:"default:0" json:"online_count"`
	CreatedBy   uint           `gorm:"index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:CommunityID" json:"posts,omitempty"`
}
