// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserStatus represents a user's presence state.
type UserStatus string

const (
	// UserStatusOnline indicates the user currently has an active session.
	UserStatusOnline UserStatus = "online"
	// UserStatusOffline indicates the user has no active session.
	UserStatusOffline UserStatus = "offline"
	// UserStatusAway indicates the user is connected but idle.
	UserStatusAway UserStatus = "away"
)

// User represents a user in the Verser application.
type User struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Username string     `gorm:"unique;not null" json:"username"`
	Email    string     `gorm:"unique;not null" json:"email"`
	Password string     `gorm:"not null" json:"-"`
	Bio      string     `json:"bio"`
	About    string     `gorm:"type:text" json:"about"`
	Avatar   string     `json:"avatar"`
	Status   UserStatus `gorm:"type:varchar(20);default:'offline'" json:"status"`
	LastSeen *time.Time `json:"last_seen,omitempty"`

	// Privacy settings controlling what other users can see.
	ShowLastSeen     bool `gorm:"default:true" json:"show_last_seen"`
	ShowOnlineStatus bool `gorm:"default:true" json:"show_online_status"`

	IsVerified bool `gorm:"default:false" json:"is_verified"`
	// FollowersCount and FollowingCount are cached aggregates maintained on
	// follow/unfollow writes.
	FollowersCount int `gorm:"default:0" json:"followers_count"`
	FollowingCount int `gorm:"default:0" json:"following_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Sanitize clears fields the owner has hidden from other users. It is applied
// to every user record served to anyone other than the owner.
func (u *User) Sanitize() {
	if !u.ShowLastSeen {
		u.LastSeen = nil
	}
	if !u.ShowOnlineStatus {
		u.Status = UserStatusOffline
	}
}

// Follow records that follower_id follows following_id. The pair is unique;
// duplicate follow requests are no-ops at the storage layer.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
