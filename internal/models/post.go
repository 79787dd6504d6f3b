package models

import (
	"time"

	"gorm.io/gorm"
)

// PostType categorizes feed content.
type PostType string

const (
	// PostTypeText is a plain text post.
	PostTypeText PostType = "text"
	// PostTypeImage is a post with an attached image.
	PostTypeImage PostType = "image"
	// PostTypeVideo is a long-form video post.
	PostTypeVideo PostType = "video"
	// PostTypeShort is a short-form vertical video post.
	PostTypeShort PostType = "short"
)

// Sentiment is the coarse tone classification attached to a post.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Post represents a feed item in the Verser application.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	UserID   uint     `gorm:"not null;index" json:"user_id"`
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Type     PostType `gorm:"type:varchar(20);default:'text';index" json:"type"`
	Content  string   `gorm:"type:text" json:"content"`
	MediaURL string   `json:"media_url"`
	// Tags is an ordered list stored as a JSON-encoded column.
	Tags        []string   `gorm:"serializer:json" json:"tags"`
	CommunityID *uint      `gorm:"index" json:"community_id,omitempty"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`

	// Cached engagement counters maintained on like/repost writes.
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`
	SharesCount   int `gorm:"default:0" json:"shares_count"`
	RepostsCount  int `gorm:"default:0" json:"reposts_count"`

	// OriginalPostID links a repost back to its source post.
	OriginalPostID *uint     `gorm:"index" json:"original_post_id,omitempty"`
	OriginalPost   *Post     `gorm:"foreignKey:OriginalPostID" json:"original_post,omitempty"`
	IsRepost       bool      `gorm:"default:false" json:"is_repost"`
	IsTrending     bool      `gorm:"default:false;index" json:"is_trending"`
	Sentiment      Sentiment `gorm:"type:varchar(20);default:'neutral'" json:"sentiment"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostLike records that a user liked a post. The (user, post) pair carries a
// unique index so repeated likes cannot create duplicate rows.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// TableName specifies the table name for GORM
func (PostLike) TableName() string {
	return "post_likes"
}
