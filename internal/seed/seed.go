// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"verser/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var conversationNames = []string{
	"General", "Movies", "Music", "Gaming", "Fitness", "Sports",
	"Technology", "Anime", "Books", "Food", "Travel", "Programming",
	"Art", "Science", "Finance", "Pets",
}

var communitySeeds = []struct {
	name, description, category string
}{
	{"gophers", "Go programming, libraries and tooling", "tech"},
	{"homecooks", "Recipes, techniques and kitchen wins", "food"},
	{"trailrunners", "Runs, routes and race reports", "fitness"},
	{"synthwave", "Retro electronic music and production", "music"},
	{"indiegames", "Indie game development and releases", "gaming"},
	{"filmclub", "Weekly watches and discussion", "movies"},
}

var menuSeeds = []models.FoodItem{
	{Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Category: "pizza", Price: 1200, Available: true},
	{Name: "Pepperoni Pizza", Description: "Loaded with pepperoni", Category: "pizza", Price: 1400, Available: true},
	{Name: "Pad Thai", Description: "Rice noodles, peanuts, lime", Category: "noodles", Price: 1450, Available: true},
	{Name: "Ramen Bowl", Description: "Pork broth, egg, scallions", Category: "noodles", Price: 1550, Available: true},
	{Name: "Caesar Salad", Description: "Romaine, parmesan, croutons", Category: "salads", Price: 950, Available: true},
	{Name: "Smash Burger", Description: "Double patty, special sauce", Category: "burgers", Price: 1300, Available: true},
	{Name: "Falafel Wrap", Description: "Hummus, pickles, tahini", Category: "wraps", Price: 1050, Available: true},
	{Name: "Seasonal Special", Description: "Ask about today's special", Category: "specials", Price: 1800, Available: false},
}

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	conversations, err := createConversations(db, users)
	if err != nil {
		return fmt.Errorf("failed to create conversations: %w", err)
	}
	log.Printf("%d conversations available", len(conversations))

	if err := createMessages(db, users, conversations); err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}

	communities, err := createCommunities(db, users)
	if err != nil {
		return fmt.Errorf("failed to create communities: %w", err)
	}
	log.Printf("%d communities available", len(communities))

	if err := createPosts(db, users, communities, opts.NumPosts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", opts.NumPosts)

	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	if err := createMenu(db); err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}
	log.Printf("%d menu items available", len(menuSeeds))

	log.Println("Seeding complete")
	return nil
}

// ClearAll wipes seedable tables. Development only.
func ClearAll(db *gorm.DB) error {
	tables := []interface{}{
		&models.FoodOrderItem{}, &models.FoodOrder{}, &models.FoodItem{},
		&models.Payment{}, &models.Notification{}, &models.PostLike{},
		&models.Post{}, &models.Community{}, &models.Message{},
		&models.Conversation{}, &models.Follow{}, &models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	if count <= 0 {
		count = 20
	}

	// One shared hash keeps seeding fast; every seeded account logs in with
	// the same development password.
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecretPass!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
		user := &models.User{
			Username:   username,
			Email:      fmt.Sprintf("%s@example.com", username),
			Password:   string(hash),
			Bio:        gofakeit.Sentence(8),
			About:      gofakeit.Paragraph(1, 2, 8, " "),
			Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Status:     models.UserStatusOffline,
			IsVerified: gofakeit.Bool() && gofakeit.Bool(),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createConversations(db *gorm.DB, users []*models.User) ([]*models.Conversation, error) {
	conversations := make([]*models.Conversation, 0, len(conversationNames))
	for _, name := range conversationNames {
		conv := &models.Conversation{
			Name:        name,
			Type:        models.ConversationTypeGroup,
			Description: gofakeit.Sentence(6),
			MemberCount: gofakeit.Number(2, len(users)),
			CreatedBy:   users[rand.Intn(len(users))].ID,
		}
		if err := db.Create(conv).Error; err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, nil
}

func createMessages(db *gorm.DB, users []*models.User, conversations []*models.Conversation) error {
	for _, conv := range conversations {
		count := gofakeit.Number(3, 12)
		for i := 0; i < count; i++ {
			msg := &models.Message{
				ConversationID: conv.ID,
				UserID:         users[rand.Intn(len(users))].ID,
				Content:        gofakeit.Sentence(gofakeit.Number(4, 18)),
				Type:           models.MessageTypeText,
			}
			if err := db.Create(msg).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createCommunities(db *gorm.DB, users []*models.User) ([]*models.Community, error) {
	communities := make([]*models.Community, 0, len(communitySeeds))
	for _, c := range communitySeeds {
		community := &models.Community{
			Name:        c.name,
			Description: c.description,
			Category:    c.category,
			Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", c.name),
			MemberCount: gofakeit.Number(10, 5000),
			OnlineCount: gofakeit.Number(0, 200),
			CreatedBy:   users[rand.Intn(len(users))].ID,
		}
		if err := db.Create(community).Error; err != nil {
			return nil, err
		}
		communities = append(communities, community)
	}
	return communities, nil
}

func createPosts(db *gorm.DB, users []*models.User, communities []*models.Community, count int) error {
	if count <= 0 {
		count = 100
	}

	types := []models.PostType{
		models.PostTypeText, models.PostTypeText, models.PostTypeText,
		models.PostTypeImage, models.PostTypeVideo, models.PostTypeShort,
	}
	sentiments := []models.Sentiment{
		models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative,
	}

	for i := 0; i < count; i++ {
		postType := types[rand.Intn(len(types))]
		post := &models.Post{
			UserID:     users[rand.Intn(len(users))].ID,
			Type:       postType,
			Content:    gofakeit.Paragraph(1, 2, 10, " "),
			Tags:       []string{gofakeit.Word(), gofakeit.Word()},
			Sentiment:  sentiments[rand.Intn(len(sentiments))],
			LikesCount: 0,
			IsTrending: i%17 == 0,
		}
		switch postType {
		case models.PostTypeImage:
			post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		case models.PostTypeVideo, models.PostTypeShort:
			post.MediaURL = fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", gofakeit.UUID())
		}
		if rand.Intn(3) == 0 {
			post.CommunityID = &communities[rand.Intn(len(communities))].ID
		}
		if err := db.Create(post).Error; err != nil {
			return err
		}
	}
	return nil
}

func createFollows(db *gorm.DB, users []*models.User) error {
	for _, user := range users {
		count := gofakeit.Number(0, 5)
		for i := 0; i < count; i++ {
			target := users[rand.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			follow := &models.Follow{FollowerID: user.ID, FollowingID: target.ID}
			// Duplicate pairs hit the unique index; skip them.
			if err := db.Create(follow).Error; err != nil {
				continue
			}
			db.Model(&models.User{}).Where("id = ?", target.ID).
				UpdateColumn("followers_count", gorm.Expr("followers_count + 1"))
			db.Model(&models.User{}).Where("id = ?", user.ID).
				UpdateColumn("following_count", gorm.Expr("following_count + 1"))
		}
	}
	return nil
}

func createMenu(db *gorm.DB) error {
	for i := range menuSeeds {
		item := menuSeeds[i]
		if err := db.Where(models.FoodItem{Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
