package server

import (
	"verser/internal/models"
	"verser/internal/repository"
	"verser/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the post creation payload.
type CreatePostRequest struct {
	Type        string   `json:"type"`
	Content     string   `json:"content"`
	MediaURL    string   `json:"media_url"`
	Tags        []string `json:"tags"`
	CommunityID *uint    `json:"community_id"`
	Sentiment   string   `json:"sentiment"`
}

// CreatePost creates a feed item (text, image, video or short)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      mustUserID(c),
		Type:        models.PostType(req.Type),
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		Tags:        req.Tags,
		CommunityID: req.CommunityID,
		Sentiment:   models.Sentiment(req.Sentiment),
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts lists the feed with optional type/tag/community/trending filters
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c)
	filter := repository.FeedFilter{
		Type:        models.PostType(c.Query("type")),
		Tag:         c.Query("tag"),
		CommunityID: uint(c.QueryInt("community_id", 0)),
		Trending:    c.QueryBool("trending", false),
		Limit:       p.Limit,
		Offset:      p.Offset,
	}

	posts, err := s.feedService.ListFeed(c.UserContext(), filter)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost returns a single post
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.feedService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(post)
}

// LikePost records a like. Duplicate likes are absorbed.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.feedService.Like(c.UserContext(), mustUserID(c), postID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": true})
}

// UnlikePost removes a like. Idempotent.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.feedService.Unlike(c.UserContext(), mustUserID(c), postID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": false})
}

// RepostPost shares an existing post to the author's own feed
func (s *Server) RepostPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	repost, err := s.feedService.Repost(c.UserContext(), mustUserID(c), postID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(repost)
}
