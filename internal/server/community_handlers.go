package server

import (
	"verser/internal/models"
	"verser/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCommunityRequest is the community creation payload.
type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`
	Category    string `json:"category"`
}

// CreateCommunity creates a new community
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	var req CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community, err := s.communityService.CreateCommunity(c.UserContext(), service.CreateCommunityInput{
		UserID:      mustUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Avatar:      req.Avatar,
		Banner:      req.Banner,
		Category:    req.Category,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(community)
}

// GetCommunities lists communities, optionally filtered by category
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	p := parsePagination(c)
	communities, err := s.communityService.ListCommunities(
		c.UserContext(), c.Query("category"), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"communities": communities})
}

// GetCommunity returns a single community
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	communityID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	community, err := s.communityService.GetCommunity(c.UserContext(), communityID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(community)
}

// GetCommunityPosts lists a community's posts
func (s *Server) GetCommunityPosts(c *fiber.Ctx) error {
	communityID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c)
	posts, err := s.communityService.ListCommunityPosts(
		c.UserContext(), communityID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
