package server

import (
	"verser/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MarkReadRequest selects notifications to mark read. Empty means all.
type MarkReadRequest struct {
	IDs []uint `json:"ids"`
}

// GetNotifications lists the authenticated user's notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePagination(c)
	unreadOnly := c.QueryBool("unread", false)
	notifications, err := s.notificationService.List(
		c.UserContext(), mustUserID(c), unreadOnly, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// MarkNotificationsRead marks the given notifications (or all) as read
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.notificationService.MarkRead(c.UserContext(), mustUserID(c), req.IDs)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}
