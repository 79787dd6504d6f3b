package server

import (
	"verser/internal/middleware"
	"verser/internal/models"
	"verser/internal/relay"
	"verser/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUser returns a user's profile, filtered by their privacy settings
// unless the viewer is the owner
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userService.GetProfile(c.UserContext(), userID, optionalUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// GetMySettings returns the authenticated user's full account record
func (s *Server) GetMySettings(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.UserContext(), mustUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMySettings applies a partial settings update
func (s *Server) UpdateMySettings(c *fiber.Ctx) error {
	var in service.UpdateSettingsInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateSettings(c.UserContext(), mustUserID(c), in)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateStatusRequest is the presence update payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateMyStatus sets the authenticated user's presence and announces it
// on the relay so connected clients can refresh the profile
func (s *Server) UpdateMyStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	userID := mustUserID(c)
	status := models.UserStatus(req.Status)
	if err := s.userService.SetStatus(ctx, userID, status); err != nil {
		return respondAppError(c, err)
	}

	// Presence is best-effort; a failed broadcast never fails the update.
	if data, envErr := relay.UserStatusEnvelope(userID, status); envErr != nil {
		middleware.Logger.ErrorContext(ctx, "failed to build status envelope",
			"user_id", userID, "error", envErr)
	} else {
		s.hub.Broadcast(data)
		if pubErr := s.notifier.PublishEnvelope(c.Context(), data); pubErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to publish status envelope",
				"user_id", userID, "error", pubErr)
		}
	}

	return c.JSON(fiber.Map{"status": status})
}

// FollowUser makes the authenticated user follow :id. Idempotent.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.Follow(c.UserContext(), mustUserID(c), targetID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// UnfollowUser removes a follow edge. Idempotent.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.Unfollow(c.UserContext(), mustUserID(c), targetID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}
