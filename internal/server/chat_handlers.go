package server

import (
	"verser/internal/middleware"
	"verser/internal/models"
	"verser/internal/observability"
	"verser/internal/relay"
	"verser/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateConversationRequest is the conversation creation payload.
type CreateConversationRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Avatar      string `json:"avatar"`
	Description string `json:"description"`
}

// SendMessageRequest is the message creation payload.
type SendMessageRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// CreateConversation creates a group or direct conversation
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	var req CreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	conv, err := s.chatService.CreateConversation(c.UserContext(), service.CreateConversationInput{
		UserID:      mustUserID(c),
		Name:        req.Name,
		Type:        models.ConversationType(req.Type),
		Avatar:      req.Avatar,
		Description: req.Description,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations lists conversations, most recently active first
func (s *Server) GetConversations(c *fiber.Ctx) error {
	p := parsePagination(c)
	convs, err := s.chatService.ListConversations(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": convs})
}

// GetConversation returns a single conversation
func (s *Server) GetConversation(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	conv, err := s.chatService.GetConversation(c.UserContext(), convID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(conv)
}

// GetMessages returns a conversation's messages in chronological order
func (s *Server) GetMessages(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c)
	messages, err := s.chatService.GetMessages(c.UserContext(), convID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendMessage persists a message and then announces it on the relay. The
// persisted record is the source of truth: once the write commits the
// request succeeds, and the broadcast is best-effort with no rollback.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	msg, err := s.chatService.SendMessage(ctx, service.SendMessageInput{
		UserID:         mustUserID(c),
		ConversationID: convID,
		Content:        req.Content,
		Type:           models.MessageType(req.Type),
	})
	if err != nil {
		return respondAppError(c, err)
	}

	observability.MessageThroughput.WithLabelValues("http").Inc()

	// Phase two: announce the server-confirmed record. Every relay
	// connection gets it, including whatever socket the author holds.
	if data, envErr := relay.NewMessageEnvelope(msg); envErr != nil {
		middleware.Logger.ErrorContext(ctx, "failed to build message envelope",
			"message_id", msg.ID, "error", envErr)
	} else {
		s.hub.Broadcast(data)
		if pubErr := s.notifier.PublishEnvelope(c.Context(), data); pubErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to publish message envelope",
				"message_id", msg.ID, "error", pubErr)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}
