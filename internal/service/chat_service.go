// Package service provides application business logic (chat, feed, users, etc.).
package service

import (
	"context"

	"verser/internal/models"
	"verser/internal/repository"
)

// ChatService provides chat and conversation business logic. Conversations
// have no membership list: any authenticated user can read and post to any
// conversation it has the id of.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

// CreateConversationInput is the input for creating a conversation.
type CreateConversationInput struct {
	UserID      uint
	Name        string
	Type        models.ConversationType
	Avatar      string
	Description string
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	UserID         uint
	ConversationID uint
	Content        string
	Type           models.MessageType
}

const maxMessageContentLen = 10000 // 10K characters

// CreateConversation creates a new conversation (group or direct).
func (s *ChatService) CreateConversation(ctx context.Context, in CreateConversationInput) (*models.Conversation, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Conversation name is required")
	}
	if in.Type == "" {
		in.Type = models.ConversationTypeGroup
	}
	if in.Type != models.ConversationTypeGroup && in.Type != models.ConversationTypeDirect {
		return nil, models.NewValidationError("Conversation type must be 'group' or 'direct'")
	}

	conv := &models.Conversation{
		Name:        in.Name,
		Type:        in.Type,
		Avatar:      in.Avatar,
		Description: in.Description,
		CreatedBy:   in.UserID,
		MemberCount: 1,
	}
	if err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// GetConversation returns one conversation by id.
func (s *ChatService) GetConversation(ctx context.Context, convID uint) (*models.Conversation, error) {
	return s.chatRepo.GetConversation(ctx, convID)
}

// ListConversations returns conversations ordered by recent activity.
func (s *ChatService) ListConversations(ctx context.Context, limit, offset int) ([]*models.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.chatRepo.ListConversations(ctx, limit, offset)
}

// SendMessage validates and persists a message, then bumps the
// conversation's activity timestamp. The returned record carries the
// authoritative id and created_at used for the broadcast.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(in.Content) > maxMessageContentLen {
		return nil, models.NewValidationError("Message content too long (max 10000 characters)")
	}
	if in.Type == "" {
		in.Type = models.MessageTypeText
	}
	switch in.Type {
	case models.MessageTypeText, models.MessageTypeImage, models.MessageTypeFile:
	default:
		return nil, models.NewValidationError("Message type must be 'text', 'image' or 'file'")
	}

	// The conversation must exist before anything is written.
	if _, err := s.chatRepo.GetConversation(ctx, in.ConversationID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: in.ConversationID,
		UserID:         in.UserID,
		Content:        in.Content,
		Type:           in.Type,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	// Activity bump is best-effort; the message is already durable.
	_ = s.chatRepo.TouchConversation(ctx, in.ConversationID)

	if sender, err := s.userRepo.GetByID(ctx, in.UserID); err == nil {
		sender.Sanitize()
		message.User = sender
	}

	return message, nil
}

// GetMessages returns a conversation's messages in chronological order.
func (s *ChatService) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if _, err := s.chatRepo.GetConversation(ctx, convID); err != nil {
		return nil, err
	}
	return s.chatRepo.GetMessages(ctx, convID, limit, offset)
}
