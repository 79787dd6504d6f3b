// Package relay implements the process-wide WebSocket fan-out hub.
//
// The relay is deliberately dumb: it validates the envelope shape at the
// boundary and rebroadcasts valid payloads byte-for-byte to every other
// connection. It performs no routing, no membership checks and no
// persistence.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"

	"verser/internal/models"
)

// Envelope type discriminators understood by the boundary validator.
// Unknown types with a valid discriminator are still relayed; these names
// only gate the per-type field checks and the client-side cache mapping.
const (
	TypeSendMessage = "send_message"
	TypeNewMessage  = "new_message"
	TypeTyping      = "typing"
	TypeUserStatus  = "user_status"
)

var (
	// ErrMalformed indicates the payload was not a JSON object with a
	// non-empty string "type" field.
	ErrMalformed = errors.New("malformed envelope")
	// ErrInvalidFields indicates a known envelope type with missing or
	// ill-typed fields.
	ErrInvalidFields = errors.New("invalid envelope fields")
)

// Envelope is a parsed relay payload. Raw preserves the exact bytes received
// so rebroadcast is byte-for-byte identical.
type Envelope struct {
	Type string
	Raw  []byte
}

type envelopeHeader struct {
	Type *string `json:"type"`
}

// ParseEnvelope validates that data is a JSON object carrying a non-empty
// string "type" discriminator, then applies per-type field validation for
// the known envelope kinds.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var header envelopeHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if header.Type == nil || *header.Type == "" {
		return nil, fmt.Errorf("%w: missing type discriminator", ErrMalformed)
	}

	env := &Envelope{Type: *header.Type, Raw: data}
	if err := env.validateFields(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Envelope) validateFields() error {
	switch e.Type {
	case TypeSendMessage:
		var body struct {
			ConversationID *uint   `json:"conversation_id"`
			UserID         *uint   `json:"user_id"`
			Content        *string `json:"content"`
		}
		if err := json.Unmarshal(e.Raw, &body); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFields, err)
		}
		if body.ConversationID == nil || body.UserID == nil || body.Content == nil {
			return fmt.Errorf("%w: send_message requires conversation_id, user_id and content", ErrInvalidFields)
		}
	case TypeNewMessage:
		var body struct {
			Message *models.Message `json:"message"`
		}
		if err := json.Unmarshal(e.Raw, &body); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFields, err)
		}
		if body.Message == nil || body.Message.ConversationID == 0 {
			return fmt.Errorf("%w: new_message requires a message with a conversation_id", ErrInvalidFields)
		}
	case TypeTyping:
		var body struct {
			ConversationID *uint `json:"conversation_id"`
			UserID         *uint `json:"user_id"`
			IsTyping       *bool `json:"is_typing"`
		}
		if err := json.Unmarshal(e.Raw, &body); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFields, err)
		}
		if body.ConversationID == nil || body.UserID == nil || body.IsTyping == nil {
			return fmt.Errorf("%w: typing requires conversation_id, user_id and is_typing", ErrInvalidFields)
		}
	case TypeUserStatus:
		var body struct {
			UserID *uint   `json:"user_id"`
			Status *string `json:"status"`
		}
		if err := json.Unmarshal(e.Raw, &body); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFields, err)
		}
		if body.UserID == nil || body.Status == nil || *body.Status == "" {
			return fmt.Errorf("%w: user_status requires user_id and status", ErrInvalidFields)
		}
	}
	return nil
}

// ConversationID extracts the conversation the envelope refers to, if any.
// Returns (0, false) when the envelope carries no conversation reference.
func (e *Envelope) ConversationID() (uint, bool) {
	switch e.Type {
	case TypeSendMessage, TypeTyping:
		var body struct {
			ConversationID uint `json:"conversation_id"`
		}
		if json.Unmarshal(e.Raw, &body) == nil && body.ConversationID != 0 {
			return body.ConversationID, true
		}
	case TypeNewMessage:
		var body struct {
			Message struct {
				ConversationID uint `json:"conversation_id"`
			} `json:"message"`
		}
		if json.Unmarshal(e.Raw, &body) == nil && body.Message.ConversationID != 0 {
			return body.Message.ConversationID, true
		}
	}
	return 0, false
}

// NewMessageEnvelope marshals a server-confirmed message into the wire form
// broadcast after a successful persist.
func NewMessageEnvelope(msg *models.Message) ([]byte, error) {
	return json.Marshal(struct {
		Type    string          `json:"type"`
		Message *models.Message `json:"message"`
	}{Type: TypeNewMessage, Message: msg})
}

// UserStatusEnvelope marshals a presence change into wire form.
func UserStatusEnvelope(userID uint, status models.UserStatus) ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		UserID uint   `json:"user_id"`
		Status string `json:"status"`
	}{Type: TypeUserStatus, UserID: userID, Status: string(status)})
}
