package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verser/internal/models"
)

func TestParseEnvelope(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		payload  string
		wantType string
		wantErr  error
	}{
		{"Send Message", `{"type":"send_message","conversation_id":1,"user_id":2,"content":"hi"}`, TypeSendMessage, nil},
		{"New Message", `{"type":"new_message","message":{"id":9,"conversation_id":3,"user_id":2,"content":"hi"}}`, TypeNewMessage, nil},
		{"Typing", `{"type":"typing","conversation_id":1,"user_id":2,"is_typing":true}`, TypeTyping, nil},
		{"User Status", `{"type":"user_status","user_id":2,"status":"online"}`, TypeUserStatus, nil},
		{"Unknown Type Relayed", `{"type":"reaction","post_id":4}`, "reaction", nil},
		{"Not JSON", `{nope`, "", ErrMalformed},
		{"JSON Array", `[1,2,3]`, "", ErrMalformed},
		{"Missing Type", `{"content":"hi"}`, "", ErrMalformed},
		{"Empty Type", `{"type":""}`, "", ErrMalformed},
		{"Numeric Type", `{"type":7}`, "", ErrMalformed},
		{"Send Message Missing Content", `{"type":"send_message","conversation_id":1,"user_id":2}`, "", ErrInvalidFields},
		{"New Message Without Message", `{"type":"new_message"}`, "", ErrInvalidFields},
		{"Typing Missing Flag", `{"type":"typing","conversation_id":1,"user_id":2}`, "", ErrInvalidFields},
		{"User Status Empty", `{"type":"user_status","user_id":2,"status":""}`, "", ErrInvalidFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvelope([]byte(tt.payload))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, env)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, env.Type)
			assert.Equal(t, []byte(tt.payload), env.Raw, "raw bytes must be preserved exactly")
		})
	}
}

func TestEnvelopeConversationID(t *testing.T) {
	t.Parallel()

	env, err := ParseEnvelope([]byte(`{"type":"send_message","conversation_id":42,"user_id":1,"content":"x"}`))
	require.NoError(t, err)
	id, ok := env.ConversationID()
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	env, err = ParseEnvelope([]byte(`{"type":"new_message","message":{"id":1,"conversation_id":7,"user_id":1,"content":"x"}}`))
	require.NoError(t, err)
	id, ok = env.ConversationID()
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	env, err = ParseEnvelope([]byte(`{"type":"user_status","user_id":3,"status":"away"}`))
	require.NoError(t, err)
	_, ok = env.ConversationID()
	assert.False(t, ok)
}

func TestNewMessageEnvelopeRoundTrip(t *testing.T) {
	t.Parallel()

	msg := &models.Message{ID: 11, ConversationID: 5, UserID: 2, Content: "confirmed", Type: models.MessageTypeText}
	data, err := NewMessageEnvelope(msg)
	require.NoError(t, err)

	env, err := ParseEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, TypeNewMessage, env.Type)
	id, ok := env.ConversationID()
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)
}
