package chat

import (
	"github.com/google/uuid"

	"equate-backend/internal/models"
)

// Conversation is the message log for one session plus the per-turn
// stacking flag. It is owned by exactly one session and is not safe for
// concurrent turns; the session's single-flight gate enforces that.
type Conversation struct {
	ThreadID string
	messages []models.Message

	// stacked is true when the next emitted text chunk follows a
	// tool-triggered sub-response and needs a separator first.
	stacked bool
}

// NewConversation seeds a conversation with the system prompt and the
// canned greeting the page shows on connect.
func NewConversation() *Conversation {
	return &Conversation{
		ThreadID: uuid.NewString(),
		messages: []models.Message{
			{Role: models.RoleSystem, Content: SystemPrompt},
			{Role: models.RoleAssistant, Content: Greeting},
		},
	}
}

// Append adds messages to the log. The log is append-only; nothing is ever
// trimmed, so it grows for the session's lifetime.
func (c *Conversation) Append(msgs ...models.Message) {
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() models.Message {
	return c.messages[len(c.messages)-1]
}
