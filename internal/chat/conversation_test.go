package chat

import (
	"testing"

	"equate-backend/internal/models"
)

func TestNewConversation_Seed(t *testing.T) {
	conv := NewConversation()

	if conv.ThreadID == "" {
		t.Error("Expected a thread id")
	}
	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 seed messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleSystem {
		t.Errorf("Expected system prompt first, got %q", msgs[0].Role)
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Content != Greeting {
		t.Errorf("Expected greeting second, got %+v", msgs[1])
	}
}

func TestConversation_MessagesReturnsCopy(t *testing.T) {
	conv := NewConversation()
	msgs := conv.Messages()
	msgs[0].Content = "tampered"

	if conv.Messages()[0].Content == "tampered" {
		t.Error("Expected Messages to return a copy of the log")
	}
}
