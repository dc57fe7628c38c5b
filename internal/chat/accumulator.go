package chat

import (
	"strings"

	"equate-backend/internal/models"
)

// Accumulator merges streamed fragments into one assistant message. Text
// concatenates in emission order; tool-call deltas merge by call index —
// id and name are taken from the first delta that carries them, argument
// fragments concatenate, and a delta for an unseen index appends a new
// call. The merge is pure per Add: no I/O, no shared state.
type Accumulator struct {
	text  strings.Builder
	calls []models.ToolCall
}

// Add folds one fragment into the accumulator.
func (a *Accumulator) Add(f models.Fragment) {
	a.text.WriteString(f.Text)

	for _, delta := range f.ToolCalls {
		for delta.Index >= len(a.calls) {
			a.calls = append(a.calls, models.ToolCall{})
		}

		call := &a.calls[delta.Index]
		if call.ID == "" {
			call.ID = delta.ID
		}
		if call.Name == "" {
			call.Name = delta.Name
		}
		call.Args += delta.Args
	}
}

// Text returns the free text accumulated so far.
func (a *Accumulator) Text() string {
	return a.text.String()
}

// ToolCalls returns the merged tool calls in request order.
func (a *Accumulator) ToolCalls() []models.ToolCall {
	return a.calls
}

// HasToolCalls reports whether the model requested any tool calls in this
// pass.
func (a *Accumulator) HasToolCalls() bool {
	return len(a.calls) > 0
}

// Message assembles the full accumulated assistant message.
func (a *Accumulator) Message() models.Message {
	return models.Message{
		Role:      models.RoleAssistant,
		Content:   a.text.String(),
		ToolCalls: a.calls,
	}
}
