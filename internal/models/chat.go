package models

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a single tool invocation requested by the model.
// Args holds the raw JSON argument object as a string.
type ToolCall struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Args string `json:"args"`
}

// Message is one entry in a conversation log. Messages are immutable once
// appended; the log only grows for the lifetime of a session.
//
// ToolCalls is set on assistant messages that request tool invocations.
// ToolCallID and ToolName are set on tool-result messages and link back to
// the requesting call.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// ToolCallDelta is a partial tool-call fragment inside one streamed model
// fragment. ID and Name arrive once; Args may arrive in pieces that
// concatenate per call index.
type ToolCallDelta struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Args  string `json:"args,omitempty"`
}

// Fragment is one incremental unit of streamed model output: plain text
// and/or partial tool-call data.
type Fragment struct {
	Text      string          `json:"text,omitempty"`
	ToolCalls []ToolCallDelta `json:"tool_calls,omitempty"`
}

// HasToolCalls reports whether the fragment carries tool-call data.
func (f Fragment) HasToolCalls() bool {
	return len(f.ToolCalls) > 0
}

// WebSocket message types
type WSMessage struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

// WSMessage types exchanged with the chat page.
const (
	WSTypeChat  = "chat"  // client→server: prompt; server→client: final reply
	WSTypeChunk = "chunk" // server→client: incremental output
	WSTypeError = "error" // server→client: turn failed
)

// SeparatorChunk is the sentinel chunk telling the frontend to render a
// rule between stacked sub-responses of one turn.
const SeparatorChunk = "__pure__ :: <hr>"
