package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"equate-backend/internal/models"
)

// Param describes one named parameter of a tool's input schema.
type Param struct {
	Name        string
	Type        string // "string", "number", "boolean"
	Description string
	Required    bool
}

// InvokeFunc runs a tool. Failures are returned as text, never as an error:
// the model sees the error message as the tool's answer.
type InvokeFunc func(ctx context.Context, args map[string]any) string

// Tool is a registry entry: what the tool is called, how to prompt the
// model about it, what it accepts, and how to run it.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Invoke      InvokeFunc
}

// Registry maps tool names to tools. It is fixed at startup and read-only
// afterwards, so it is shared across all sessions without locking.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

// Resolve looks up a tool by name.
func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Invoke dispatches a requested tool call and returns the result text.
// Unknown tool names and malformed arguments come back as error text; the
// turn continues and the model decides how to respond.
func (r *Registry) Invoke(ctx context.Context, call models.ToolCall) string {
	tool, ok := r.tools[call.Name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	args := map[string]any{}
	if call.Args != "" {
		if err := json.Unmarshal([]byte(call.Args), &args); err != nil {
			return fmt.Sprintf("Error: malformed arguments for %q: %v", call.Name, err)
		}
	}

	return tool.Invoke(ctx, args)
}
