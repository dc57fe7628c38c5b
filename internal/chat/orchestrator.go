package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"equate-backend/internal/models"
	"equate-backend/internal/tools"
)

// ErrToolLoopExceeded means the model kept requesting tool calls past the
// configured round cap and the turn was failed.
var ErrToolLoopExceeded = errors.New("tool call round limit exceeded")

// Streamer is the model call the orchestrator consumes: stream a response
// over the full message log, delivering fragments as they arrive.
type Streamer interface {
	Stream(ctx context.Context, messages []models.Message, onFragment func(models.Fragment)) error
}

// ChunkFunc receives incremental output for the client: text fragments and
// the occasional models.SeparatorChunk sentinel.
type ChunkFunc func(chunk string)

// Orchestrator runs one turn at a time against a conversation: stream a
// model pass, execute any requested tool calls, feed results back, repeat
// until the model answers without tool calls.
type Orchestrator struct {
	model         Streamer
	registry      *tools.Registry
	maxToolRounds int
}

func NewOrchestrator(model Streamer, registry *tools.Registry, maxToolRounds int) *Orchestrator {
	return &Orchestrator{
		model:         model,
		registry:      registry,
		maxToolRounds: maxToolRounds,
	}
}

// RunTurn appends the user prompt, then alternates streaming and
// tool-execution passes until the model produces a pass with no tool
// calls. That pass's text is the turn's result; it is also the content of
// the log's final assistant message.
//
// Text fragments are forwarded to onChunk as they arrive. When a pass
// follows tool execution and the previous pass produced visible text, a
// separator sentinel is emitted once before the first text fragment.
//
// Not safe for concurrent calls on one conversation; the session gate
// serializes turns.
func (o *Orchestrator) RunTurn(ctx context.Context, conv *Conversation, prompt string, onChunk ChunkFunc) (string, error) {
	conv.Append(models.Message{Role: models.RoleUser, Content: prompt})
	conv.stacked = false

	for round := 0; round < o.maxToolRounds; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		acc := &Accumulator{}
		err := o.model.Stream(ctx, conv.Messages(), func(f models.Fragment) {
			acc.Add(f)

			if f.HasToolCalls() || f.Text == "" {
				return
			}

			// Put a rule between stacked sub-responses, once.
			if conv.stacked {
				onChunk(models.SeparatorChunk)
				conv.stacked = false
			}
			onChunk(f.Text)
		})
		if err != nil {
			return "", fmt.Errorf("model stream: %w", err)
		}

		if !acc.HasToolCalls() {
			conv.Append(acc.Message())
			return acc.Text(), nil
		}

		// Keep the pass's free text as its own assistant message ahead of
		// the accumulated tool-call message, so the model resumes from
		// where it left off instead of restarting its answer.
		passText := acc.Text()
		if strings.TrimSpace(passText) != "" {
			conv.Append(models.Message{Role: models.RoleAssistant, Content: passText})
		}
		conv.Append(acc.Message())
		conv.stacked = strings.TrimSpace(passText) != ""

		// Execute strictly in request order: later calls may depend on
		// earlier results, and the output stream must not interleave.
		for _, call := range acc.ToolCalls() {
			result := o.registry.Invoke(ctx, call)
			log.Printf("[tool] %s(%s) -> %s", call.Name, call.Args, result)
			conv.Append(models.Message{
				Role:       models.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	return "", ErrToolLoopExceeded
}
