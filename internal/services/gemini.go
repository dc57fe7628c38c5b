package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"

	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"equate-backend/internal/models"
	"equate-backend/internal/tools"
)

// GeminiService streams model responses over a conversation log. It
// implements chat.Streamer.
type GeminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxRetries  int
	decls       []*genai.FunctionDeclaration
	rateChan    chan struct{} // Token bucket
}

func NewGeminiService(
	ctx context.Context,
	apiKey string,
	modelName string,
	temperature float64,
	concurrentReqs int,
	maxRetries int,
	registry *tools.Registry,
) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
		maxRetries:  maxRetries,
		decls:       declarationsFromRegistry(registry),
		rateChan:    rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Stream runs one streaming pass over the message log, delivering
// fragments as they arrive. A pass that fails before delivering any
// fragment is retried up to maxRetries times; once output has been
// forwarded the pass fails hard, since chunks were already emitted.
func (s *GeminiService) Stream(ctx context.Context, messages []models.Message, onFragment func(models.Fragment)) error {
	if err := s.acquireRate(ctx); err != nil {
		return err
	}
	defer s.releaseRate()

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		delivered, err := s.streamOnce(ctx, messages, onFragment)
		if err == nil {
			return nil
		}
		lastErr = err

		if delivered || ctx.Err() != nil {
			break
		}

		select {
		case <-time.After(time.Duration(attempt+1) * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("Gemini stream failed: %w", lastErr)
}

func (s *GeminiService) streamOnce(ctx context.Context, messages []models.Message, onFragment func(models.Fragment)) (bool, error) {
	system, contents := convertMessages(messages)
	if len(contents) == 0 {
		return false, fmt.Errorf("empty message log")
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(s.temperature)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if len(s.decls) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: s.decls}}
	}

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]
	last := contents[len(contents)-1]

	iter := cs.SendMessageStream(ctx, last.Parts...)

	delivered := false
	callIndex := 0
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return delivered, nil
		}
		if err != nil {
			return delivered, err
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}

		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				if p == "" {
					continue
				}
				onFragment(models.Fragment{Text: string(p)})
				delivered = true
			case genai.FunctionCall:
				args, err := json.Marshal(p.Args)
				if err != nil {
					args = []byte("{}")
				}
				// Gemini function calls carry no id; synthesize one so
				// tool results can reference their requesting call.
				onFragment(models.Fragment{ToolCalls: []models.ToolCallDelta{{
					Index: callIndex,
					ID:    uuid.NewString(),
					Name:  p.Name,
					Args:  string(args),
				}}})
				callIndex++
				delivered = true
			}
		}
	}
}

// convertMessages maps the internal log onto Gemini chat contents. The
// system prompt is pulled out for the model's system instruction;
// consecutive tool results merge into one function content, as the API
// expects all responses to a model turn together.
func convertMessages(messages []models.Message) (system string, contents []*genai.Content) {
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content

		case models.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})

		case models.RoleAssistant:
			var parts []genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				args := map[string]any{}
				json.Unmarshal([]byte(call.Args), &args)
				parts = append(parts, genai.FunctionCall{Name: call.Name, Args: args})
			}
			if len(parts) == 0 {
				parts = []genai.Part{genai.Text("")}
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})

		case models.RoleTool:
			part := genai.FunctionResponse{
				Name:     msg.ToolName,
				Response: map[string]any{"result": msg.Content},
			}
			if n := len(contents); n > 0 && contents[n-1].Role == "function" {
				contents[n-1].Parts = append(contents[n-1].Parts, part)
				continue
			}
			contents = append(contents, &genai.Content{
				Role:  "function",
				Parts: []genai.Part{part},
			})
		}
	}

	return system, contents
}

// declarationsFromRegistry converts tool descriptors into Gemini function
// declarations.
func declarationsFromRegistry(registry *tools.Registry) []*genai.FunctionDeclaration {
	var decls []*genai.FunctionDeclaration
	for _, tool := range registry.List() {
		properties := make(map[string]*genai.Schema, len(tool.Params))
		var required []string
		for _, param := range tool.Params {
			properties[param.Name] = &genai.Schema{
				Type:        schemaType(param.Type),
				Description: param.Description,
			}
			if param.Required {
				required = append(required, param.Name)
			}
		}

		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
		})
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
