package chat

import (
	"reflect"
	"testing"

	"equate-backend/internal/models"
)

func TestAccumulator_TextConcatenatesInOrder(t *testing.T) {
	acc := &Accumulator{}
	for _, text := range []string{"The ", "answer ", "is ", "14"} {
		acc.Add(models.Fragment{Text: text})
	}

	if acc.Text() != "The answer is 14" {
		t.Errorf("Expected concatenated text, got %q", acc.Text())
	}
	if acc.HasToolCalls() {
		t.Error("Expected no tool calls")
	}
}

func TestAccumulator_MergesToolCallArgsByIndex(t *testing.T) {
	acc := &Accumulator{}
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 0, ID: "call-a", Name: "numerical_expression_eval", Args: `{"expres`},
	}})
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 0, Args: `sion":"870912*15"}`},
	}})

	expected := []models.ToolCall{
		{ID: "call-a", Name: "numerical_expression_eval", Args: `{"expression":"870912*15"}`},
	}
	if !reflect.DeepEqual(acc.ToolCalls(), expected) {
		t.Errorf("Expected %v, got %v", expected, acc.ToolCalls())
	}
}

func TestAccumulator_NewIndicesAppend(t *testing.T) {
	acc := &Accumulator{}
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 0, ID: "call-a", Name: "first", Args: `{}`},
	}})
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 1, ID: "call-b", Name: "second", Args: `{}`},
	}})

	calls := acc.ToolCalls()
	if len(calls) != 2 {
		t.Fatalf("Expected 2 calls, got %d", len(calls))
	}
	if calls[0].Name != "first" || calls[1].Name != "second" {
		t.Errorf("Expected request order preserved, got %v", calls)
	}
}

func TestAccumulator_IDAndNameSetOnce(t *testing.T) {
	acc := &Accumulator{}
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 0, ID: "call-a", Name: "eval"},
	}})
	// Later deltas for the same index must not overwrite identity.
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 0, ID: "call-b", Name: "other", Args: `{}`},
	}})

	call := acc.ToolCalls()[0]
	if call.ID != "call-a" || call.Name != "eval" {
		t.Errorf("Expected first id/name kept, got %+v", call)
	}
}

func TestAccumulator_MixedTextAndToolCalls(t *testing.T) {
	acc := &Accumulator{}
	acc.Add(models.Fragment{Text: "Let me check: "})
	acc.Add(models.Fragment{ToolCalls: []models.ToolCallDelta{
		{Index: 0, ID: "call-a", Name: "eval", Args: `{"expression":"1+1"}`},
	}})

	msg := acc.Message()
	if msg.Role != models.RoleAssistant {
		t.Errorf("Expected assistant role, got %q", msg.Role)
	}
	if msg.Content != "Let me check: " {
		t.Errorf("Expected pass text in content, got %q", msg.Content)
	}
	if len(msg.ToolCalls) != 1 {
		t.Errorf("Expected 1 tool call, got %d", len(msg.ToolCalls))
	}
}
