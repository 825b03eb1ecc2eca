package llm

import (
	"testing"

	"github.com/ollama/ollama/api"
	"google.golang.org/genai"
)

func TestConvertArgs(t *testing.T) {
	args := convertArgs(map[string]any{
		"family":     "AC",
		"baseline":   "moderate",
		"control_id": "AC-2",
	})

	if args.Len() != 3 {
		t.Fatalf("len = %d, want 3", args.Len())
	}
	if v, ok := args.Get("family"); !ok || v != "AC" {
		t.Errorf("family = %v (ok=%v)", v, ok)
	}

	// Insertion is key-sorted so encoding stays deterministic.
	var keys []string
	for k := range args.All() {
		keys = append(keys, k)
	}
	want := []string{"baseline", "control_id", "family"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key order = %v, want %v", keys, want)
		}
	}
}

func TestConvertParameters(t *testing.T) {
	props := convertParameters(map[string]any{
		"properties": map[string]any{
			"control_id": map[string]any{
				"type":        "string",
				"description": "Control identifier like AC-2",
			},
			"target_level": map[string]any{
				"type": "integer",
			},
		},
	})

	if props.Len() != 2 {
		t.Fatalf("len = %d, want 2", props.Len())
	}
	p, ok := props.Get("control_id")
	if !ok || p.Description != "Control identifier like AC-2" {
		t.Errorf("control_id = %+v (ok=%v)", p, ok)
	}
	if len(p.Type) != 1 || p.Type[0] != "string" {
		t.Errorf("control_id type = %v", p.Type)
	}
	p, _ = props.Get("target_level")
	if len(p.Type) != 1 || p.Type[0] != "integer" {
		t.Errorf("target_level type = %v", p.Type)
	}

	if got := convertParameters(map[string]any{}); got.Len() != 0 {
		t.Errorf("no properties should yield an empty map, got %d entries", got.Len())
	}
}

func TestConvertToolCallsToResponse(t *testing.T) {
	calls := []api.ToolCall{
		{Function: api.ToolCallFunction{
			Name:      "get_control",
			Arguments: convertArgs(map[string]any{"control_id": "AC-2"}),
		}},
	}

	resp := convertToolCallsToResponse(calls)
	if len(resp.Content.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(resp.Content.Parts))
	}
	fc := resp.Content.Parts[0].FunctionCall
	if fc == nil || fc.Name != "get_control" {
		t.Fatalf("function call = %+v", fc)
	}
	if fc.Args["control_id"] != "AC-2" {
		t.Errorf("args = %v", fc.Args)
	}
}

func TestConvertToOllamaMessages(t *testing.T) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{genai.NewPartFromText("explain AC-2")}},
		{Role: "model", Parts: []*genai.Part{genai.NewPartFromText("AC-2 covers account management.")}},
	}

	messages := convertToOllamaMessages(contents)
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[0].Content != "explain AC-2" {
		t.Errorf("user message = %+v", messages[0])
	}
	if messages[1].Role != "assistant" {
		t.Errorf("model role should map to assistant, got %q", messages[1].Role)
	}
}
