package llm

import (
	"encoding/json"
	"testing"
)

func decodeBody(t *testing.T, body json.RawMessage) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("body is not a JSON object: %v\n%s", err, body)
	}
	return m
}

func testRequest() Request {
	return Request{
		System:    "You are a FHIR tester.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate test cases."}},
		Schema:    testSchema(),
		MaxTokens: 256,
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-3-7-sonnet-latest", "claude-3-7-sonnet-latest"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, anthropicModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestAnthropicEncoder_Encode(t *testing.T) {
	enc, err := NewAnthropicEncoder(AnthropicConfig{Model: "claude-sonnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := enc.Encode(testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decodeBody(t, body)

	if m["model"] != "claude-sonnet-4-20250514" {
		t.Errorf("expected resolved model, got %v", m["model"])
	}
	if m["max_tokens"] != float64(256) {
		t.Errorf("expected max_tokens 256, got %v", m["max_tokens"])
	}
	if _, ok := m["temperature"]; ok {
		t.Errorf("temperature should be omitted when zero")
	}

	system, ok := m["system"].([]any)
	if !ok || len(system) != 1 {
		t.Fatalf("expected one system block, got %v", m["system"])
	}
	if system[0].(map[string]any)["text"] != "You are a FHIR tester." {
		t.Errorf("unexpected system block %v", system[0])
	}

	msgs, ok := m["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", m["messages"])
	}
	if msgs[0].(map[string]any)["role"] != "user" {
		t.Errorf("expected user role, got %v", msgs[0])
	}

	oc, ok := m["output_config"].(map[string]any)
	if !ok {
		t.Fatalf("expected output_config, got %v", m["output_config"])
	}
	format := oc["format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("expected json_schema format, got %v", format["type"])
	}
	if _, ok := format["schema"].(map[string]any)["properties"]; !ok {
		t.Errorf("expected schema definition in output_config")
	}
}

func TestAnthropicEncoder_NoSchema(t *testing.T) {
	enc, _ := NewAnthropicEncoder(AnthropicConfig{Model: "claude-haiku"})
	req := testRequest()
	req.Schema = nil
	req.Temperature = 0.5

	body, err := enc.Encode(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decodeBody(t, body)
	if _, ok := m["output_config"]; ok {
		t.Errorf("output_config should be omitted without a schema")
	}
	if m["temperature"] != 0.5 {
		t.Errorf("expected temperature 0.5, got %v", m["temperature"])
	}
}

func TestAnthropicEncoder_Endpoint(t *testing.T) {
	enc, _ := NewAnthropicEncoder(AnthropicConfig{Model: "claude-sonnet"})
	if enc.Endpoint() != "https://api.anthropic.com/v1/messages" {
		t.Errorf("unexpected endpoint %q", enc.Endpoint())
	}
}

func TestNewAnthropicEncoder_RequiresModel(t *testing.T) {
	if _, err := NewAnthropicEncoder(AnthropicConfig{}); err == nil {
		t.Fatal("expected error for empty model")
	}
}
