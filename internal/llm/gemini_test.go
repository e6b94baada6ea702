package llm

import (
	"errors"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer", "minimum": 0},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "integer"},
			},
		},
		"required":             []any{"name", "age"},
		"additionalProperties": false,
	}

	schema, err := buildGeminiSchema(def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if m := schema.Properties["age"].Minimum; m == nil || *m != 0 {
		t.Fatalf("expected minimum 0 for age, got %v", m)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	scores := schema.Properties["scores"]
	if scores.Type != "ARRAY" || scores.Items.Type != "INTEGER" {
		t.Fatalf("expected ARRAY of INTEGER for scores, got %s of %s", scores.Type, scores.Items.Type)
	}
	if scores.MinItems == nil || *scores.MinItems != 1 {
		t.Fatalf("expected minItems 1 for scores, got %v", scores.MinItems)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
	if len(schema.PropertyOrdering) != 2 || schema.PropertyOrdering[0] != "name" {
		t.Fatalf("expected ordering from required list, got %v", schema.PropertyOrdering)
	}
}

func TestBuildGeminiSchema_StringSlices(t *testing.T) {
	schema, err := buildGeminiSchema(map[string]any{
		"type":     "string",
		"enum":     []string{"X", "Y"},
		"required": []string{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema.Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %v", schema.Enum)
	}
}

func TestBuildGeminiSchema_Unsupported(t *testing.T) {
	tests := []map[string]any{
		{"$ref": "#/definitions/x"},
		{"type": []any{"string", "null"}},
		{"type": "object", "properties": map[string]any{"a": map[string]any{"$ref": "#/a"}}},
	}
	for _, def := range tests {
		if _, err := buildGeminiSchema(def); err == nil {
			t.Errorf("expected error for %v", def)
		}
	}
}

func TestGeminiEncoder_Encode(t *testing.T) {
	enc, err := NewGeminiEncoder(GeminiConfig{Model: "gemini-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := testRequest()
	req.Temperature = 0.2

	body, err := enc.Encode(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := decodeBody(t, body)

	contents := m["contents"].([]any)
	if len(contents) != 1 || contents[0].(map[string]any)["role"] != "user" {
		t.Fatalf("unexpected contents %v", contents)
	}
	si := m["systemInstruction"].(map[string]any)
	if si["parts"].([]any)[0].(map[string]any)["text"] != "You are a FHIR tester." {
		t.Errorf("unexpected systemInstruction %v", si)
	}
	gc := m["generationConfig"].(map[string]any)
	if gc["maxOutputTokens"] != float64(256) {
		t.Errorf("expected maxOutputTokens 256, got %v", gc["maxOutputTokens"])
	}
	if gc["responseMimeType"] != "application/json" {
		t.Errorf("expected JSON mime type, got %v", gc["responseMimeType"])
	}
	if _, ok := gc["responseSchema"].(map[string]any); !ok {
		t.Errorf("expected responseSchema, got %v", gc["responseSchema"])
	}
}

func TestGeminiEncoder_UnsupportedSchema(t *testing.T) {
	enc, _ := NewGeminiEncoder(GeminiConfig{Model: "gemini-flash"})
	req := testRequest()
	req.Schema = &Schema{Name: "refs", Definition: map[string]any{"$ref": "#/x"}}

	_, err := enc.Encode(req)
	var unsup *ErrUnsupportedSchema
	if !errors.As(err, &unsup) {
		t.Fatalf("expected ErrUnsupportedSchema, got %T: %v", err, err)
	}
	if unsup.Provider != "gemini" {
		t.Errorf("unexpected provider %q", unsup.Provider)
	}
}

func TestGeminiEncoder_Endpoint(t *testing.T) {
	enc, _ := NewGeminiEncoder(GeminiConfig{Model: "gemini-flash"})
	want := "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	if enc.Endpoint() != want {
		t.Errorf("Endpoint() = %q, want %q", enc.Endpoint(), want)
	}
}
