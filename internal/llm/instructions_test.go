package llm

import (
	"strings"
	"testing"
)

func TestFormatInstructions(t *testing.T) {
	s := testSchema()
	got, err := s.FormatInstructions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `"required":["name","age"]`) {
		t.Errorf("expected the compact schema in the instructions, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "```") {
		t.Errorf("expected the schema to be fenced")
	}

	again, _ := testSchema().FormatInstructions()
	if again != got {
		t.Errorf("instructions must be deterministic")
	}
}

func TestFormatInstructions_NilSchema(t *testing.T) {
	var s *Schema
	if _, err := s.FormatInstructions(); err == nil {
		t.Fatal("expected error for nil schema")
	}
}
