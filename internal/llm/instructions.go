package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const instructionsPreamble = `The output must be a single JSON object that conforms to the JSON schema below. Return only the JSON object, with no surrounding prose.

For example, given the schema {"type": "object", "properties": {"ids": {"description": "a list of strings", "type": "array", "items": {"type": "string"}}}, "required": ["ids"]}
the object {"ids": ["a", "b"]} is a well-formatted instance of the schema. The object {"properties": {"ids": ["a", "b"]}} is not well-formatted.

Field names are case-sensitive and must be used exactly as written. Fields with an "enum" accept only the listed values.

Here is the output schema:
` + "```"

// FormatInstructions renders the schema as prompt text telling a model how
// to shape its response. It depends only on the schema definition, so the
// same schema always produces the same text.
func (s *Schema) FormatInstructions() (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil schema")
	}
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return "", fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}

	var b strings.Builder
	b.WriteString(instructionsPreamble)
	b.WriteByte('\n')
	b.Write(def)
	b.WriteString("\n```")
	return b.String(), nil
}
