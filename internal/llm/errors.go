package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldError identifies one field of a response that failed validation.
type FieldError struct {
	// Field is the JSON pointer of the offending value, using wire names,
	// e.g. "/TestCases/0/Subtype". Empty for the document root.
	Field string

	// Reason describes the failure, e.g. "value must be one of 'POSITIVE', 'NEGATIVE'".
	Reason string
}

func (e FieldError) String() string {
	f := e.Field
	if f == "" {
		f = "(root)"
	}
	return fmt.Sprintf("%s: %s", f, e.Reason)
}

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Fields  []FieldError
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid LLM response: %v", e.Err)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("invalid LLM response: %s", strings.Join(parts, "; "))
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrUnsupportedSchema indicates a schema construct the target provider's
// structured-output format cannot express.
type ErrUnsupportedSchema struct {
	Provider string
	Err      error
}

func (e *ErrUnsupportedSchema) Error() string {
	return fmt.Sprintf("%s cannot express schema: %v", e.Provider, e.Err)
}

func (e *ErrUnsupportedSchema) Unwrap() error { return e.Err }
