package llm

import "encoding/json"

// Encoder renders a Request into the JSON body a completion interface
// accepts. Encoders never send anything: the body is handed to whatever
// client the caller runs.
type Encoder interface {
	// Encode returns the provider-native request body for req. When the
	// request's Schema is set, the body asks the provider for structured
	// output conforming to it.
	Encode(req Request) (json.RawMessage, error)

	// ModelID returns the model identifier this encoder targets.
	ModelID() string

	// Endpoint returns the URL the body is meant to be POSTed to.
	Endpoint() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Test-case generation is
	// single-turn, so this normally holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, no structured output format is requested.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as schema name for OpenAI and as
	// the compiled-schema cache key). Kebab-case, e.g. "fhir-test-cases".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}
