package llm

import "fmt"

// NewEncoder creates an Encoder for the provider selected in cfg.
func NewEncoder(cfg Config) (Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var enc Encoder
	var err error

	switch cfg.Provider {
	case "anthropic":
		enc, err = NewAnthropicEncoder(cfg.Anthropic)
	case "openai":
		enc, err = NewOpenAIEncoder(cfg.OpenAI)
	case "gemini":
		enc, err = NewGeminiEncoder(cfg.Gemini)
	case "openrouter":
		enc, err = NewOpenRouterEncoder(cfg.OpenRouter)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s encoder: %w", cfg.Provider, err)
	}
	return enc, nil
}

// NewRequest builds a single-turn Request from a composed prompt pair
// using the budget in cfg.
func NewRequest(cfg Config, system, user string, schema *Schema) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}
