package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterEncoder wraps OpenAIEncoder with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the body format is reused.
type OpenRouterEncoder struct {
	*OpenAIEncoder
}

// NewOpenRouterEncoder creates an encoder targeting the OpenRouter API.
func NewOpenRouterEncoder(cfg OpenRouterConfig) (*OpenRouterEncoder, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	// OpenRouter model IDs are namespaced ("vendor/model"), so no aliases apply.
	return &OpenRouterEncoder{OpenAIEncoder: newOpenAIEncoder(cfg.Model, baseURL, nil)}, nil
}
