package llm

import "fmt"

// Config selects the completion interface a request body is encoded for.
type Config struct {
	// Provider selects which request format to emit.
	// Values: "anthropic", "openai", "gemini", "openrouter"
	Provider string `yaml:"provider" env:"FHIRTC_LLM_PROVIDER" env-default:"openai"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`

	// MaxTokens is the response token budget written into the body.
	MaxTokens int `yaml:"max_tokens" env:"FHIRTC_LLM_MAX_TOKENS" env-default:"16000"`

	// Temperature is written into the body when greater than zero.
	Temperature float64 `yaml:"temperature" env:"FHIRTC_LLM_TEMPERATURE" env-default:"0"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	Model string `yaml:"model" env:"FHIRTC_ANTHROPIC_MODEL" env-default:"claude-sonnet"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	Model   string `yaml:"model" env:"FHIRTC_OPENAI_MODEL" env-default:"gpt-4o"`
	BaseURL string `yaml:"base_url" env:"FHIRTC_OPENAI_BASE_URL" env-default:""` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	Model string `yaml:"model" env:"FHIRTC_GEMINI_MODEL" env-default:"gemini-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	Model   string `yaml:"model" env:"FHIRTC_OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-exp"`
	BaseURL string `yaml:"base_url" env:"FHIRTC_OPENROUTER_BASE_URL" env-default:""` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		MaxTokens: 16000,
	}
}

// Model returns the configured model for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.Model
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "openrouter":
		return c.OpenRouter.Model
	}
	return ""
}

// WithModel returns a copy of c with the selected provider's model set.
func (c Config) WithModel(model string) Config {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
	return c
}

// Validate checks that the selected provider is known and has a model.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Model() == "" {
		return fmt.Errorf("no model configured for the %s provider", c.Provider)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1], got %g", c.Temperature)
	}
	return nil
}
