package llm

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-opus":   "claude-opus-4-1-20250805",
}

// AnthropicEncoder renders Messages API bodies using the Anthropic SDK's
// parameter types.
type AnthropicEncoder struct {
	model string
}

// NewAnthropicEncoder creates an encoder for the Anthropic Messages API.
func NewAnthropicEncoder(cfg AnthropicConfig) (*AnthropicEncoder, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic model is required")
	}
	return &AnthropicEncoder{model: resolveModel(cfg.Model, anthropicModels)}, nil
}

func (e *AnthropicEncoder) Encode(req Request) (json.RawMessage, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  buildAnthropicMessages(req.Messages),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	// Use structured output via JSON output format when schema is provided.
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{
				Schema: req.Schema.Definition,
			},
		}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal anthropic request: %w", err)
	}
	return body, nil
}

func (e *AnthropicEncoder) ModelID() string {
	return e.model
}

func (e *AnthropicEncoder) Endpoint() string {
	return anthropicEndpoint
}

func buildAnthropicMessages(msgs []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(msgs))
	for i, m := range msgs {
		role := anthropic.MessageParamRoleUser
		if m.Role == RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		out[i] = anthropic.MessageParam{
			Role: role,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(m.Content),
			},
		}
	}
	return out
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
