package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1",
}

// OpenAIEncoder renders Chat Completions bodies.
// It also serves OpenRouter and other OpenAI-compatible APIs via BaseURL.
type OpenAIEncoder struct {
	model   string
	baseURL string
}

// NewOpenAIEncoder creates an encoder for the OpenAI Chat Completions API.
func NewOpenAIEncoder(cfg OpenAIConfig) (*OpenAIEncoder, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai model is required")
	}
	return newOpenAIEncoder(cfg.Model, cfg.BaseURL, openaiModels), nil
}

func newOpenAIEncoder(model, baseURL string, models map[string]string) *OpenAIEncoder {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIEncoder{
		model:   resolveModel(model, models),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (e *OpenAIEncoder) Encode(req Request) (json.RawMessage, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               e.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	// Use JSON schema response format when schema is provided.
	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}

		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(schemaBytes),
				Strict:      true,
			},
		}
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshal openai request: %w", err)
	}
	return body, nil
}

func (e *OpenAIEncoder) ModelID() string {
	return e.model
}

func (e *OpenAIEncoder) Endpoint() string {
	return e.baseURL + "/chat/completions"
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}
