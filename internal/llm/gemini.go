package llm

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiEncoder renders generateContent bodies for the Gemini REST API
// using the genai SDK's wire types.
type GeminiEncoder struct {
	model string
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents          []*genai.Content        `json:"contents"`
	SystemInstruction *genai.Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *genai.GenerationConfig `json:"generationConfig,omitempty"`
}

// NewGeminiEncoder creates an encoder for the Gemini generateContent API.
func NewGeminiEncoder(cfg GeminiConfig) (*GeminiEncoder, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}
	return &GeminiEncoder{model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (e *GeminiEncoder) Encode(req Request) (json.RawMessage, error) {
	config := &genai.GenerationConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	// Configure structured output.
	if req.Schema != nil {
		schema, err := buildGeminiSchema(req.Schema.Definition)
		if err != nil {
			return nil, &ErrUnsupportedSchema{Provider: "gemini", Err: err}
		}
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	body := geminiRequest{
		Contents:         buildGeminiContents(req.Messages),
		GenerationConfig: config,
	}
	if req.System != "" {
		body.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	out, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}
	return out, nil
}

func (e *GeminiEncoder) ModelID() string {
	return e.model
}

func (e *GeminiEncoder) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, e.model)
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// buildGeminiSchema converts a JSON Schema definition map to a genai.Schema.
// Gemini's schema dialect is an OpenAPI subset: references and union types
// cannot be expressed and are reported as errors. additionalProperties has
// no counterpart and is dropped.
func buildGeminiSchema(def map[string]any) (*genai.Schema, error) {
	if _, ok := def["$ref"]; ok {
		return nil, fmt.Errorf("$ref is not supported")
	}

	schema := &genai.Schema{}

	switch t := def["type"].(type) {
	case nil:
	case string:
		schema.Type = mapGeminiType(t)
	default:
		return nil, fmt.Errorf("type %v is not supported", t)
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}

	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			propDef, ok := v.(map[string]any)
			if !ok {
				continue
			}
			prop, err := buildGeminiSchema(propDef)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}
			schema.Properties[k] = prop
		}
	}

	schema.Required = stringList(def["required"])
	// Keep the model's output in declaration order.
	if len(schema.Properties) > 0 {
		for _, r := range schema.Required {
			if _, ok := schema.Properties[r]; ok {
				schema.PropertyOrdering = append(schema.PropertyOrdering, r)
			}
		}
	}

	schema.Enum = stringList(def["enum"])

	if items, ok := def["items"].(map[string]any); ok {
		item, err := buildGeminiSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		schema.Items = item
	}

	if v, ok := toFloat(def["minimum"]); ok {
		schema.Minimum = &v
	}
	if v, ok := toFloat(def["maximum"]); ok {
		schema.Maximum = &v
	}
	if v, ok := toFloat(def["minItems"]); ok {
		n := int64(v)
		schema.MinItems = &n
	}

	return schema, nil
}

// stringList accepts both []string (Go literals) and []any (decoded JSON).
func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...)
	case []any:
		var out []string
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
