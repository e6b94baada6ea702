package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/abhisek/fhirtestgen/internal/llm"
	"github.com/abhisek/fhirtestgen/internal/table"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Input holds everything needed to compose one prompt pair.
type Input struct {
	// Mapping is the field-mapping specification. Required.
	Mapping *table.Table

	// Layout names the source message format, e.g. "ADT". Required.
	Layout string

	// Resource names the target FHIR resource, e.g. "Patient". Required.
	Resource string

	// TestCases and InputSamples are optional; nil renders as [].
	TestCases    *table.Table
	InputSamples *table.Table

	// ChangeLog is passed through without interpretation. A string is
	// inserted verbatim; anything else is rendered as JSON.
	ChangeLog any
}

// Prompts is a composed system/user prompt pair.
type Prompts struct {
	System string
	User   string

	// Schema is the output schema the user prompt's formatting
	// instructions were derived from.
	Schema *llm.Schema
}

// Request builds a single-turn completion request from the prompts.
func (p *Prompts) Request(cfg llm.Config) llm.Request {
	return llm.NewRequest(cfg, p.System, p.User, p.Schema)
}

// FormatError reports a template substitution failure, typically a missing
// required parameter.
type FormatError struct {
	Template string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s prompt: %v", e.Template, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Composer renders prompt pairs. It holds only parsed templates and the
// precomputed formatting instructions, so one Composer may be shared.
type Composer struct {
	system       *template.Template
	user         *template.Template
	schema       *llm.Schema
	instructions string
}

// NewComposer parses the embedded templates and derives formatting
// instructions from schema.
func NewComposer(schema *llm.Schema) (*Composer, error) {
	instructions, err := schema.FormatInstructions()
	if err != nil {
		return nil, fmt.Errorf("format instructions: %w", err)
	}

	system, err := parseTemplate("system")
	if err != nil {
		return nil, err
	}
	user, err := parseTemplate("user")
	if err != nil {
		return nil, err
	}

	return &Composer{
		system:       system,
		user:         user,
		schema:       schema,
		instructions: instructions,
	}, nil
}

func parseTemplate(name string) (*template.Template, error) {
	src, err := templateFS.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("read %s template: %w", name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	return tmpl, nil
}

// Compose normalizes the tables in in and renders both prompts.
// A missing layout, resource or mapping table fails with *FormatError.
func (c *Composer) Compose(in Input) (*Prompts, error) {
	data, err := normalize(in)
	if err != nil {
		return nil, err
	}

	system, err := render(c.system, data)
	if err != nil {
		return nil, err
	}

	data["FormatInstructions"] = c.instructions
	user, err := render(c.user, data)
	if err != nil {
		return nil, err
	}

	return &Prompts{System: system, User: user, Schema: c.schema}, nil
}

func render(tmpl *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &FormatError{Template: tmpl.Name(), Err: err}
	}
	return buf.String(), nil
}
