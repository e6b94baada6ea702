package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// File names written by Bundle.WriteDir.
const (
	SystemPromptFile = "system_prompt.txt"
	UserPromptFile   = "user_prompt.txt"
	BundleFile       = "bundle.json"
)

// Bundle is a composed prompt pair with the metadata needed to trace a
// model response back to the inputs that produced it.
type Bundle struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Layout      string    `json:"layout"`
	Resource    string    `json:"resource"`
	Schema      string    `json:"schema"`
	MappingRows int       `json:"mapping_rows"`
	TestCases   int       `json:"test_cases"`
	Samples     int       `json:"input_samples"`

	Prompts *Prompts `json:"-"`
}

// NewBundle wraps p with a fresh ID.
func NewBundle(in Input, p *Prompts) *Bundle {
	b := &Bundle{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Layout:      in.Layout,
		Resource:    in.Resource,
		MappingRows: in.Mapping.Len(),
		TestCases:   in.TestCases.Len(),
		Samples:     in.InputSamples.Len(),
		Prompts:     p,
	}
	if p.Schema != nil {
		b.Schema = p.Schema.Name
	}
	return b
}

// WriteDir writes both prompts and the bundle metadata into dir,
// creating it if needed.
func (b *Bundle) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	meta, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{SystemPromptFile, []byte(b.Prompts.System)},
		{UserPromptFile, []byte(b.Prompts.User)},
		{BundleFile, append(meta, '\n')},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}
