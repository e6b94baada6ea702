package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v3"
)

// LoadChangeLog reads a change log file. JSON and Hjson files (.json,
// .hjson) and YAML files (.yaml, .yml) are parsed into structured values;
// anything else is returned as text.
func LoadChangeLog(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read change log: %w", err)
	}

	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".hjson":
		// Hjson is a superset of JSON, so hand-edited logs with comments
		// and unquoted keys load too.
		if err := hjson.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse change log %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse change log %s: %w", path, err)
		}
	default:
		return string(data), nil
	}
	return v, nil
}
