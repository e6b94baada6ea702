package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/abhisek/fhirtestgen/internal/llm"
	"github.com/abhisek/fhirtestgen/internal/table"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "fhirtestgen.yaml"

// Config holds all configuration for fhirtestgen.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values.
type Config struct {
	LLM   llm.Config  `yaml:"llm"`
	Table TableConfig `yaml:"table"`
	Log   LogConfig   `yaml:"log"`
}

// TableConfig controls how tabular inputs are loaded.
type TableConfig struct {
	// NAValues are the CSV cell texts read as missing values. Empty cells
	// are always missing. Defaults to the pandas marker list when unset.
	NAValues []string `yaml:"na_values" env:"FHIRTC_NA_VALUES" env-separator:","`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"FHIRTC_LOG_LEVEL" env-default:"warn"`
}

// TableOptions returns the loader options for the configured markers.
func (c *Config) TableOptions() table.Options {
	return table.Options{NAValues: c.Table.NAValues}
}

// Load reads configuration from path with environment variable overrides.
// An empty path falls back to DefaultPath when that file exists, and to
// environment variables and defaults alone otherwise. An explicit path
// that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(statErr, fs.ErrNotExist) && !explicit:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("config file %s: %w", path, statErr)
	}

	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("invalid llm configuration: %w", err)
	}
	return cfg, nil
}
