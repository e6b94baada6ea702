package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fhirtestgen/internal/config"
	"github.com/abhisek/fhirtestgen/internal/prompt"
	"github.com/abhisek/fhirtestgen/internal/table"
	"github.com/abhisek/fhirtestgen/internal/testgen"
)

// addInputFlags registers the prompt input flags shared by compose and export.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("mapping", "", "Mapping table file (.csv, .json, .yaml)")
	f.String("layout", "", "Source layout name, e.g. ADT")
	f.String("resource", "", "Target FHIR resource name, e.g. Patient")
	f.String("test-cases", "", "Existing test-case table file (optional)")
	f.String("input-samples", "", "Input-sample table file (optional)")
	f.String("changelog", "", "Change log file; .json/.hjson/.yaml are parsed, anything else is text")
	f.String("changelog-text", "", "Change log text (used when --changelog is not set)")
	_ = cmd.MarkFlagRequired("mapping")
}

// readInput loads every table and the change log named by the input flags.
func readInput(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) (prompt.Input, error) {
	f := cmd.Flags()
	layout, _ := f.GetString("layout")
	resource, _ := f.GetString("resource")
	in := prompt.Input{Layout: layout, Resource: resource}

	opts := cfg.TableOptions()
	load := func(flag string, required bool) (*table.Table, error) {
		path, _ := f.GetString(flag)
		if path == "" {
			if required {
				return nil, fmt.Errorf("--%s is required", flag)
			}
			return nil, nil
		}
		t, err := table.Load(path, opts)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded table",
			zap.String("flag", flag),
			zap.String("path", path),
			zap.Int("rows", t.Len()),
			zap.Strings("columns", t.Columns))
		return t, nil
	}

	var err error
	if in.Mapping, err = load("mapping", true); err != nil {
		return in, err
	}
	if in.TestCases, err = load("test-cases", false); err != nil {
		return in, err
	}
	if in.InputSamples, err = load("input-samples", false); err != nil {
		return in, err
	}

	if path, _ := f.GetString("changelog"); path != "" {
		if in.ChangeLog, err = prompt.LoadChangeLog(path); err != nil {
			return in, err
		}
	} else if f.Changed("changelog-text") {
		in.ChangeLog, _ = f.GetString("changelog-text")
	}

	return in, nil
}

// composeFromFlags reads the inputs and composes the prompt pair.
func composeFromFlags(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) (prompt.Input, *prompt.Prompts, error) {
	in, err := readInput(cmd, cfg, logger)
	if err != nil {
		return in, nil, err
	}

	composer, err := prompt.NewComposer(testgen.ResponseSchema)
	if err != nil {
		return in, nil, err
	}
	p, err := composer.Compose(in)
	if err != nil {
		return in, nil, err
	}

	logger.Info("composed prompts",
		zap.String("layout", in.Layout),
		zap.String("resource", in.Resource),
		zap.Int("mapping_rows", in.Mapping.Len()),
		zap.Int("system_bytes", len(p.System)),
		zap.Int("user_bytes", len(p.User)))
	return in, p, nil
}
