package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fhirtestgen/internal/config"
	"github.com/abhisek/fhirtestgen/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "fhirtestgen",
	Short: "Compose LLM prompts for FHIR mapping test cases",
	Long: "fhirtestgen turns a field-mapping table into the prompts that ask a language model for " +
		"FHIR test cases, and validates the structured response it returns.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default fhirtestgen.yaml if present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(cfg.Log.Level, verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
