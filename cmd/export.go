package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fhirtestgen/internal/llm"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a provider request body for the composed prompts",
	Long: "Export composes the prompts and encodes them as the request body the selected " +
		"completion API accepts, with structured output bound to the test-case schema. " +
		"Nothing is sent: the body is written for whichever client runs the request.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		llmCfg := cfg.LLM
		if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
			llmCfg.Provider = provider
		}
		if model, _ := cmd.Flags().GetString("model"); model != "" {
			llmCfg = llmCfg.WithModel(model)
		}

		enc, err := llm.NewEncoder(llmCfg)
		if err != nil {
			return err
		}

		_, p, err := composeFromFlags(cmd, cfg, logger)
		if err != nil {
			return err
		}

		req := p.Request(llmCfg)
		body, err := enc.Encode(req)
		if err != nil {
			return err
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err != nil {
			return fmt.Errorf("format request body: %w", err)
		}
		pretty.WriteByte('\n')

		logger.Info("encoded request",
			zap.String("provider", llmCfg.Provider),
			zap.String("model", enc.ModelID()),
			zap.String("endpoint", enc.Endpoint()),
			zap.Int("bytes", len(body)))

		if estimate, _ := cmd.Flags().GetBool("estimate"); estimate {
			printEstimate(cmd, llm.EstimateRequest(enc.ModelID(), req))
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" || path == "-" {
			_, err := cmd.OutOrStdout().Write(pretty.Bytes())
			return err
		}
		if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write request body: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "POST %s\nbody written to %s\n", enc.Endpoint(), path)
		return nil
	},
}

func printEstimate(cmd *cobra.Command, est llm.Estimate) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Model:         %s\n", est.Model)
	fmt.Fprintf(w, "Input tokens:  ~%d\n", est.InputTokens)
	fmt.Fprintf(w, "Output tokens: <=%d\n", est.OutputTokens)
	if est.Cost != nil {
		fmt.Fprintf(w, "Max cost:      $%.4f\n", *est.Cost)
	} else {
		fmt.Fprintln(w, "Max cost:      unknown (model not in pricing table)")
	}
}

func init() {
	addInputFlags(exportCmd)
	f := exportCmd.Flags()
	f.String("provider", "", "Provider format: anthropic, openai, gemini, openrouter (overrides config)")
	f.String("model", "", "Model name or alias (overrides config)")
	f.StringP("output", "o", "", "Write the body to this file instead of stdout")
	f.Bool("estimate", false, "Print a token and worst-case cost estimate to stderr")
}
