package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fhirtestgen/internal/prompt"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose the system and user prompts",
	Long: "Compose normalizes the mapping, test-case and input-sample tables and renders the " +
		"system and user prompts. With --out-dir the prompts are written as files next to a " +
		"bundle.json describing the inputs; otherwise both are printed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		in, p, err := composeFromFlags(cmd, cfg, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		dir, _ := cmd.Flags().GetString("out-dir")
		if dir == "" {
			sep := strings.Repeat("─", 60)
			fmt.Fprintf(out, "%s\nSYSTEM PROMPT\n%s\n%s\n\n", sep, sep, p.System)
			fmt.Fprintf(out, "%s\nUSER PROMPT\n%s\n%s\n", sep, sep, p.User)
			return nil
		}

		b := prompt.NewBundle(in, p)
		if err := b.WriteDir(dir); err != nil {
			return err
		}
		logger.Info("wrote prompt bundle", zap.String("id", b.ID), zap.String("dir", dir))
		fmt.Fprintf(out, "Bundle %s written to %s\n", b.ID, dir)
		return nil
	},
}

func init() {
	addInputFlags(composeCmd)
	composeCmd.Flags().String("out-dir", "", "Write prompts and bundle.json to this directory")
}
