package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fhirtestgen/internal/testgen"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the response schema formatting instructions",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if raw, _ := cmd.Flags().GetBool("json"); raw {
			b, err := json.MarshalIndent(testgen.ResponseSchema.Definition, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		text, err := testgen.ResponseSchema.FormatInstructions()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	},
}

func init() {
	schemaCmd.Flags().Bool("json", false, "Print the raw JSON Schema")
}
