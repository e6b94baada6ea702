package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/fhirtestgen/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <response.json>",
	Short: "Render a validated response as Markdown or HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lenient, _ := cmd.Flags().GetBool("lenient")
		resp, err := parseResponseFile(cmd, args[0], lenient)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		doc := report.Markdown(title, resp)
		if html, _ := cmd.Flags().GetBool("html"); html {
			if doc, err = report.HTML(title, resp); err != nil {
				return err
			}
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" || path == "-" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.String("title", "FHIR Test Cases", "Report title")
	f.Bool("html", false, "Render HTML instead of Markdown")
	f.Bool("lenient", false, "Repair syntax damage before parsing")
	f.StringP("output", "o", "", "Write the report to this file instead of stdout")
}
