package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/fhirtestgen/internal/llm"
	"github.com/abhisek/fhirtestgen/internal/testgen"
	"github.com/abhisek/fhirtestgen/internal/ui/theme"
)

var validateCmd = &cobra.Command{
	Use:   "validate <response.json>",
	Short: "Validate a model response against the test-case schema",
	Long: "Validate checks a response file (or - for stdin) against the test-case schema and " +
		"lists every offending field. With --check-summary the statistical summary is also " +
		"recounted against the test cases.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lenient, _ := cmd.Flags().GetBool("lenient")
		resp, err := parseResponseFile(cmd, args[0], lenient)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(args[0]))
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			fmt.Fprintln(out, theme.Status(false, "Response does not match the schema"))
			fmt.Fprintln(out, fieldTable(invalid.Fields))
			if !lenient && !json.Valid(invalid.Content) {
				fmt.Fprintln(out, theme.Hint.Render("Retry with --lenient to repair markdown fences and trailing commas."))
			}
			return fmt.Errorf("%d invalid field(s)", len(invalid.Fields))
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, theme.Status(true, fmt.Sprintf(
			"%d test cases, %d missing, %d breaking",
			len(resp.TestCases), len(resp.MissingTestCases), len(resp.BreakingTestCases))))

		if check, _ := cmd.Flags().GetBool("check-summary"); check {
			if errs := resp.CheckSummary(); len(errs) > 0 {
				fmt.Fprintln(out, theme.Warning.Render("Statistical summary is inconsistent"))
				fmt.Fprintln(out, fieldTable(errs))
				return fmt.Errorf("%d summary inconsistenc(ies)", len(errs))
			}
			fmt.Fprintln(out, theme.Status(true, "Statistical summary is consistent"))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("lenient", false, "Repair markdown fences, trailing commas and similar damage first")
	validateCmd.Flags().Bool("check-summary", false, "Recount the statistical summary against the test cases")
}

// parseResponseFile reads path ("-" for stdin) and parses it as a response.
func parseResponseFile(cmd *cobra.Command, path string, lenient bool) (*testgen.Response, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if lenient {
		return testgen.ParseLenient(raw)
	}
	return testgen.Parse(raw)
}

func fieldTable(errs []llm.FieldError) string {
	rows := make([][]string, len(errs))
	for i, e := range errs {
		field := e.Field
		if field == "" {
			field = "(root)"
		}
		rows[i] = []string{strconv.Itoa(i + 1), field, e.Reason}
	}
	return theme.Table([]string{"#", "Field", "Reason"}, rows)
}
