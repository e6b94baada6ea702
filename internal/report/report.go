// Package report renders a parsed test-case response as a reviewable
// document.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/abhisek/fhirtestgen/internal/testgen"
)

// Markdown renders resp as a GitHub-flavored Markdown document.
func Markdown(title string, resp *testgen.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	writeSummary(&b, resp)
	writeConsistency(&b, resp)
	writeTestCases(&b, resp.TestCases)
	writeMissing(&b, resp.MissingTestCases)
	writeBreaking(&b, resp.BreakingTestCases)

	return b.String()
}

// HTML renders resp as a standalone HTML page.
func HTML(title string, resp *testgen.Response) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(title, resp)), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func writeSummary(b *strings.Builder, resp *testgen.Response) {
	s := resp.Summary
	b.WriteString("## Summary\n\n")
	writeTable(b, []string{"Metric", "Value"}, [][]string{
		{"Mapping rows", itoa(s.MappingRows)},
		{"Unique attributes", itoa(s.UniqueAttributes)},
		{"Test cases created", itoa(s.NumberOfTestCasesCreated)},
		{"Test cases modified", itoa(s.NumberOfTestCasesModified)},
		{"Test cases in response", itoa(len(resp.TestCases))},
		{"Missing test cases", itoa(len(resp.MissingTestCases))},
		{"Breaking test cases", itoa(len(resp.BreakingTestCases))},
	})

	tb := s.TestCaseTypeBreakdown
	sb := s.SubtypeBreakdown
	b.WriteString("### Breakdown\n\n")
	var rows [][]string
	for _, t := range testgen.TestCaseTypes {
		rows = append(rows, []string{string(t), itoa(tb.Count(t))})
	}
	for _, st := range testgen.Subtypes {
		rows = append(rows, []string{string(st), itoa(sb.Count(st))})
	}
	writeTable(b, []string{"Category", "Count"}, rows)

	if len(s.AttributeTestCaseDetails) > 0 {
		b.WriteString("### Test cases per attribute\n\n")
		rows := make([][]string, len(s.AttributeTestCaseDetails))
		for i, d := range s.AttributeTestCaseDetails {
			rows[i] = []string{d.Attribute, itoa(d.NumberOfTestCases)}
		}
		writeTable(b, []string{"Attribute", "Test cases"}, rows)
	}
}

func writeConsistency(b *strings.Builder, resp *testgen.Response) {
	errs := resp.CheckSummary()
	if len(errs) == 0 {
		return
	}
	b.WriteString("## Summary inconsistencies\n\n")
	for _, e := range errs {
		fmt.Fprintf(b, "- `%s`: %s\n", e.Field, e.Reason)
	}
	b.WriteByte('\n')
}

func writeTestCases(b *strings.Builder, cases []testgen.TestCase) {
	b.WriteString("## Test cases\n\n")
	if len(cases) == 0 {
		b.WriteString("_None._\n\n")
		return
	}
	for _, tc := range cases {
		fmt.Fprintf(b, "### %s\n\n", tc.ID)
		fmt.Fprintf(b, "**%s** / **%s**\n\n", tc.Type, tc.Subtype)
		fmt.Fprintf(b, "%s\n\n", tc.Description)
		b.WriteString("Steps:\n\n")
		for i, step := range tc.Steps {
			fmt.Fprintf(b, "%d. %s\n", i+1, step)
		}
		b.WriteByte('\n')
		fmt.Fprintf(b, "Expected output: %s\n\n", tc.ExpectedOutput)
		fmt.Fprintf(b, "- Pass: %s\n- Fail: %s\n\n", tc.Criteria.Pass, tc.Criteria.Fail)
	}
}

func writeMissing(b *strings.Builder, missing []testgen.MissingTestCaseReason) {
	if len(missing) == 0 {
		return
	}
	b.WriteString("## Missing test cases\n\n")
	rows := make([][]string, len(missing))
	for i, m := range missing {
		rows[i] = []string{m.Attribute, m.Reason}
	}
	writeTable(b, []string{"Attribute", "Reason"}, rows)
}

func writeBreaking(b *strings.Builder, breaking []testgen.BreakingTestCaseReason) {
	if len(breaking) == 0 {
		return
	}
	b.WriteString("## Breaking test cases\n\n")
	for _, br := range breaking {
		fmt.Fprintf(b, "### %s\n\n", br.OriginalTestCaseID)
		for _, r := range br.Reasons {
			fmt.Fprintf(b, "- %s\n", r)
		}
		b.WriteByte('\n')
	}
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cell(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteByte('\n')
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func cell(s string) string {
	return cellEscaper.Replace(s)
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
