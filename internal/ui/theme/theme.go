package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#F97316") // Orange
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// States
var (
	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Table cells
var (
	HeaderCell = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)

	DimCell = lipgloss.NewStyle().
		Foreground(TextDim).
		Padding(0, 1)
)

// Status renders a PASS/FAIL badge followed by msg.
func Status(ok bool, msg string) string {
	if ok {
		return Pass.Render("PASS") + " " + Body.Render(msg)
	}
	return Fail.Render("FAIL") + " " + Body.Render(msg)
}

// Table renders rows under headers with rounded borders. The first column
// is dimmed so keys stand apart from values.
func Table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderCell
			case col == 0:
				return DimCell
			default:
				return Cell
			}
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
