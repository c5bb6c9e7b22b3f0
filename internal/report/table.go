package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6773"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5c6773")).
			Padding(0, 1)
)

// Table renders static tabular data for the console report. Every outcome of
// a game appears here, suppressed statuses included: the operator debugging
// locally needs full visibility that the webhook must not carry.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the table as a string, or "" when there are no rows.
func (t *Table) Render() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(titleStyle.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // lipgloss width includes padding
	}

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	total := len(t.Headers) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Panel wraps rendered tables in a titled border for the final report.
func Panel(title string, sections []string) string {
	body := strings.TrimRight(strings.Join(sections, "\n"), "\n")
	return titleStyle.Render(title) + "\n" + panelStyle.Render(body) + "\n"
}
