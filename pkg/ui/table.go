package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// TableColumn describes one column. Align uses lipgloss positions;
// the zero value is left aligned.
type TableColumn struct {
	Header string
	Width  int // minimum width in cells
	Align  lipgloss.Position
}

// Table is a plain-text table measured in terminal cells, so wide
// characters (e.g. Chinese names) line up.
type Table struct {
	Columns []TableColumn
	Rows    [][]string

	// MaxWidth caps the first column so rows fit the terminal; 0 disables it
	MaxWidth int
}

func NewTable(columns []TableColumn) *Table {
	return &Table{Columns: columns}
}

func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the header, a rule and one line per row
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.widths()
	var b strings.Builder

	headers := make([]string, len(t.Columns))
	rules := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
		rules[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableHeader.Render(t.line(headers, widths)) + "\n")
	b.WriteString(StyleTableBorder.Render(strings.Join(rules, columnGap)) + "\n")

	for idx, row := range t.Rows {
		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(t.line(row, widths)) + "\n")
	}

	return b.String()
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		var cell string
		if i < len(cells) {
			cell = truncate(cells[i], widths[i])
		}
		parts[i] = lipgloss.PlaceHorizontal(widths[i], col.Align, cell)
	}
	return strings.Join(parts, columnGap)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(lipgloss.Width(col.Header), col.Width)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	if t.MaxWidth > 0 {
		rest := 0
		for _, w := range widths[1:] {
			rest += w + len(columnGap)
		}
		if limit := t.MaxWidth - rest; limit < widths[0] {
			widths[0] = max(limit, lipgloss.Width(t.Columns[0].Header), 4)
		}
	}
	return widths
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// RenderKeyValue renders "key: value" with the key highlighted
func RenderKeyValue(key, value string) string {
	return StyleAccent.Render(key) + ": " + value
}
