package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows of cells inside a rounded border, with an optional
// centered title and column header
type Table struct {
	title      string
	headers    []string
	rows       [][]string
	active     map[int]bool
	widths     []int
	hideHeader bool
	minWidth   int
}

// NewTable creates a table; the number of headers fixes the column count
func NewTable(headers ...string) *Table {
	t := &Table{headers: headers, widths: make([]int, len(headers)), active: make(map[int]bool)}
	t.measure(headers)
	return t
}

// SetTitle sets a title that spans all columns
func (t *Table) SetTitle(title string) {
	t.title = title
}

// HideHeader hides the column header row
func (t *Table) HideHeader() {
	t.hideHeader = true
}

// SetMinWidth pads the last column so the table is at least width wide
func (t *Table) SetMinWidth(width int) {
	t.minWidth = width
}

// AddRow appends a row. Missing cells are blank, extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.measure(row)
	t.rows = append(t.rows, row)
}

// AddActiveRow appends a row drawn in the highlight color
func (t *Table) AddActiveRow(cells ...string) {
	t.AddRow(cells...)
	t.active[len(t.rows)-1] = true
}

// measure widens columns to fit cells, ignoring ANSI escape codes
func (t *Table) measure(cells []string) {
	for i, cell := range cells {
		if w := lipgloss.Width(cell); i < len(t.widths) && w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

// Render returns the bordered table, or "" when it has no columns
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	initStyles()

	widths := make([]int, len(t.widths))
	total := 0
	for i, w := range t.widths {
		widths[i] = w + 2
		total += widths[i]
	}
	if t.minWidth > total {
		widths[len(widths)-1] += t.minWidth - total
		total = t.minWidth
	}

	var lines []string
	if t.title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Width(total).Align(lipgloss.Center)
		lines = append(lines, title.Render(t.title), StyleMuted.Render(strings.Repeat("─", total)))
	}

	if !t.hideHeader {
		lines = append(lines, renderLine(t.headers, widths, StyleTableHeader))
		rule := make([]string, len(widths))
		for i, w := range widths {
			rule[i] = strings.Repeat("─", w)
		}
		lines = append(lines, StyleMuted.Render(strings.Join(rule, "")))
	}

	for i, row := range t.rows {
		style := StyleTableCell
		if t.active[i] {
			style = style.Foreground(colorSuccess)
		}
		lines = append(lines, renderLine(row, widths, style))
	}

	return StyleTableBorder.Render(strings.Join(lines, "\n"))
}

func renderLine(cells []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString(style.Width(widths[i]).Render(cell))
	}
	return b.String()
}
