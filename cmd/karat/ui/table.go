package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Table renders a fixed-width column layout with a highlighted cursor
// row. It is deliberately simpler than bubbles/table; list pages drive
// their own scrolling and selection.
type Table struct {
	Headers []string
	Widths  []int
	Rows    [][]string
	Cursor  int
	Empty   string
	styles  Styles
}

// NewTable creates a table with the given headers and column widths.
func NewTable(styles Styles, headers []string, widths []int) Table {
	return Table{
		Headers: headers,
		Widths:  widths,
		Empty:   "No records found.",
		styles:  styles,
	}
}

// Render returns the table as a string. The row at Cursor, if any, is
// drawn with the selection style.
func (t Table) Render() string {
	var b strings.Builder

	headerCells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headerCells[i] = pad(h, t.colWidth(i))
	}
	b.WriteString(t.styles.Subtitle.Render(strings.Join(headerCells, "  ")))
	b.WriteString("\n")
	b.WriteString(t.styles.Muted.Render(strings.Repeat("─", t.totalWidth())))
	b.WriteString("\n")

	if len(t.Rows) == 0 {
		b.WriteString(t.styles.Muted.Render(t.Empty))
		return b.String()
	}

	for ri, row := range t.Rows {
		cells := make([]string, len(row))
		for ci, cell := range row {
			cells[ci] = pad(cell, t.colWidth(ci))
		}
		line := strings.Join(cells, "  ")
		if ri == t.Cursor {
			line = t.styles.Selected.Render(line)
		} else {
			line = t.styles.Body.Render(line)
		}
		b.WriteString(line)
		if ri < len(t.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t Table) colWidth(i int) int {
	if i < len(t.Widths) && t.Widths[i] > 0 {
		return t.Widths[i]
	}
	return 12
}

func (t Table) totalWidth() int {
	total := 0
	for i := range t.Headers {
		total += t.colWidth(i) + 2
	}
	if total > 2 {
		total -= 2
	}
	return total
}

// pad truncates or right-pads s to exactly width cells. Cells may carry
// escape sequences (badges, warnings), so truncation has to be
// ANSI-aware or a chopped sequence bleeds color into the rest of the row.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}
