package textview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pathways.rf2lab.org/internal/models"
)

const (
	columnGap      = 2
	minColumnWidth = 4
	selectedMarker = "●"
)

func alignment(c models.Column) lipgloss.Position {
	switch c.Align {
	case "right":
		return lipgloss.Right
	case "center":
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

// columnWidths sizes each column to its widest cell, then narrows the widest
// columns until the row fits the page.
func columnWidths(t models.TableData, page int) []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = lipgloss.Width(c.Label)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	total := func() int {
		sum := columnGap * (len(widths) - 1)
		for _, w := range widths {
			sum += w
		}
		return sum
	}
	for total() > page {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

// statusColor colours guidance statuses and their symbols.
func (p *Printer) statusColor(cell string) (lipgloss.Color, bool) {
	if s := models.GuidanceStatus(cell); s.Valid() {
		return p.colors.GuidanceColor(s), true
	}
	switch cell {
	case models.GuidanceAvailable.Symbol():
		return p.colors.Available, true
	case models.GuidanceRecent.Symbol():
		return p.colors.Partial, true
	case models.GuidanceNone.Symbol():
		return p.colors.Unsupported, true
	}
	return "", false
}

// table renders t with aligned columns. The row whose first cell carries the
// selection marker is bold.
func (p *Printer) table(t models.TableData) string {
	widths := columnWidths(t, p.width)
	gap := strings.Repeat(" ", columnGap)

	render := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = truncate(cells[i], w)
			}
			s := style.Width(w).Align(alignment(t.Columns[i]))
			if color, ok := p.statusColor(cell); ok {
				s = s.Foreground(color)
			}
			parts[i] = s.Render(cell)
		}
		return strings.Join(parts, gap)
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}

	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label
	}

	lines := []string{
		p.heading(t.Title),
		render(p.r.NewStyle().Bold(true).Foreground(p.colors.Heading), labels),
		p.faint(strings.Join(rule, gap)),
	}
	for _, row := range t.Rows {
		style := p.style()
		if len(row) > 0 && row[0] == selectedMarker {
			style = style.Bold(true)
		}
		lines = append(lines, render(style, row))
	}
	return strings.Join(lines, "\n")
}
