package textview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pathways.rf2lab.org/internal/models"
)

const (
	barFull  = "█"
	barEmpty = "░"
	valueCol = 10
)

// labelWidth is the label column of charts and bars, a third of the page.
func (p *Printer) labelWidth() int {
	return p.width / 3
}

func (p *Printer) trackWidth() int {
	return p.width - p.labelWidth() - valueCol - 2
}

func scaled(v, max float64, width int) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / max * float64(width)))
	if n > width {
		n = width
	}
	return n
}

func (p *Printer) label(text string) string {
	w := p.labelWidth()
	return p.style().Width(w).Render(truncate(text, w-1))
}

// bars draws a horizontal bar per point, scaled to the chart's largest value.
// Pie charts are drawn the same way since shares already sum to a whole.
func (p *Printer) bars(c models.ChartConfig) string {
	max := c.MaxValue()
	if c.ChartType == models.ChartPie {
		max = 0
		for _, pt := range c.Points() {
			max += math.Max(pt.Value, 0)
		}
	}

	track := p.trackWidth()
	lines := []string{p.heading(c.Title)}
	for i, pt := range c.Points() {
		n := scaled(pt.Value, max, track)
		color := p.colors.Bar
		if i < len(c.Colors) {
			color = lipgloss.Color(c.Colors[i])
		}
		value := models.FormatNumber(pt.Value)
		if c.ChartType == models.ChartPie {
			value = models.FormatPercent(pt.Value)
		}
		lines = append(lines, p.label(pt.Label)+" "+
			p.r.NewStyle().Foreground(color).Render(strings.Repeat(barFull, n))+
			p.faint(strings.Repeat(barEmpty, track-n))+" "+value)
	}
	if c.XAxis != "" {
		lines = append(lines, p.faint(strings.Repeat(" ", p.labelWidth()+1)+c.XAxis))
	}
	return strings.Join(lines, "\n")
}

// ranges draws each point's Low-High span with the Value marked.
func (p *Printer) ranges(c models.ChartConfig) string {
	max := c.MaxValue()
	track := p.trackWidth()
	lines := []string{p.heading(c.Title)}
	for _, pt := range c.Points() {
		lo := scaled(pt.Low, max, track-1)
		hi := scaled(pt.High, max, track-1)
		at := scaled(pt.Value, max, track-1)

		cells := make([]string, track)
		for i := range cells {
			switch {
			case i == at:
				cells[i] = p.r.NewStyle().Foreground(p.colors.Marker).Bold(true).Render("●")
			case i == lo || i == hi:
				cells[i] = "|"
			case i > lo && i < hi:
				cells[i] = "─"
			default:
				cells[i] = " "
			}
		}
		lines = append(lines, p.label(pt.Label)+" "+strings.Join(cells, "")+" "+models.FormatNumber(pt.Value))
	}
	if c.XAxis != "" {
		lines = append(lines, p.faint(strings.Repeat(" ", p.labelWidth()+1)+c.XAxis))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens text to maxWidth cells.
func truncate(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length]) + "…"
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
