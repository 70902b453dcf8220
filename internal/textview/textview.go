// Package textview renders a dashboard view as styled terminal text.
package textview

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/models"
)

const (
	MinWidth     = 60
	DefaultWidth = 100
)

// Printer renders views for one output profile, theme and width.
type Printer struct {
	r      *lipgloss.Renderer
	colors palette
	width  int
}

// NewPrinter returns a Printer that writes for out. The colour profile is
// fixed up front rather than detected per call, so output only depends on
// the arguments.
func NewPrinter(out io.Writer, profile termenv.Profile, theme appconf.Theme, width int) *Printer {
	if width < MinWidth {
		width = MinWidth
	}
	r := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(theme == appconf.ThemeDark)
	return &Printer{r: r, colors: paletteFor(theme), width: width}
}

// Render renders view as plain text without colour codes.
func Render(view models.View, theme appconf.Theme, width int) string {
	return NewPrinter(io.Discard, termenv.Ascii, theme, width).Render(view)
}

// Render lays out every panel of view top to bottom.
func (p *Printer) Render(view models.View) string {
	sections := []string{
		p.header(view),
		p.selection(view),
		p.emissions(view.Emissions),
		p.scope3(view.Scope3),
		p.coverage(view),
		p.cost(view),
		p.table(view.Comparison),
		p.table(view.Sectors.Table),
		p.bars(view.Sectors.Potential),
		p.footer(view),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (p *Printer) style() lipgloss.Style {
	return p.r.NewStyle().Foreground(p.colors.Text)
}

// block joins lines and wraps them to the page width.
func (p *Printer) block(lines ...string) string {
	return p.r.NewStyle().Width(p.width).Render(strings.Join(lines, "\n"))
}

func (p *Printer) heading(text string) string {
	return p.r.NewStyle().Bold(true).Foreground(p.colors.Heading).Render(text)
}

func (p *Printer) faint(text string) string {
	return p.r.NewStyle().Foreground(p.colors.Faint).Render(text)
}

func (p *Printer) header(view models.View) string {
	inner := p.width - 4
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.heading(view.Title),
		p.style().Width(inner).Render(view.Subtitle),
		p.r.NewStyle().Foreground(p.colors.Warning).Width(inner).Render(view.Disclaimer),
	)
	return p.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.colors.Border).
		Padding(0, 1).
		Width(p.width - 2).
		Render(body)
}

func (p *Printer) selection(view models.View) string {
	var names []string
	for _, o := range view.Industries {
		if o.Selected {
			names = append(names, "["+o.Name+"]")
			continue
		}
		names = append(names, o.Name)
	}
	s := view.Sensitivity
	lines := []string{
		p.heading(view.Industry.Name),
		p.faint("Industries: ") + strings.Join(names, "  "),
		p.faint("Cost sensitivity: ") + models.FormatNumber(s.Value) +
			p.faint(" (range "+models.FormatNumber(s.Min)+"-"+models.FormatNumber(s.Max)+")"),
		p.faint("Key challenge: ") + view.Industry.KeyChallenge,
	}
	return p.block(lines...)
}

func (p *Printer) emissions(panel models.EmissionPanel) string {
	return p.bars(panel.Chart)
}

func (p *Printer) scope3(panel models.Scope3Panel) string {
	return p.bars(panel.Chart) + "\n\n" + p.table(panel.Table)
}

func (p *Printer) coverage(view models.View) string {
	c := view.Coverage
	lines := []string{
		p.heading(c.Chart.Title),
		p.r.NewStyle().Foreground(p.colors.Available).Render("Covered ") +
			models.FormatPercent(c.Covered) + p.faint(" of total, ") +
			models.FormatPercent(c.CoveredOfScope) + p.faint(" of Scope 3"),
		p.r.NewStyle().Foreground(p.colors.Unsupported).Render("Gap     ") +
			models.FormatPercent(c.Gap) + p.faint(" of total, ") +
			models.FormatPercent(c.GapOfScope) + p.faint(" of Scope 3"),
		p.faint("Main gap: ") + view.Industry.MainGap,
	}
	for _, ch := range view.Industry.Challenges {
		lines = append(lines, "  - "+ch)
	}
	return p.block(lines...)
}

func (p *Printer) cost(view models.View) string {
	c := view.Cost
	lines := []string{
		p.heading("Abatement cost"),
		p.faint("Range:    ") + c.RangeLabel,
		p.faint("Estimate: ") + c.EstimateLabel,
		p.faint("Budget:   ") + c.Range.Currency + " " + models.FormatThousands(c.Budget) +
			p.faint(" abates about ") + models.FormatThousands(c.AbatableTonnes) + " tCO2e",
	}
	return p.block(lines...) + "\n\n" + p.ranges(c.Uncertainty)
}

func (p *Printer) footer(view models.View) string {
	return p.r.NewStyle().Foreground(p.colors.Warning).Width(p.width).Render(view.Disclaimer)
}
