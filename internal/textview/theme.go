package textview

import (
	"github.com/charmbracelet/lipgloss"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/models"
)

// palette holds the ANSI 256 colours used by a theme.
type palette struct {
	Heading     lipgloss.Color
	Text        lipgloss.Color
	Faint       lipgloss.Color
	Border      lipgloss.Color
	Bar         lipgloss.Color
	Marker      lipgloss.Color
	Warning     lipgloss.Color
	Available   lipgloss.Color
	Partial     lipgloss.Color
	Unsupported lipgloss.Color
}

var (
	lightPalette = palette{
		Heading:     "25",
		Text:        "235",
		Faint:       "245",
		Border:      "250",
		Bar:         "61",
		Marker:      "160",
		Warning:     "166",
		Available:   "28",
		Partial:     "172",
		Unsupported: "160",
	}
	darkPalette = palette{
		Heading:     "117",
		Text:        "252",
		Faint:       "244",
		Border:      "240",
		Bar:         "111",
		Marker:      "203",
		Warning:     "214",
		Available:   "114",
		Partial:     "221",
		Unsupported: "203",
	}
)

func paletteFor(theme appconf.Theme) palette {
	if theme == appconf.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// GuidanceColor returns the colour for a guidance status, matching its symbol.
func (p palette) GuidanceColor(s models.GuidanceStatus) lipgloss.Color {
	switch s {
	case models.GuidanceAvailable:
		return p.Available
	case models.GuidanceRecent, models.GuidanceGenericOnly:
		return p.Partial
	default:
		return p.Unsupported
	}
}
