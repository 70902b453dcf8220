package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is everything the dashboard template needs.
type PageData struct {
	View      models.View
	Theme     appconf.Theme
	Narrative Narrative
	// Error is shown inline above the controls after a rejected interaction.
	Error string
	// Standalone pages inline the stylesheet instead of linking /static.
	Standalone bool
	Stylesheet template.CSS
}

// PageRenderer renders dashboard pages. It is safe for concurrent use.
type PageRenderer struct {
	tmpl      *template.Template
	narrative Narrative
	theme     appconf.Theme
}

var templateFuncs = template.FuncMap{
	"chart":     renderChart,
	"percent":   models.FormatPercent,
	"number":    models.FormatNumber,
	"thousands": models.FormatThousands,
	"align": func(c models.Column) string {
		if c.Align == "" {
			return "left"
		}
		return c.Align
	},
}

// NewPageRenderer parses the embedded templates and narrative sections.
func NewPageRenderer(theme appconf.Theme) (*PageRenderer, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	narrative, err := LoadNarrative()
	if err != nil {
		return nil, err
	}

	if theme == "" {
		theme = appconf.ThemeLight
	}
	return &PageRenderer{tmpl: tmpl, narrative: narrative, theme: theme}, nil
}

// Render writes the dashboard page for view. errMsg, when set, is shown
// inline. Nothing is written to w if the template fails.
func (p *PageRenderer) Render(w io.Writer, view models.View, errMsg string) error {
	return p.execute(w, PageData{
		View:      view,
		Theme:     p.theme,
		Narrative: p.narrative,
		Error:     errMsg,
	})
}

// RenderStandalone writes a self-contained page with the stylesheet inlined
// and no interactive controls, for export.
func (p *PageRenderer) RenderStandalone(w io.Writer, view models.View) error {
	css, err := staticFS.ReadFile("static/dashboard.css")
	if err != nil {
		return fmt.Errorf("reading stylesheet: %w", err)
	}
	return p.execute(w, PageData{
		View:       view,
		Theme:      p.theme,
		Narrative:  p.narrative,
		Standalone: true,
		Stylesheet: template.CSS(css),
	})
}

func (p *PageRenderer) execute(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		return fmt.Errorf("executing dashboard template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
