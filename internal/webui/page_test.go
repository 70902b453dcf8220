package webui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathways.rf2lab.org/internal/appconf"
	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/dataset"
	"pathways.rf2lab.org/internal/models"
)

func renderTestView(t *testing.T, industry string, sensitivity float64) models.View {
	t.Helper()
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	r, err := dashboard.NewRenderer(ds, dashboard.DefaultOptions())
	require.NoError(t, err)

	view, err := r.Render(dashboard.Selection{Industry: industry, Sensitivity: sensitivity})
	require.NoError(t, err)
	return view
}

func TestRenderIsByteIdentical(t *testing.T) {
	view := renderTestView(t, "Technology", 35)

	first, err := NewPageRenderer(appconf.ThemeLight)
	require.NoError(t, err)
	second, err := NewPageRenderer(appconf.ThemeLight)
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, first.Render(&a, view, ""))
	require.NoError(t, second.Render(&b, renderTestView(t, "Technology", 35), ""))
	assert.Equal(t, a.String(), b.String())
}

func TestRenderTheme(t *testing.T) {
	pages, err := NewPageRenderer(appconf.ThemeDark)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, renderTestView(t, "Food & Beverage", 50), ""))
	assert.Contains(t, buf.String(), `<body class="theme-dark">`)
}

func TestRenderStandalone(t *testing.T) {
	pages, err := NewPageRenderer("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pages.RenderStandalone(&buf, renderTestView(t, "Heavy Manufacturing", 0)))
	out := buf.String()

	assert.Contains(t, out, "<style>")
	assert.NotContains(t, out, `href="/static/dashboard.css"`)
	assert.NotContains(t, out, "<form")
	assert.Contains(t, out, `class="theme-light"`)
	assert.Contains(t, out, "$40/tCO2e")
}

func TestLoadNarrative(t *testing.T) {
	n, err := LoadNarrative()
	require.NoError(t, err)

	for name, section := range map[string]string{
		"introduction": string(n.Introduction),
		"approaches":   string(n.Approaches),
		"rf2":          string(n.RF2),
		"methodology":  string(n.Methodology),
	} {
		assert.NotEmpty(t, section, name)
		assert.NotContains(t, section, "**", name)
	}
	assert.Contains(t, string(n.Approaches), "<h3>")
	assert.Contains(t, string(n.RF2), "<ol>")
}

func TestCharts(t *testing.T) {
	t.Run("full pie is a circle", func(t *testing.T) {
		svg := string(renderChart(models.ChartConfig{
			ChartType: models.ChartPie,
			Title:     "All",
			Series:    []models.ChartSeries{{Data: []models.ChartPoint{{Label: "Only", Value: 100}}}},
			Colors:    []string{"#000000"},
		}))
		assert.Contains(t, svg, "<circle")
		assert.NotContains(t, svg, "<path")
	})

	t.Run("pie slices", func(t *testing.T) {
		view := renderTestView(t, "Technology", 50)
		svg := string(renderChart(view.Emissions.Chart))
		assert.Equal(t, 3, strings.Count(svg, "<path"))
		assert.Contains(t, svg, "Scope 3 (value chain) (80%)")
	})

	t.Run("labels are escaped", func(t *testing.T) {
		svg := string(renderChart(models.ChartConfig{
			ChartType: models.ChartHBar,
			Title:     "A & B",
			Series:    []models.ChartSeries{{Data: []models.ChartPoint{{Label: "<b>x</b>", Value: 1}}}},
		}))
		assert.Contains(t, svg, "A &amp; B")
		assert.Contains(t, svg, "&lt;b&gt;x&lt;/b&gt;")
		assert.NotContains(t, svg, "<b>")
	})

	t.Run("range chart marks the estimate", func(t *testing.T) {
		view := renderTestView(t, "Food & Beverage", 50)
		svg := string(renderChart(view.Cost.Uncertainty))
		assert.Equal(t, len(view.Cost.Uncertainty.Points()), strings.Count(svg, `class="marker"`))
	})

	t.Run("empty chart", func(t *testing.T) {
		svg := string(renderChart(models.ChartConfig{ChartType: models.ChartBar, Title: "Empty"}))
		assert.True(t, strings.HasSuffix(svg, "</svg>"))
	})
}
