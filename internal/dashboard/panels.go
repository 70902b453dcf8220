package dashboard

import (
	"fmt"
	"math"

	"pathways.rf2lab.org/internal/models"
)

// Palette for scope shares and categories.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

const (
	colorCovered = "#4CAF50"
	colorGap     = "#F44336"
)

var guidanceColors = map[models.GuidanceStatus]string{
	models.GuidanceAvailable:   "#2E7D32",
	models.GuidanceRecent:      "#4CAF50",
	models.GuidanceGenericOnly: "#FF9800",
	models.GuidanceLimited:     "#FF5722",
	models.GuidanceNone:        "#F44336",
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func categoryLabel(c models.Scope3Category) string {
	return fmt.Sprintf("%s: %s", c.Code, c.Name)
}

func emissionPanel(p models.IndustryProfile) models.EmissionPanel {
	points := []models.ChartPoint{
		{Label: "Scope 1 (direct)", Value: p.Scope1},
		{Label: "Scope 2 (purchased energy)", Value: p.Scope2},
		{Label: "Scope 3 (value chain)", Value: p.Scope3},
	}
	return models.EmissionPanel{
		Scope1: p.Scope1,
		Scope2: p.Scope2,
		Scope3: p.Scope3,
		Chart: models.ChartConfig{
			ChartType:  models.ChartPie,
			Title:      p.Name + " emission profile",
			Series:     []models.ChartSeries{{Name: "Share of total emissions (%)", Data: points}},
			Colors:     assignColors(len(points)),
			ShowLegend: true,
		},
	}
}

func scope3Panel(p models.IndustryProfile) models.Scope3Panel {
	points := make([]models.ChartPoint, 0, len(p.Scope3Categories))
	colors := make([]string, 0, len(p.Scope3Categories))
	rows := make([][]string, 0, len(p.Scope3Categories))

	for _, c := range p.Scope3Categories {
		points = append(points, models.ChartPoint{
			Label: categoryLabel(c),
			Value: models.RoundTo2(c.Share),
			Note:  string(c.Guidance),
		})
		colors = append(colors, guidanceColors[c.Guidance])
		rows = append(rows, []string{
			categoryLabel(c),
			c.Sector,
			models.FormatPercent(c.Share),
			models.FormatPercent(shareOf(c.Share, p.Scope3)),
			string(c.Guidance),
			c.CostRange.Label(),
			c.Guidance.Symbol(),
		})
	}

	return models.Scope3Panel{
		Total: p.Scope3,
		Chart: models.ChartConfig{
			ChartType: models.ChartHBar,
			Title:     "Scope 3 breakdown by category",
			XAxis:     "Share of total emissions (%)",
			YAxis:     "Scope 3 category",
			Series:    []models.ChartSeries{{Name: "Share of total emissions (%)", Data: points}},
			Colors:    colors,
		},
		Table: models.TableData{
			Title: "Cross-sectoral dependencies",
			Columns: []models.Column{
				{Key: "category", Label: "Scope 3 category", Align: "left"},
				{Key: "sector", Label: "IPCC sector", Align: "left"},
				{Key: "share", Label: "Share of total", Align: "right"},
				{Key: "shareOfScope3", Label: "Share of Scope 3", Align: "right"},
				{Key: "guidance", Label: "Sector guidance", Align: "left"},
				{Key: "cost", Label: "Cost range", Align: "right"},
				{Key: "status", Label: "Status", Align: "center"},
			},
			Rows: rows,
		},
	}
}

// shareOf expresses part as a percentage of whole, or 0 when whole is 0.
func shareOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return models.RoundTo2(part / whole * 100)
}

// coverage returns the Scope 3 share with available sector guidance and the remainder.
func coverage(p models.IndustryProfile) (covered, gap float64) {
	for _, c := range p.Scope3Categories {
		if c.Guidance == models.GuidanceAvailable {
			covered += c.Share
		}
	}
	gap = p.Scope3 - covered
	if gap < 0 {
		gap = 0
	}
	return models.RoundTo2(covered), models.RoundTo2(gap)
}

func coveragePanel(p models.IndustryProfile) models.CoveragePanel {
	covered, gap := coverage(p)
	coveredOfScope := shareOf(covered, p.Scope3)
	gapOfScope := 0.0
	if p.Scope3 > 0 {
		gapOfScope = models.RoundTo2(100 - coveredOfScope)
	}

	return models.CoveragePanel{
		Covered:        covered,
		Gap:            gap,
		CoveredOfScope: coveredOfScope,
		GapOfScope:     gapOfScope,
		Chart: models.ChartConfig{
			ChartType: models.ChartPie,
			Title:     p.Name + " guidance coverage",
			Series: []models.ChartSeries{{
				Name: "Share of Scope 3 (%)",
				Data: []models.ChartPoint{
					{Label: "Has industry-specific guidance", Value: coveredOfScope},
					{Label: "Guidance gap", Value: gapOfScope},
				},
			}},
			Colors:     []string{colorCovered, colorGap},
			ShowLegend: true,
		},
	}
}

func (r *Renderer) costPanel(p models.IndustryProfile, sensitivity float64) models.CostPanel {
	rng := r.opts.Sensitivity
	estimate := models.RoundTo2(CostEstimate(p.AbatementCost, sensitivity, rng))

	abatable := 0.0
	if estimate > 0 {
		abatable = math.Floor(r.opts.Budget / estimate)
	}

	points := make([]models.ChartPoint, 0, len(p.Scope3Categories)+1)
	points = append(points, models.ChartPoint{
		Label: "Company-wide abatement",
		Value: estimate,
		Low:   p.AbatementCost.Low,
		High:  p.AbatementCost.High,
		Note:  "100% of emissions",
	})
	for _, c := range p.Scope3Categories {
		points = append(points, models.ChartPoint{
			Label: categoryLabel(c),
			Value: models.RoundTo2(CostEstimate(c.CostRange, sensitivity, rng)),
			Low:   c.CostRange.Low,
			High:  c.CostRange.High,
			Note:  fmt.Sprintf("%s of emissions, guidance: %s", models.FormatPercent(c.Share), c.Guidance),
		})
	}

	return models.CostPanel{
		Range:          p.AbatementCost,
		RangeLabel:     p.AbatementCost.Label(),
		Estimate:       estimate,
		EstimateLabel:  p.AbatementCost.PointLabel(estimate),
		Budget:         r.opts.Budget,
		AbatableTonnes: abatable,
		Uncertainty: models.ChartConfig{
			ChartType: models.ChartRange,
			Title:     "Cost uncertainty vs. emission materiality",
			XAxis:     fmt.Sprintf("Cost (%s/%s)", p.AbatementCost.Currency, p.AbatementCost.Unit),
			YAxis:     "Dependency",
			Series:    []models.ChartSeries{{Name: "Cost range", Data: points}},
			Colors:    assignColors(len(points)),
		},
	}
}

func (r *Renderer) comparisonTable(selected string, sensitivity float64) models.TableData {
	profiles := r.data.Industries()
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		marker := ""
		if p.Name == selected {
			marker = "●"
		}
		covered, _ := coverage(p)
		rows = append(rows, []string{
			marker,
			p.Name,
			models.FormatPercent(p.Scope1),
			models.FormatPercent(p.Scope2),
			models.FormatPercent(p.Scope3),
			models.FormatPercent(shareOf(covered, p.Scope3)),
			p.AbatementCost.Label(),
			p.AbatementCost.PointLabel(models.RoundTo2(r.CostEstimate(p, sensitivity))),
		})
	}

	return models.TableData{
		Title: "Industry comparison",
		Columns: []models.Column{
			{Key: "selected", Label: "", Align: "center"},
			{Key: "industry", Label: "Industry", Align: "left"},
			{Key: "scope1", Label: "Scope 1", Align: "right"},
			{Key: "scope2", Label: "Scope 2", Align: "right"},
			{Key: "scope3", Label: "Scope 3", Align: "right"},
			{Key: "coverage", Label: "Scope 3 with guidance", Align: "right"},
			{Key: "cost", Label: "Abatement cost", Align: "right"},
			{Key: "estimate", Label: "Estimate", Align: "right"},
		},
		Rows: rows,
	}
}

func sectorPanel(sectors []models.SectorReference) models.SectorPanel {
	rows := make([][]string, 0, len(sectors)*4)
	points := make([]models.ChartPoint, 0, len(sectors))
	for _, s := range sectors {
		potential := models.FormatNumber(s.PotentialGt) + " GtCO2-eq"
		for _, iv := range s.Interventions {
			rows = append(rows, []string{s.Name, s.Description, iv.Name, iv.Cost, potential})
		}
		points = append(points, models.ChartPoint{Label: s.Name, Value: s.PotentialGt, Note: s.Description})
	}

	return models.SectorPanel{
		Table: models.TableData{
			Title: "IPCC AR6 sectoral mitigation costs (2030)",
			Columns: []models.Column{
				{Key: "sector", Label: "IPCC sector", Align: "left"},
				{Key: "description", Label: "Scope", Align: "left"},
				{Key: "intervention", Label: "Intervention", Align: "left"},
				{Key: "cost", Label: "Cost range", Align: "right"},
				{Key: "potential", Label: "Potential by 2030", Align: "right"},
			},
			Rows: rows,
		},
		Potential: models.ChartConfig{
			ChartType: models.ChartHBar,
			Title:     "IPCC AR6 sectoral mitigation potential (2030)",
			XAxis:     "Potential (GtCO2-eq)",
			YAxis:     "IPCC sector",
			Series:    []models.ChartSeries{{Name: "Potential (GtCO2-eq)", Data: points}},
			Colors:    assignColors(len(points)),
		},
	}
}
