package models

// Chart kinds understood by the HTML and terminal renderers.
const (
	ChartPie   = "pie"
	ChartBar   = "bar"
	ChartHBar  = "hbar"
	ChartRange = "range"
)

// ChartConfig describes a chart independently of how it is drawn.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is a named list of points.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a labelled value. Range charts also set Low/High and use
// Value as the marker position.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Low   float64 `json:"low,omitempty"`
	High  float64 `json:"high,omitempty"`
	Note  string  `json:"note,omitempty"`
}

// MaxValue returns the largest Value (or High, for range points) across all series.
func (c ChartConfig) MaxValue() float64 {
	max := 0.0
	for _, s := range c.Series {
		for _, p := range s.Data {
			if p.Value > max {
				max = p.Value
			}
			if p.High > max {
				max = p.High
			}
		}
	}
	return max
}

// Points returns the data of the first series, which is all single-series charts have.
func (c ChartConfig) Points() []ChartPoint {
	if len(c.Series) == 0 {
		return nil
	}
	return c.Series[0].Data
}

// TableData is a render-ready table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"` // "left", "right", "center"
}
