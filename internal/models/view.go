package models

// View is everything the dashboard shows for one Selection. It contains no
// maps so that every encoding of it is stable.
type View struct {
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle"`
	Disclaimer  string           `json:"disclaimer"`
	Industry    IndustrySummary  `json:"industry"`
	Industries  []IndustryOption `json:"industries"`
	Sensitivity SensitivityState `json:"sensitivity"`
	Emissions   EmissionPanel    `json:"emissions"`
	Scope3      Scope3Panel      `json:"scope3"`
	Coverage    CoveragePanel    `json:"coverage"`
	Cost        CostPanel        `json:"cost"`
	Comparison  TableData        `json:"comparison"`
	Sectors     SectorPanel      `json:"sectors"`
}

// IndustrySummary identifies the selected industry and its narrative fields.
type IndustrySummary struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	KeyChallenge string   `json:"keyChallenge"`
	Challenges   []string `json:"challenges"`
	MainGap      string   `json:"mainGap"`
	SampleSize   int      `json:"sampleSize"`
}

// IndustryOption is one entry of the industry picker.
type IndustryOption struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Selected bool   `json:"selected"`
}

// SensitivityState is the slider position and its bounds.
type SensitivityState struct {
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// EmissionPanel carries the stored Scope 1/2/3 shares unchanged.
type EmissionPanel struct {
	Scope1 float64     `json:"scope1"`
	Scope2 float64     `json:"scope2"`
	Scope3 float64     `json:"scope3"`
	Chart  ChartConfig `json:"chart"`
}

// Scope3Panel breaks Scope 3 down by category.
type Scope3Panel struct {
	Total float64     `json:"total"`
	Chart ChartConfig `json:"chart"`
	Table TableData   `json:"table"`
}

// CoveragePanel splits Scope 3 into the part with available sector guidance
// and the gap. Covered and Gap are shares of total emissions; the *OfScope3
// fields are the same amounts relative to Scope 3.
type CoveragePanel struct {
	Covered        float64     `json:"covered"`
	Gap            float64     `json:"gap"`
	CoveredOfScope float64     `json:"coveredOfScope3"`
	GapOfScope     float64     `json:"gapOfScope3"`
	Chart          ChartConfig `json:"chart"`
}

// CostPanel shows the abatement cost range and the estimate picked by the slider.
type CostPanel struct {
	Range          CostRange   `json:"range"`
	RangeLabel     string      `json:"rangeLabel"`
	Estimate       float64     `json:"estimate"`
	EstimateLabel  string      `json:"estimateLabel"`
	Budget         float64     `json:"budget"`
	AbatableTonnes float64     `json:"abatableTonnes"`
	Uncertainty    ChartConfig `json:"uncertainty"`
}

// SectorPanel lists the IPCC sector reference data.
type SectorPanel struct {
	Table     TableData   `json:"table"`
	Potential ChartConfig `json:"potential"`
}
