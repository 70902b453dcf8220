package models

// Intervention is a single mitigation option with its published cost band.
// Cost is kept as text because several bands are qualitative ("Mostly <$0/tCO2e").
type Intervention struct {
	Name string `json:"name" yaml:"name"`
	Cost string `json:"cost" yaml:"cost"`
}

// SectorReference is the IPCC AR6 reference entry for one sector.
type SectorReference struct {
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description" yaml:"description"`
	Interventions []Intervention `json:"interventions" yaml:"interventions"`
	// PotentialGt is the 2030 mitigation potential in GtCO2-eq.
	PotentialGt float64 `json:"potentialGt" yaml:"potential_gt"`
}
