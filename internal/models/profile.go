package models

import (
	"fmt"
	"strings"
)

// GuidanceStatus describes how much pathway guidance exists for the IPCC sector
// behind a Scope 3 category.
type GuidanceStatus string

const (
	GuidanceAvailable   GuidanceStatus = "Available"
	GuidanceRecent      GuidanceStatus = "Recent"
	GuidanceGenericOnly GuidanceStatus = "Generic only"
	GuidanceLimited     GuidanceStatus = "Limited"
	GuidanceNone        GuidanceStatus = "None"
)

// Symbols shown next to a guidance status in tables.
const (
	StatusCovered = "✅"
	StatusPartial = "⚠️"
	StatusMissing = "❌"
)

// Valid reports whether s is one of the known guidance statuses.
func (s GuidanceStatus) Valid() bool {
	switch s {
	case GuidanceAvailable, GuidanceRecent, GuidanceGenericOnly, GuidanceLimited, GuidanceNone:
		return true
	}
	return false
}

// Symbol maps a guidance status onto its table marker. Only fully available
// guidance counts as covered; recent or generic guidance is partial.
func (s GuidanceStatus) Symbol() string {
	switch s {
	case GuidanceAvailable:
		return StatusCovered
	case GuidanceRecent, GuidanceGenericOnly:
		return StatusPartial
	default:
		return StatusMissing
	}
}

// CostRange is an abatement cost band, in Currency per Unit.
type CostRange struct {
	Low      float64 `json:"low" yaml:"low"`
	High     float64 `json:"high" yaml:"high"`
	Currency string  `json:"currency" yaml:"currency"`
	Unit     string  `json:"unit" yaml:"unit"`
}

// Label renders the range the way the dashboard prints it, e.g. "$20-100/tCO2e".
func (c CostRange) Label() string {
	return fmt.Sprintf("%s%s-%s/%s", currencySymbol(c.Currency), FormatNumber(c.Low), FormatNumber(c.High), c.Unit)
}

// PointLabel renders a single cost in the range's currency and unit, e.g. "$50/tCO2e".
func (c CostRange) PointLabel(v float64) string {
	return fmt.Sprintf("%s%s/%s", currencySymbol(c.Currency), FormatNumber(v), c.Unit)
}

// Width is High minus Low.
func (c CostRange) Width() float64 {
	return c.High - c.Low
}

func currencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "USD", "":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return strings.ToUpper(currency) + " "
	}
}

// Scope3Category is one value-chain emission source of an industry.
// Share is expressed as a percentage of the industry's total emissions.
type Scope3Category struct {
	Code      string         `json:"code" yaml:"code"`
	Name      string         `json:"name" yaml:"name"`
	Sector    string         `json:"sector" yaml:"sector"`
	Share     float64        `json:"share" yaml:"share"`
	Guidance  GuidanceStatus `json:"guidance" yaml:"guidance"`
	CostRange CostRange      `json:"costRange" yaml:"cost_range"`
}

// IndustryProfile holds the illustrative emission and cost figures for one
// industry archetype.
type IndustryProfile struct {
	Name             string           `json:"name" yaml:"name"`
	Slug             string           `json:"slug" yaml:"slug"`
	Scope1           float64          `json:"scope1" yaml:"scope1"`
	Scope2           float64          `json:"scope2" yaml:"scope2"`
	Scope3           float64          `json:"scope3" yaml:"scope3"`
	Scope3Categories []Scope3Category `json:"scope3Categories" yaml:"scope3_categories"`
	AbatementCost    CostRange        `json:"abatementCost" yaml:"abatement_cost"`
	Challenges       []string         `json:"challenges" yaml:"challenges"`
	MainGap          string           `json:"mainGap" yaml:"main_gap"`
	SampleSize       int              `json:"sampleSize" yaml:"sample_size"`
}

// ScopeTotal is Scope1 + Scope2 + Scope3.
func (p IndustryProfile) ScopeTotal() float64 {
	return p.Scope1 + p.Scope2 + p.Scope3
}

// Scope3CategoryTotal sums the shares of all Scope 3 categories.
func (p IndustryProfile) Scope3CategoryTotal() float64 {
	total := 0.0
	for _, c := range p.Scope3Categories {
		total += c.Share
	}
	return total
}

// KeyChallenge returns the headline challenge, or "" when none is recorded.
func (p IndustryProfile) KeyChallenge() string {
	if len(p.Challenges) == 0 {
		return ""
	}
	return p.Challenges[0]
}

// Sectors lists the distinct IPCC sectors referenced by the Scope 3
// categories, in first-seen order.
func (p IndustryProfile) Sectors() []string {
	seen := make(map[string]bool, len(p.Scope3Categories))
	sectors := make([]string, 0, len(p.Scope3Categories))
	for _, c := range p.Scope3Categories {
		if seen[c.Sector] {
			continue
		}
		seen[c.Sector] = true
		sectors = append(sectors, c.Sector)
	}
	return sectors
}
