// Package dashboard derives the dashboard view from the immutable dataset and
// a per-session Selection. Rendering is a pure function of the two.
package dashboard

import (
	"fmt"

	"pathways.rf2lab.org/internal/dataset"
	"pathways.rf2lab.org/internal/models"
)

const (
	viewTitle    = "Industry-Specific Decarbonization Pathways"
	viewSubtitle = "Why sectoral approaches fall short: emission profiles, Scope 3 dependencies and abatement costs across industry archetypes"

	// Disclaimer is attached to every rendered view.
	Disclaimer = "Illustrative figures only. All values are demonstration constants, not measured or validated emissions data."
)

// DefaultBudget is the decarbonization budget used in the cost scenario, in USD.
const DefaultBudget = 10_000_000

// Options tune the derived view.
type Options struct {
	Sensitivity SensitivityRange
	Budget      float64
}

// DefaultOptions returns the slider and budget defaults.
func DefaultOptions() Options {
	return Options{
		Sensitivity: DefaultSensitivityRange(),
		Budget:      DefaultBudget,
	}
}

// Renderer is safe for concurrent use; it holds no per-session state.
type Renderer struct {
	data *dataset.Dataset
	opts Options
}

// NewRenderer validates the options and binds them to a dataset.
func NewRenderer(data *dataset.Dataset, opts Options) (*Renderer, error) {
	if data == nil {
		return nil, fmt.Errorf("dashboard: nil dataset")
	}
	if err := opts.Sensitivity.Validate(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if opts.Budget < 0 {
		return nil, fmt.Errorf("dashboard: budget %v must not be negative", opts.Budget)
	}
	return &Renderer{data: data, opts: opts}, nil
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Dataset returns the dataset the renderer reads from.
func (r *Renderer) Dataset() *dataset.Dataset {
	return r.data
}

// DefaultSelection is the first industry at the default sensitivity.
func (r *Renderer) DefaultSelection() Selection {
	return Selection{
		Industry:    r.data.Default().Name,
		Sensitivity: r.opts.Sensitivity.Default,
	}
}

// SelectIndustry returns sel with its industry replaced. Names and slugs are
// accepted case-insensitively and stored in canonical form. On failure the
// returned Selection is sel unchanged and the error wraps ErrInvalidSelection.
func (r *Renderer) SelectIndustry(sel Selection, name string) (Selection, error) {
	profile, ok := r.data.Industry(name)
	if !ok {
		return sel, fmt.Errorf("%w: unknown industry %q", ErrInvalidSelection, name)
	}
	sel.Industry = profile.Name
	return sel, nil
}

// AdjustCostSensitivity returns sel with its sensitivity clamped into range.
func (r *Renderer) AdjustCostSensitivity(sel Selection, value float64) Selection {
	sel.Sensitivity = r.opts.Sensitivity.Clamp(value)
	return sel
}

// CostEstimate is the abatement cost of profile at the given sensitivity.
func (r *Renderer) CostEstimate(profile models.IndustryProfile, sensitivity float64) float64 {
	return CostEstimate(profile.AbatementCost, sensitivity, r.opts.Sensitivity)
}

// Render derives the view for sel. It fails only when sel names an unknown industry.
func (r *Renderer) Render(sel Selection) (models.View, error) {
	profile, ok := r.data.Industry(sel.Industry)
	if !ok {
		return models.View{}, fmt.Errorf("%w: unknown industry %q", ErrInvalidSelection, sel.Industry)
	}
	sensitivity := r.opts.Sensitivity.Clamp(sel.Sensitivity)

	view := models.View{
		Title:      viewTitle,
		Subtitle:   viewSubtitle,
		Disclaimer: Disclaimer,
		Industry: models.IndustrySummary{
			Name:         profile.Name,
			Slug:         profile.Slug,
			KeyChallenge: profile.KeyChallenge(),
			Challenges:   profile.Challenges,
			MainGap:      profile.MainGap,
			SampleSize:   profile.SampleSize,
		},
		Industries: r.industryOptions(profile.Name),
		Sensitivity: models.SensitivityState{
			Value: sensitivity,
			Min:   r.opts.Sensitivity.Min,
			Max:   r.opts.Sensitivity.Max,
			Step:  r.opts.Sensitivity.Step,
		},
		Emissions:  emissionPanel(profile),
		Scope3:     scope3Panel(profile),
		Coverage:   coveragePanel(profile),
		Cost:       r.costPanel(profile, sensitivity),
		Comparison: r.comparisonTable(profile.Name, sensitivity),
		Sectors:    sectorPanel(r.data.Sectors()),
	}
	return view, nil
}

func (r *Renderer) industryOptions(selected string) []models.IndustryOption {
	profiles := r.data.Industries()
	options := make([]models.IndustryOption, 0, len(profiles))
	for _, p := range profiles {
		options = append(options, models.IndustryOption{
			Name:     p.Name,
			Slug:     p.Slug,
			Selected: p.Name == selected,
		})
	}
	return options
}
