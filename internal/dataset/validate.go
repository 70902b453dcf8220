package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"pathways.rf2lab.org/internal/models"
)

// Epsilon is the rounding tolerance for share sums.
const Epsilon = 0.01

// KnownIndustries are the archetypes the dashboard compares, in display order.
var KnownIndustries = []string{"Food & Beverage", "Technology", "Heavy Manufacturing"}

// Validate checks every invariant of the dataset and reports all violations at once.
func Validate(industries []models.IndustryProfile, sectors []models.SectorReference) error {
	var errs []error

	if len(industries) != len(KnownIndustries) {
		errs = append(errs, fmt.Errorf("expected %d industries, got %d", len(KnownIndustries), len(industries)))
	}

	seen := make(map[string]bool, len(industries)*2)
	for i, p := range industries {
		if i < len(KnownIndustries) && p.Name != KnownIndustries[i] {
			errs = append(errs, fmt.Errorf("industry %d: expected %q, got %q", i, KnownIndustries[i], p.Name))
		}
		// A profile may use its own name as its slug; only clashes between
		// profiles count as duplicates.
		own := make(map[string]bool, 2)
		for _, key := range []string{p.Name, p.Slug} {
			k := normalize(key)
			if k == "" {
				errs = append(errs, fmt.Errorf("industry %d: name and slug are required", i))
				continue
			}
			if own[k] {
				continue
			}
			own[k] = true
			if seen[k] {
				errs = append(errs, fmt.Errorf("industry %d: duplicate name or slug %q", i, key))
			}
			seen[k] = true
		}
		errs = append(errs, validateProfile(p)...)
	}

	sectorNames := make(map[string]bool, len(sectors))
	for i, s := range sectors {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("sector %d: name is required", i))
		}
		if sectorNames[normalize(s.Name)] {
			errs = append(errs, fmt.Errorf("sector %q: duplicate", s.Name))
		}
		sectorNames[normalize(s.Name)] = true
		if s.PotentialGt < 0 {
			errs = append(errs, fmt.Errorf("sector %q: negative potential %v", s.Name, s.PotentialGt))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
}

func validateProfile(p models.IndustryProfile) []error {
	var errs []error
	prefix := p.Name

	for _, share := range []struct {
		name  string
		value float64
	}{{"scope1", p.Scope1}, {"scope2", p.Scope2}, {"scope3", p.Scope3}} {
		if share.value < 0 {
			errs = append(errs, fmt.Errorf("%s: %s share is negative", prefix, share.name))
		}
	}

	if total := p.ScopeTotal(); math.Abs(total-100) > Epsilon {
		errs = append(errs, fmt.Errorf("%s: scope 1+2+3 shares sum to %v, want 100", prefix, total))
	}

	if len(p.Scope3Categories) == 0 {
		errs = append(errs, fmt.Errorf("%s: no scope 3 categories", prefix))
	}
	for _, c := range p.Scope3Categories {
		if c.Share < 0 {
			errs = append(errs, fmt.Errorf("%s: category %q has negative share", prefix, c.Name))
		}
		if !c.Guidance.Valid() {
			errs = append(errs, fmt.Errorf("%s: category %q has unknown guidance %q", prefix, c.Name, c.Guidance))
		}
		if err := validateRange(c.CostRange); err != nil {
			errs = append(errs, fmt.Errorf("%s: category %q: %w", prefix, c.Name, err))
		}
	}
	if total := p.Scope3CategoryTotal(); math.Abs(total-p.Scope3) > Epsilon {
		errs = append(errs, fmt.Errorf("%s: scope 3 categories sum to %v, want %v", prefix, total, p.Scope3))
	}

	if err := validateRange(p.AbatementCost); err != nil {
		errs = append(errs, fmt.Errorf("%s: abatement cost: %w", prefix, err))
	}
	return errs
}

func validateRange(r models.CostRange) error {
	if r.Low > r.High {
		return fmt.Errorf("low %v exceeds high %v", r.Low, r.High)
	}
	if r.Unit == "" {
		return errors.New("unit is required")
	}
	return nil
}
