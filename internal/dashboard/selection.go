package dashboard

import (
	"errors"
	"fmt"
	"math"

	"pathways.rf2lab.org/internal/models"
)

// ErrInvalidSelection is returned when a selection names an industry the
// dataset does not contain.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is the only state a dashboard session carries between interactions.
type Selection struct {
	Industry    string  `json:"industry"`
	Sensitivity float64 `json:"sensitivity"`
}

// SensitivityRange configures the cost-sensitivity slider.
type SensitivityRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// DefaultSensitivityRange is a 0-100 slider starting in the middle.
func DefaultSensitivityRange() SensitivityRange {
	return SensitivityRange{Min: 0, Max: 100, Default: 50, Step: 1}
}

// Validate checks that the range is usable for interpolation.
func (r SensitivityRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return errors.New("sensitivity bounds must be finite")
	}
	if r.Min >= r.Max {
		return fmt.Errorf("sensitivity min %v must be below max %v", r.Min, r.Max)
	}
	if r.Default < r.Min || r.Default > r.Max {
		return fmt.Errorf("sensitivity default %v outside [%v, %v]", r.Default, r.Min, r.Max)
	}
	if r.Step <= 0 {
		return fmt.Errorf("sensitivity step %v must be positive", r.Step)
	}
	return nil
}

// Clamp pins v to [Min, Max]. NaN falls back to Default.
func (r SensitivityRange) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return r.Default
	case v < r.Min:
		return r.Min
	case v > r.Max:
		return r.Max
	}
	return v
}

// Fraction maps v onto [0, 1] after clamping.
func (r SensitivityRange) Fraction(v float64) float64 {
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// CostEstimate interpolates linearly between the low and high bound of c.
// The slider minimum yields c.Low and the maximum yields c.High.
func CostEstimate(c models.CostRange, sensitivity float64, rng SensitivityRange) float64 {
	f := rng.Fraction(sensitivity)
	switch f {
	case 0:
		return c.Low
	case 1:
		return c.High
	}
	return c.Low + (c.High-c.Low)*f
}
