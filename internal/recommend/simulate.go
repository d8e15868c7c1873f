package recommend

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/transform"
	"github.com/shopspring/decimal"
)

// ErrNotSimulatable is returned for recommendations that have no profile
// change to apply, such as opening a NISA account.
var ErrNotSimulatable = errors.New("recommendation cannot be simulated")

// Simulation compares an estimate with a full recalculation.
type Simulation struct {
	Recommendation domain.Recommendation
	Before         *domain.TaxResult
	After          *domain.TaxResult
	// ActualSaving is the drop in income tax, resident tax and social
	// insurance combined.
	ActualSaving decimal.Decimal
}

// Difference is the actual saving minus the estimate.
func (s *Simulation) Difference() decimal.Decimal {
	return s.ActualSaving.Sub(s.Recommendation.EstimatedAnnualSaving)
}

// Simulate applies the recommendation's action to the profile and recomputes
// everything. The profile itself is left untouched.
func Simulate(engine *calculation.CalculationEngine, profile *domain.Profile, rec domain.Recommendation) (*Simulation, error) {
	if rec.Action == "" {
		return nil, fmt.Errorf("%s: %w", rec.ID, ErrNotSimulatable)
	}
	t, err := transform.NewTransformRegistry().ParseTransformSpec(rec.Action)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid action: %w", rec.ID, err)
	}

	before, err := engine.Calculate(profile)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	modified, err := transform.ApplyTransforms(profile, []transform.ProfileTransform{t})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.ID, err)
	}
	after, err := engine.Calculate(modified)
	if err != nil {
		return nil, fmt.Errorf("%s: recalculation: %w", rec.ID, err)
	}

	return &Simulation{
		Recommendation: rec,
		Before:         before,
		After:          after,
		ActualSaving:   before.TotalBurden().Sub(after.TotalBurden()),
	}, nil
}
