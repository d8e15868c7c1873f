package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
)

// Levers lists every lever CompareLevers tries, in report order.
var Levers = []Lever{LeverGrossIncome, LeverSideIncome}

// CompareLevers solves the same target with each lever and picks the one
// needing the smallest increase over today's figure.
func (s *Solver) CompareLevers(
	ctx context.Context,
	profile *domain.Profile,
	goal Goal,
	constraints Constraints,
) (*LeverComparison, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	comparison := &LeverComparison{}
	var failures []string
	for _, lever := range Levers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := s.Solve(ctx, TargetRequest{
			Profile:     profile,
			Lever:       lever,
			Goal:        goal,
			Constraints: constraints,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.Logger.Warnf("solve with %s failed: %v", lever, err)
			failures = append(failures, fmt.Sprintf("%s: %v", lever, err))
			continue
		}
		comparison.Results = append(comparison.Results, *result)
	}

	if len(comparison.Results) == 0 {
		return nil, &SolverError{
			Operation: "compare_levers",
			Message:   fmt.Sprintf("no lever reached the target (%v)", failures),
		}
	}

	for i := range comparison.Results {
		if comparison.Cheapest == nil ||
			comparison.Results[i].Increase.LessThan(comparison.Cheapest.Increase) {
			comparison.Cheapest = &comparison.Results[i]
		}
	}

	comparison.Notes = generateLeverNotes(comparison)
	return comparison, nil
}

func generateLeverNotes(comparison *LeverComparison) []string {
	var notes []string

	for _, r := range comparison.Results {
		if !r.Increase.IsPositive() {
			notes = append(notes, fmt.Sprintf("Your current %s already reaches the target", r.Request.Lever))
			continue
		}
		keep := r.Achieved.Sub(achieved(r.BaseResult, r.Request.Goal))
		notes = append(notes, fmt.Sprintf("Raising %s by %s keeps %s of it",
			r.Request.Lever, domain.FormatYen(r.Increase), domain.FormatYen(keep)))
	}

	if comparison.Cheapest != nil && len(comparison.Results) > 1 && comparison.Cheapest.Increase.IsPositive() {
		notes = append(notes, fmt.Sprintf("Cheapest route: %s", comparison.Cheapest.Request.Lever))
	}
	return notes
}
