package compare

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ErrTooFewSelected is returned when fewer than two recommendations are selected.
var ErrTooFewSelected = errors.New("select at least two recommendations to compare")

// UnknownSelectionError names a selected id that is not among the available
// recommendations.
type UnknownSelectionError struct {
	ID string
}

func (e *UnknownSelectionError) Error() string {
	return fmt.Sprintf("selected recommendation %q is not available", e.ID)
}

// Comparer evaluates combinations of selected recommendations
type Comparer struct {
	MinSelection    int
	MaxSize         int
	MaxCombinations int
	// ConflictHaircut is taken off a combination that puts money into both a
	// retirement account and an investment account.
	ConflictHaircut decimal.Decimal
	Logger          calculation.Logger
}

// NewComparer creates a comparer with the standard limits
func NewComparer() *Comparer {
	return &Comparer{
		MinSelection:    2,
		MaxSize:         4,
		MaxCombinations: 5,
		ConflictHaircut: decimal.NewFromFloat(0.10),
		Logger:          calculation.NopLogger{},
	}
}

// SetLogger sets the logger for the comparer
func (c *Comparer) SetLogger(logger calculation.Logger) {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	c.Logger = logger
}

// Compare evaluates the session's selection with the standard limits.
func Compare(session domain.ComparisonSession) (domain.ComparisonSession, error) {
	return NewComparer().Compare(session)
}

// Compare returns a copy of the session carrying the evaluated combinations.
// The selection is resolved in the order the recommendations are available,
// so the outcome does not depend on the order they were picked in.
func (c *Comparer) Compare(session domain.ComparisonSession) (domain.ComparisonSession, error) {
	out := domain.ComparisonSession{
		Available: session.Available,
		Selected:  append([]string(nil), session.Selected...),
	}

	available := lo.KeyBy(session.Available, func(r domain.Recommendation) string { return r.ID })
	for _, id := range session.Selected {
		if _, ok := available[id]; !ok {
			return out, &UnknownSelectionError{ID: id}
		}
	}

	picked := lo.Filter(session.Available, func(r domain.Recommendation, _ int) bool {
		return session.IsSelected(r.ID)
	})
	if len(picked) < c.MinSelection {
		return out, ErrTooFewSelected
	}

	outcome := &domain.ComparisonOutcome{Recommended: -1}
	for _, group := range c.groups(len(picked)) {
		members := lo.Map(group, func(i int, _ int) domain.Recommendation { return picked[i] })
		combo := c.evaluate(members)
		outcome.Combinations = append(outcome.Combinations, combo)

		if outcome.Recommended < 0 ||
			combo.TotalSaving.GreaterThan(outcome.Combinations[outcome.Recommended].TotalSaving) {
			outcome.Recommended = len(outcome.Combinations) - 1
		}
	}

	c.Logger.Debugf("compared %d combinations of %d selected recommendations", len(outcome.Combinations), len(picked))
	out.Outcome = outcome
	return out, nil
}

// groups enumerates index combinations of size 2 up to MaxSize, smallest
// size first and lexicographic within a size, stopping at MaxCombinations.
func (c *Comparer) groups(n int) [][]int {
	var result [][]int
	for size := c.MinSelection; size <= c.MaxSize && size <= n; size++ {
		current := make([]int, 0, size)
		var walk func(start int) bool
		walk = func(start int) bool {
			if len(current) == size {
				result = append(result, append([]int(nil), current...))
				return len(result) < c.MaxCombinations
			}
			for i := start; i < n; i++ {
				current = append(current, i)
				if !walk(i + 1) {
					return false
				}
				current = current[:len(current)-1]
			}
			return true
		}
		if !walk(0) {
			break
		}
	}
	return result
}

func (c *Comparer) evaluate(members []domain.Recommendation) domain.Combination {
	combo := domain.Combination{
		IDs:       lo.Map(members, func(r domain.Recommendation, _ int) string { return r.ID }),
		Titles:    lo.Map(members, func(r domain.Recommendation, _ int) string { return r.Title }),
		RawSaving: decimal.Zero,
	}
	for _, r := range members {
		combo.RawSaving = combo.RawSaving.Add(r.EstimatedAnnualSaving)
	}

	combo.FundConflict = HasFundConflict(members)
	combo.TotalSaving = combo.RawSaving
	if combo.FundConflict {
		combo.TotalSaving = combo.RawSaving.Mul(decimal.NewFromInt(1).Sub(c.ConflictHaircut)).Floor()
	}
	return combo
}

// HasFundConflict reports whether the group funds both a retirement account
// and an investment account from the same savings.
func HasFundConflict(members []domain.Recommendation) bool {
	kinds := lo.Map(members, func(r domain.Recommendation, _ int) domain.RecommendationKind { return r.Kind })
	return lo.Contains(kinds, domain.KindRetirementAccount) && lo.Contains(kinds, domain.KindInvestmentAccount)
}
