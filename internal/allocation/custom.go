package allocation

import (
	"github.com/rgehrsitz/tedori/internal/domain"
)

// CustomStrategy fills slots in a user-given order of deduction categories.
// Categories without room are skipped; an invalid order falls back to
// standard.
type CustomStrategy struct {
	Sequence []domain.DeductionCategory
}

func NewCustomStrategy(sequence []domain.DeductionCategory) *CustomStrategy {
	return &CustomStrategy{Sequence: sequence}
}

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Plan(slots []Slot, ctx StrategyContext) Plan {
	seen := map[domain.DeductionCategory]bool{}
	valid := len(s.Sequence) > 0
	for _, c := range s.Sequence {
		if !c.Known() || seen[c] {
			valid = false
			break
		}
		seen[c] = true
	}
	if !valid {
		plan := NewStandardStrategy().Plan(slots, ctx)
		plan.StrategyUsed = "custom->standard_fallback"
		plan.Notes = append([]string{"invalid or empty custom order, using standard"}, plan.Notes...)
		return plan
	}

	lookup := map[domain.DeductionCategory]Slot{}
	for _, slot := range slots {
		lookup[slot.Category] = slot
	}
	var ordered []Slot
	for _, c := range s.Sequence {
		if slot, ok := lookup[c]; ok {
			ordered = append(ordered, slot)
		}
	}
	return fillInOrder(s.Name(), ordered, ctx)
}
