package allocation

import "sort"

// StandardStrategy fills slots in their standard priority: iDeCo, mutual
// aid, hometown donation, then insurance.
type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

func (s *StandardStrategy) Name() string { return "standard" }

func (s *StandardStrategy) Plan(slots []Slot, ctx StrategyContext) Plan {
	ordered := append([]Slot(nil), slots...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	return fillInOrder(s.Name(), ordered, ctx)
}
