package allocation

import "sort"

// SavingsFirstStrategy fills the slots that return the most per yen first.
// Hometown donation usually leads since nearly all of it comes back as
// credits; the money is spent though, unlike an iDeCo contribution.
type SavingsFirstStrategy struct{}

func NewSavingsFirstStrategy() *SavingsFirstStrategy { return &SavingsFirstStrategy{} }

func (s *SavingsFirstStrategy) Name() string { return "savings_first" }

func (s *SavingsFirstStrategy) Plan(slots []Slot, ctx StrategyContext) Plan {
	ordered := append([]Slot(nil), slots...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].SavingRate.Equal(ordered[j].SavingRate) {
			return ordered[i].SavingRate.GreaterThan(ordered[j].SavingRate)
		}
		return ordered[i].Priority < ordered[j].Priority
	})
	return fillInOrder(s.Name(), ordered, ctx)
}
