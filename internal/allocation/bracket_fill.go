package allocation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BracketFillStrategy uses full income deductions to bring taxable income
// down to the edge of the next lower bracket, where each yen saves the most,
// then moves to tax credits, the remaining income deductions and finally
// capped deductions.
type BracketFillStrategy struct{}

func NewBracketFillStrategy() *BracketFillStrategy { return &BracketFillStrategy{} }

func (s *BracketFillStrategy) Name() string { return "bracket_fill" }

func (s *BracketFillStrategy) Plan(slots []Slot, ctx StrategyContext) Plan {
	plan := newPlan(s.Name(), ctx)

	ordered := append([]Slot(nil), slots...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	byTreatment := func(t Treatment) []*Slot {
		var out []*Slot
		for i := range ordered {
			if ordered[i].Treatment == t {
				out = append(out, &ordered[i])
			}
		}
		return out
	}

	// 1. Bring taxable income down to the lower bracket edge
	edge, ok := lowerEdge(ctx.TaxableIncome, ctx.BracketEdges)
	if ok {
		target := decimal.Max(edge.Sub(ctx.BracketBuffer), decimal.Zero)
		plan.BracketTarget = &target
		gap := ctx.TaxableIncome.Sub(target)
		for _, slot := range byTreatment(IncomeDeduction) {
			if !gap.IsPositive() {
				break
			}
			gap = gap.Sub(plan.fill(slot, gap))
		}
		plan.BracketFilled = !gap.IsPositive()
		if !plan.BracketFilled {
			plan.Notes = append(plan.Notes, "budget or headroom ran out before reaching the lower bracket")
		}
	} else {
		plan.Notes = append(plan.Notes, "taxable income is already in the lowest bracket")
	}

	// 2. Tax credits, 3. remaining income deductions, 4. capped deductions
	for _, t := range []Treatment{TaxCredit, IncomeDeduction, CappedDeduction} {
		for _, slot := range byTreatment(t) {
			plan.fill(slot, slot.Headroom)
		}
	}
	return plan.finish()
}

// lowerEdge returns the largest bracket edge below taxable.
func lowerEdge(taxable decimal.Decimal, edges []decimal.Decimal) (decimal.Decimal, bool) {
	found := false
	var edge decimal.Decimal
	for _, e := range edges {
		if e.LessThan(taxable) {
			edge = e
			found = true
		}
	}
	return edge, found
}
