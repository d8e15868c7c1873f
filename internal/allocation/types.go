// Package allocation spreads a yearly savings budget across the deductions
// that still have room, in an order chosen by a strategy.
package allocation

import (
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// Treatment describes how money put into a slot reaches the tax bill.
// IncomeDeduction: deducted in full from income (iDeCo, mutual aid)
// CappedDeduction: only part of the premium becomes a deduction (insurance)
// TaxCredit: returned as credits beyond a fixed co-payment (hometown donation)
type Treatment int

const (
	IncomeDeduction Treatment = iota
	CappedDeduction
	TaxCredit
)

func (t Treatment) String() string {
	switch t {
	case IncomeDeduction:
		return "income_deduction"
	case CappedDeduction:
		return "capped_deduction"
	case TaxCredit:
		return "tax_credit"
	default:
		return "unknown"
	}
}

// Slot is one deduction with room left this year.
// Headroom: how much more can go in before the ceiling
// SavingRate: tax and premiums saved per yen when the whole headroom is used
// Priority: position in the standard order, lowest first
type Slot struct {
	Category   domain.DeductionCategory `json:"category"`
	Headroom   decimal.Decimal          `json:"headroom"`
	Treatment  Treatment                `json:"-"`
	SavingRate decimal.Decimal          `json:"saving_rate"`
	Priority   int                      `json:"priority"`
}

// Allocation is the amount a plan puts into one slot.
type Allocation struct {
	Category        domain.DeductionCategory `json:"category"`
	Amount          decimal.Decimal          `json:"amount"`
	EstimatedSaving decimal.Decimal          `json:"estimated_saving"`
}

// Plan is the outcome of one strategy.
// Unallocated: budget left once every slot is full
// BracketFilled: for bracket_fill, whether taxable income reached the lower edge
// ActualSaving and After are filled in by Planner after recalculating.
type Plan struct {
	Budget          decimal.Decimal   `json:"budget"`
	Allocations     []Allocation      `json:"allocations"`
	TotalAllocated  decimal.Decimal   `json:"total_allocated"`
	Unallocated     decimal.Decimal   `json:"unallocated"`
	EstimatedSaving decimal.Decimal   `json:"estimated_saving"`
	ActualSaving    decimal.Decimal   `json:"actual_saving"`
	Notes           []string          `json:"notes,omitempty"`
	StrategyUsed    string            `json:"strategy"`
	BracketFilled   bool              `json:"bracket_filled,omitempty"`
	BracketTarget   *decimal.Decimal  `json:"bracket_target,omitempty"`
	Before          *domain.TaxResult `json:"before,omitempty"`
	After           *domain.TaxResult `json:"after,omitempty"`
}

// StrategyContext provides the inputs strategies need.
// TaxableIncome: income tax base before any allocation
// BracketEdges: ascending upper bounds of the income tax brackets
// BracketBuffer: how far below a bracket edge bracket_fill aims
type StrategyContext struct {
	Budget        decimal.Decimal
	TaxableIncome decimal.Decimal
	BracketEdges  []decimal.Decimal
	BracketBuffer decimal.Decimal
}

// Strategy decides the order slots are filled in.
type Strategy interface {
	Name() string
	Plan(slots []Slot, ctx StrategyContext) Plan
}

func newPlan(name string, ctx StrategyContext) Plan {
	return Plan{Budget: ctx.Budget, StrategyUsed: name, Allocations: []Allocation{}}
}

// fill puts up to limit into slot, bounded by the slot headroom and the
// unallocated budget. It returns the amount placed.
func (p *Plan) fill(slot *Slot, limit decimal.Decimal) decimal.Decimal {
	remaining := p.Budget.Sub(p.TotalAllocated)
	amount := decimal.Min(limit, slot.Headroom, remaining).Floor()
	if !amount.IsPositive() {
		return decimal.Zero
	}
	saving := amount.Mul(slot.SavingRate).Floor()
	p.Allocations = append(p.Allocations, Allocation{
		Category:        slot.Category,
		Amount:          amount,
		EstimatedSaving: saving,
	})
	p.TotalAllocated = p.TotalAllocated.Add(amount)
	p.EstimatedSaving = p.EstimatedSaving.Add(saving)
	slot.Headroom = slot.Headroom.Sub(amount)
	return amount
}

// finish records what is left of the budget.
func (p *Plan) finish() Plan {
	p.Unallocated = p.Budget.Sub(p.TotalAllocated)
	if p.Unallocated.IsPositive() {
		p.Notes = append(p.Notes, "every deduction is full; the rest of the budget has no tax effect")
	}
	return *p
}

// fillInOrder fills each slot completely before moving to the next.
func fillInOrder(name string, slots []Slot, ctx StrategyContext) Plan {
	plan := newPlan(name, ctx)
	for i := range slots {
		if !plan.Budget.Sub(plan.TotalAllocated).IsPositive() {
			break
		}
		plan.fill(&slots[i], slots[i].Headroom)
	}
	return plan.finish()
}

// Merged sums the allocations per category, keeping first-seen order.
func (p Plan) Merged() []Allocation {
	var out []Allocation
	index := map[domain.DeductionCategory]int{}
	for _, a := range p.Allocations {
		if i, ok := index[a.Category]; ok {
			out[i].Amount = out[i].Amount.Add(a.Amount)
			out[i].EstimatedSaving = out[i].EstimatedSaving.Add(a.EstimatedSaving)
			continue
		}
		index[a.Category] = len(out)
		out = append(out, a)
	}
	return out
}
