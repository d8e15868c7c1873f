package allocation

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tracker"
	"github.com/rgehrsitz/tedori/internal/transform"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Planner builds slots from a profile, runs a strategy over them and
// recalculates the profile with the plan applied.
type Planner struct {
	Engine  *calculation.CalculationEngine
	Tracker *tracker.Tracker
	Logger  calculation.Logger
}

// NewPlanner creates a planner.
func NewPlanner(engine *calculation.CalculationEngine, tr *tracker.Tracker) *Planner {
	return &Planner{Engine: engine, Tracker: tr, Logger: calculation.NopLogger{}}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (p *Planner) SetLogger(l calculation.Logger) {
	if l == nil {
		p.Logger = calculation.NopLogger{}
		return
	}
	p.Logger = l
}

// Slots returns the deductions that can still take money, each with the
// saving rate measured by recalculating with its whole headroom used.
func (p *Planner) Slots(profile *domain.Profile, base *domain.TaxResult) ([]Slot, error) {
	statuses := lo.KeyBy(p.Tracker.Track(profile), func(s domain.DeductionStatus) domain.DeductionCategory {
		return s.Category
	})

	var slots []Slot
	for priority, entry := range slotOrder {
		status, ok := statuses[entry.category]
		if !ok {
			continue
		}
		var headroom decimal.Decimal
		switch {
		case entry.category == domain.DeductionHometownDonation:
			headroom = base.FurusatoLimit.Sub(status.Used)
		case status.Remaining != nil:
			headroom = *status.Remaining
		}
		if entry.category == domain.DeductionLifeInsurance {
			if ceiling, ok := p.lifePremiumCeiling(); ok {
				headroom = decimal.Min(headroom, ceiling.Sub(status.Used))
			}
		}
		if !headroom.IsPositive() {
			continue
		}

		rate, err := p.savingRate(profile, base, entry.category, headroom)
		if err != nil {
			return nil, err
		}
		if !rate.IsPositive() {
			p.Logger.Debugf("slot %s: no saving on %s, skipped", entry.category, headroom)
			continue
		}
		p.Logger.Debugf("slot %s: headroom %s, saving rate %s", entry.category, headroom, rate)
		slots = append(slots, Slot{
			Category:   entry.category,
			Headroom:   headroom,
			Treatment:  entry.treatment,
			SavingRate: rate,
			Priority:   priority,
		})
	}
	return slots, nil
}

// lifePremiumCeiling is the premium past which neither the income tax nor the
// resident tax table deducts anything more.
func (p *Planner) lifePremiumCeiling() (decimal.Decimal, bool) {
	rules := p.Engine.Rules
	income, ok := flatFrom(rules.IncomeTax.LifeInsurance)
	if !ok {
		return decimal.Zero, false
	}
	resident, ok := flatFrom(rules.ResidentTax.LifeInsurance)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.Max(income, resident), true
}

// flatFrom returns the value where a table turns flat: the bound below a
// zero-rate top tier.
func flatFrom(tiers []domain.BracketTier) (decimal.Decimal, bool) {
	n := len(tiers)
	if n < 2 || tiers[n-1].UpTo != nil || !tiers[n-1].Rate.IsZero() || tiers[n-2].UpTo == nil {
		return decimal.Zero, false
	}
	return *tiers[n-2].UpTo, true
}

func (p *Planner) savingRate(profile *domain.Profile, base *domain.TaxResult, category domain.DeductionCategory, amount decimal.Decimal) (decimal.Decimal, error) {
	after, err := p.recalculate(profile, []Allocation{{Category: category, Amount: amount}})
	if err != nil {
		return decimal.Zero, err
	}
	return base.TotalBurden().Sub(after.TotalBurden()).Div(amount).Round(4), nil
}

func (p *Planner) recalculate(profile *domain.Profile, allocations []Allocation) (*domain.TaxResult, error) {
	changes := lo.Map(allocations, func(a Allocation, _ int) transform.ProfileTransform {
		return &transform.IncreaseDeduction{Category: a.Category, Amount: a.Amount}
	})
	modified, err := transform.ApplyTransforms(profile, changes)
	if err != nil {
		return nil, err
	}
	return p.Engine.Calculate(modified)
}

// Plan allocates budget with strategy and recalculates the profile with the
// result. buffer keeps bracket_fill that far below the bracket edge.
func (p *Planner) Plan(profile *domain.Profile, strategy Strategy, budget, buffer decimal.Decimal) (*Plan, error) {
	if !budget.IsPositive() {
		return nil, &calculation.CalculationError{Operation: "allocate", Message: "budget must be positive"}
	}
	if buffer.IsNegative() {
		return nil, &calculation.CalculationError{Operation: "allocate", Message: "bracket buffer cannot be negative"}
	}

	base, err := p.Engine.Calculate(profile)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	slots, err := p.Slots(profile, base)
	if err != nil {
		return nil, fmt.Errorf("slots: %w", err)
	}

	ctx := CreateStrategyContext(budget, base, p.Engine.IncomeTax.Brackets.Tiers(), buffer)
	plan := strategy.Plan(slots, ctx)
	plan.Before = base
	p.Logger.Infof("%s allocated %s of %s", plan.StrategyUsed, plan.TotalAllocated, budget)

	after, err := p.recalculate(profile, plan.Merged())
	if err != nil {
		return nil, fmt.Errorf("recalculation: %w", err)
	}
	plan.After = after
	plan.ActualSaving = base.TotalBurden().Sub(after.TotalBurden())

	// Deductions lower the hometown limit, so the donation chosen up front
	// can end up over it.
	donated := profile.Deductions.Get(domain.DeductionHometownDonation)
	for _, a := range plan.Allocations {
		if a.Category == domain.DeductionHometownDonation {
			donated = donated.Add(a.Amount)
		}
	}
	if over := donated.Sub(after.FurusatoLimit); over.IsPositive() {
		plan.Notes = append(plan.Notes, fmt.Sprintf("hometown donations exceed the recalculated limit by %s", domain.FormatYen(over)))
	}
	return &plan, nil
}
