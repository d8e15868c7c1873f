package allocation

import (
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// StrategyNames lists the strategies CreateStrategy knows.
var StrategyNames = []string{"standard", "savings_first", "bracket_fill", "custom"}

// CreateStrategy creates a strategy by name. Unknown names fall back to
// standard.
func CreateStrategy(name string, sequence []domain.DeductionCategory) Strategy {
	switch name {
	case "standard":
		return NewStandardStrategy()
	case "savings_first":
		return NewSavingsFirstStrategy()
	case "bracket_fill":
		return NewBracketFillStrategy()
	case "custom":
		return NewCustomStrategy(sequence)
	default:
		return NewStandardStrategy()
	}
}

// slotOrder is the standard priority and the treatment of each category
// that can receive money.
var slotOrder = []struct {
	category  domain.DeductionCategory
	treatment Treatment
}{
	{domain.DeductionIDeCo, IncomeDeduction},
	{domain.DeductionSmallBusinessMutualAid, IncomeDeduction},
	{domain.DeductionHometownDonation, TaxCredit},
	{domain.DeductionManagementSafetyMutualAid, IncomeDeduction},
	{domain.DeductionLifeInsurance, CappedDeduction},
	{domain.DeductionEarthquakeInsurance, CappedDeduction},
}

// CreateStrategyContext builds the context from a calculation and the income
// tax brackets it used.
func CreateStrategyContext(budget decimal.Decimal, result *domain.TaxResult, tiers []domain.BracketTier, buffer decimal.Decimal) StrategyContext {
	ctx := StrategyContext{
		Budget:        budget,
		BracketBuffer: buffer,
	}
	if result != nil {
		ctx.TaxableIncome = result.TaxableIncome
	}
	for _, tier := range tiers {
		if tier.UpTo != nil {
			ctx.BracketEdges = append(ctx.BracketEdges, *tier.UpTo)
		}
	}
	return ctx
}
