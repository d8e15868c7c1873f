package calculation

import (
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// FurusatoSolver finds the largest hometown donation whose cost to the donor
// stays at the self-pay floor.
type FurusatoSolver struct {
	Rules            domain.ResidentTaxRules
	SurtaxMultiplier decimal.Decimal
}

// NewFurusatoSolver creates a solver.
func NewFurusatoSolver(rules domain.ResidentTaxRules, surtax decimal.Decimal) *FurusatoSolver {
	return &FurusatoSolver{Rules: rules, SurtaxMultiplier: surtax}
}

// Limit inverts the special-credit formula. The special credit may not exceed
// 20% of the income portion of resident tax, and covers what is left of the
// donation after the basic 10% credit and the income tax effect:
//
//	limit = portion * 0.20 / (0.90 - marginalRate * surtax) + selfPay
//
// The result is floored to the rounding unit.
func (s *FurusatoSolver) Limit(residentIncomePortion, marginalRate decimal.Decimal) decimal.Decimal {
	if !residentIncomePortion.IsPositive() {
		return decimal.Zero
	}
	denom := s.Rules.FurusatoBaseRate.Sub(marginalRate.Mul(s.SurtaxMultiplier))
	if !denom.IsPositive() {
		return s.Rules.FurusatoSelfPay
	}
	raw := residentIncomePortion.Mul(s.Rules.FurusatoCreditRate).Div(denom).Add(s.Rules.FurusatoSelfPay)
	unit := s.Rules.FurusatoRoundingUnit
	if unit.IsZero() {
		return raw.Floor()
	}
	return raw.Div(unit).Floor().Mul(unit)
}
