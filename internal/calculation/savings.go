package calculation

import (
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// SavingsAssumptions are the contribution sizes behind the headline savings.
type SavingsAssumptions struct {
	IDeCoEmployeeMax decimal.Decimal
	IDeCoBusinessMax decimal.Decimal
	IDeCoMaxAge      int
	NISAAnnual       decimal.Decimal
	NISAReturn       decimal.Decimal
	CapitalGainsRate decimal.Decimal
	LifeInsuranceMax decimal.Decimal
}

// DefaultSavingsAssumptions returns the values used when none are configured.
func DefaultSavingsAssumptions() SavingsAssumptions {
	return SavingsAssumptions{
		IDeCoEmployeeMax: decimal.NewFromInt(276000),
		IDeCoBusinessMax: decimal.NewFromInt(816000),
		IDeCoMaxAge:      65,
		NISAAnnual:       decimal.NewFromInt(1200000),
		NISAReturn:       decimal.NewFromFloat(0.05),
		CapitalGainsRate: decimal.NewFromFloat(0.20315),
		LifeInsuranceMax: decimal.NewFromInt(120000),
	}
}

// IDeCoCeiling is the yearly iDeCo contribution limit for a category.
func (a SavingsAssumptions) IDeCoCeiling(category domain.EmploymentCategory) decimal.Decimal {
	if category.IsBusinessOwner() {
		return a.IDeCoBusinessMax
	}
	return a.IDeCoEmployeeMax
}

// CombinedMarginalRate is the income tax rate with surtax plus the resident
// tax rate: what one more yen of deduction saves.
func (ce *CalculationEngine) CombinedMarginalRate(result *domain.TaxResult) decimal.Decimal {
	region, _ := domain.LookupRegion(ce.Regions, result.Region)
	return result.MarginalRate.Mul(ce.Rules.IncomeTax.SurtaxMultiplier).Add(region.ResidentRate())
}

// EstimateSavings prices the four headline actions against an existing result.
func (ce *CalculationEngine) EstimateSavings(profile *domain.Profile, result *domain.TaxResult, a SavingsAssumptions) domain.SavingsSummary {
	rate := ce.CombinedMarginalRate(result)
	var s domain.SavingsSummary
	if !result.TaxableIncome.IsPositive() {
		rate = decimal.Zero
	}

	if profile.Taxpayer.Age < a.IDeCoMaxAge {
		room := nonNegative(a.IDeCoCeiling(profile.Taxpayer.EmploymentCategory).Sub(profile.Deductions.Get(domain.DeductionIDeCo)))
		s.IDeCo = domain.SavingsLine{Contribution: room, AnnualSaving: room.Mul(rate).Round(0)}
	}

	gain := a.NISAAnnual.Mul(a.NISAReturn)
	s.NISA = domain.SavingsLine{Contribution: a.NISAAnnual, AnnualSaving: gain.Mul(a.CapitalGainsRate).Round(0)}

	lifeRoom := nonNegative(a.LifeInsuranceMax.Sub(result.Deductions.LifeInsurance))
	s.LifeInsurance = domain.SavingsLine{Contribution: lifeRoom, AnnualSaving: lifeRoom.Mul(rate).Round(0)}

	donated := profile.Deductions.Get(domain.DeductionHometownDonation)
	room := nonNegative(result.FurusatoLimit.Sub(donated))
	saving := room
	if donated.IsZero() {
		saving = nonNegative(room.Sub(ce.Rules.ResidentTax.FurusatoSelfPay))
	}
	s.Furusato = domain.SavingsLine{Contribution: room, AnnualSaving: saving}
	return s
}
