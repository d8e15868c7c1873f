package calculation

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	twelve = decimal.NewFromInt(12)
	two    = decimal.NewFromInt(2)
)

// SocialInsuranceInput carries everything the premium calculation needs.
type SocialInsuranceInput struct {
	MonthlySalary decimal.Decimal
	AnnualBonus   decimal.Decimal
	// AnnualEarnings decides whether a part-time worker crosses into employee insurance.
	AnnualEarnings decimal.Decimal
	// AssessableIncome is the national health insurance base (income after
	// salary deduction or business expenses).
	AssessableIncome decimal.Decimal
	Age              int
	Category         domain.EmploymentCategory
	Region           domain.RegionProfile
}

// SocialInsuranceCalculator computes the employee share of social insurance.
type SocialInsuranceCalculator struct {
	Rules domain.SocialInsuranceRules
}

// NewSocialInsuranceCalculator creates a calculator for the given rules.
func NewSocialInsuranceCalculator(rules domain.SocialInsuranceRules) *SocialInsuranceCalculator {
	return &SocialInsuranceCalculator{Rules: rules}
}

// UsesNationalScheme reports whether the filer pays national health insurance
// and national pension instead of employee insurance.
func (c *SocialInsuranceCalculator) UsesNationalScheme(category domain.EmploymentCategory, annualEarnings decimal.Decimal) (bool, error) {
	switch category {
	case domain.EmploymentSalaried, domain.EmploymentContract:
		return false, nil
	case domain.EmploymentPartTime:
		return annualEarnings.LessThan(c.Rules.PartTimeThreshold), nil
	case domain.EmploymentSelfEmployed, domain.EmploymentFreelance:
		return true, nil
	default:
		return false, &CalculationError{
			Operation: "social_insurance",
			Message:   fmt.Sprintf("unknown employment category %q", category),
		}
	}
}

// Calculate returns the yearly premiums for in.
func (c *SocialInsuranceCalculator) Calculate(in SocialInsuranceInput) (domain.SocialInsurance, error) {
	national, err := c.UsesNationalScheme(in.Category, in.AnnualEarnings)
	if err != nil {
		return domain.SocialInsurance{}, err
	}
	if national {
		return c.nationalScheme(in), nil
	}
	return c.employeeScheme(in), nil
}

// StandardBonus truncates a bonus to the rounding unit (標準賞与額).
func (c *SocialInsuranceCalculator) StandardBonus(bonus decimal.Decimal) decimal.Decimal {
	unit := c.Rules.BonusRoundingUnit
	if unit.IsZero() {
		return bonus
	}
	return bonus.Div(unit).Floor().Mul(unit)
}

func (c *SocialInsuranceCalculator) employeeScheme(in SocialInsuranceInput) domain.SocialInsurance {
	r := c.Rules
	bonus := c.StandardBonus(in.AnnualBonus)

	healthBase := decimal.Min(in.MonthlySalary, r.HealthMonthlyCap).Mul(twelve).
		Add(decimal.Min(bonus, r.HealthBonusAnnualCap))
	pensionBase := decimal.Min(in.MonthlySalary, r.PensionMonthlyCap).Mul(twelve).
		Add(decimal.Min(bonus, r.PensionBonusCap))

	si := domain.SocialInsurance{
		Health:     healthBase.Mul(in.Region.HealthInsuranceRate).Div(two).Round(0),
		Pension:    pensionBase.Mul(r.PensionRate).Div(two).Round(0),
		Employment: in.MonthlySalary.Mul(twelve).Add(in.AnnualBonus).Mul(r.EmploymentRate).Round(0),
	}
	if in.Age >= r.CareInsuranceAge {
		si.Care = healthBase.Mul(in.Region.CareInsuranceRate).Div(two).Round(0)
	}
	si.Total = decimal.Sum(si.Health, si.Care, si.Pension, si.Employment)
	return si
}

func (c *SocialInsuranceCalculator) nationalScheme(in SocialInsuranceInput) domain.SocialInsurance {
	base := in.AssessableIncome.Sub(c.Rules.NHIDeductionFloor)
	if base.IsNegative() {
		base = decimal.Zero
	}
	si := domain.SocialInsurance{
		Health:         base.Mul(in.Region.NHIRate).Add(in.Region.NHIPerCapita).Round(0),
		Pension:        c.Rules.NationalPensionAnnual,
		NationalScheme: true,
	}
	si.Total = si.Health.Add(si.Pension)
	return si
}
