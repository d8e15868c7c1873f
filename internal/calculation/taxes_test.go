package calculation

import (
	"testing"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncomeTaxCalc(t *testing.T) *IncomeTaxCalculator {
	t.Helper()
	calc, err := NewIncomeTaxCalculator(domain.DefaultTaxRules2024().IncomeTax)
	require.NoError(t, err)
	return calc
}

func newResidentTaxCalc(t *testing.T) *ResidentTaxCalculator {
	t.Helper()
	rules := domain.DefaultTaxRules2024()
	calc, err := NewResidentTaxCalculator(rules.ResidentTax, rules.IncomeTax)
	require.NoError(t, err)
	return calc
}

func TestIncomeTax_TaxAppliesSurtax(t *testing.T) {
	calc := newIncomeTaxCalc(t)

	assert.Equal(t, "206303", calc.Tax(d(2995600)).String(), "(2,995,600 x 10% - 97,500) x 1.021")
	assert.True(t, calc.Tax(d(0)).IsZero())
	assert.True(t, calc.Tax(d(-10)).IsZero())
}

func TestIncomeTax_SalaryDeductionNeverExceedsSalary(t *testing.T) {
	calc := newIncomeTaxCalc(t)

	assert.Equal(t, "300000", calc.SalaryIncomeDeduction(d(300000)).String())
	assert.Equal(t, "550000", calc.SalaryIncomeDeduction(d(1000000)).String())
	assert.True(t, calc.SalaryIncomeDeduction(d(0)).IsZero())
}

func TestIncomeTax_Deductions(t *testing.T) {
	calc := newIncomeTaxCalc(t)

	ctx := DeductionContext{
		Taxpayer: domain.TaxpayerInput{
			EmploymentCategory:     domain.EmploymentSalaried,
			HasSpouse:              true,
			SpouseIncome:           d(400000),
			DependentCount:         2,
			DisabledDependentCount: 1,
			CharitableDonations:    d(52000),
		},
		Deductions: domain.DeductionInputs{
			domain.DeductionLifeInsurance:          d(100000),
			domain.DeductionEarthquakeInsurance:    d(70000),
			domain.DeductionMedicalExpense:         d(250000),
			domain.DeductionIDeCo:                  d(276000),
			domain.DeductionSmallBusinessMutualAid: d(0),
		},
		SocialInsurance: d(800000),
		SalaryDeduction: d(1640000),
		TotalIncome:     d(4360000),
	}
	got := calc.Deductions(ctx)

	assert.Equal(t, "380000", got.Spouse.String())
	assert.Equal(t, "760000", got.Dependents.String())
	assert.Equal(t, "270000", got.DisabledDependents.String())
	assert.Equal(t, "40000", got.LifeInsurance.String(), "Single category life insurance tops out at 40,000")
	assert.Equal(t, "50000", got.EarthquakeInsurance.String(), "Earthquake is capped")
	assert.Equal(t, "150000", got.Medical.String())
	assert.Equal(t, "50000", got.Donation.String())
	assert.Equal(t, "276000", got.IDeCo.String())
	assert.Equal(t, "4896000", got.Total().String())
}

func TestIncomeTax_SpouseDeductionRules(t *testing.T) {
	calc := newIncomeTaxCalc(t)

	earning := DeductionContext{Taxpayer: domain.TaxpayerInput{
		EmploymentCategory: domain.EmploymentSalaried,
		HasSpouse:          true,
		SpouseIncome:       d(1000000),
	}}
	assert.True(t, calc.Deductions(earning).Spouse.IsZero(), "Spouse above the ceiling does not qualify")

	onPayroll := DeductionContext{Taxpayer: domain.TaxpayerInput{
		EmploymentCategory:   domain.EmploymentSelfEmployed,
		FilingType:           domain.FilingBlue,
		HasSpouse:            true,
		FamilyEmployeeSalary: d(960000),
	}}
	assert.True(t, calc.Deductions(onPayroll).Spouse.IsZero(), "A spouse paid as a family employee forfeits the deduction")
}

func TestResidentTax_DeductionsUseResidentAmounts(t *testing.T) {
	calc := newResidentTaxCalc(t)

	got := calc.Deductions(DeductionContext{
		Taxpayer: domain.TaxpayerInput{
			EmploymentCategory: domain.EmploymentSalaried,
			HasSpouse:          true,
			DependentCount:     1,
		},
		Deductions: domain.DeductionInputs{
			domain.DeductionLifeInsurance:       d(100000),
			domain.DeductionEarthquakeInsurance: d(70000),
		},
	})

	assert.Equal(t, "430000", got.Basic.String())
	assert.Equal(t, "330000", got.Spouse.String())
	assert.Equal(t, "330000", got.Dependents.String())
	assert.Equal(t, "28000", got.LifeInsurance.String())
	assert.Equal(t, "25000", got.EarthquakeInsurance.String())
	assert.True(t, got.Donation.IsZero(), "Resident tax has no donation deduction")
}

func TestResidentTax_Assess(t *testing.T) {
	calc := newResidentTaxCalc(t)

	got := calc.Assess(d(3045600), d(4360000), tokyo())

	assert.Equal(t, "121824", got.Prefecture.String())
	assert.Equal(t, "182736", got.City.String())
	assert.Equal(t, "5000", got.FlatLevy.String())
	assert.Equal(t, "304560", got.IncomePortion().String())
	assert.Equal(t, "309560", got.Total().String())
}

func TestResidentTax_RegionalLevy(t *testing.T) {
	calc := newResidentTaxCalc(t)
	regions := domain.DefaultRegions()

	assert.Equal(t, "5300", calc.Assess(d(1000000), d(2000000), regions["osaka"]).FlatLevy.String())
	assert.Equal(t, "5500", calc.Assess(d(1000000), d(2000000), regions["kanagawa"]).FlatLevy.String())
}

func TestResidentTax_NonTaxableBelowThreshold(t *testing.T) {
	calc := newResidentTaxCalc(t)

	got := calc.Assess(d(0), d(450000), tokyo())
	assert.True(t, got.Total().IsZero(), "No resident tax at or below 450,000 total income")

	got = calc.Assess(d(0), d(450001), tokyo())
	assert.Equal(t, "5000", got.Total().String(), "Above the threshold the flat levy applies")
}

func TestResidentTax_FurusatoCredit(t *testing.T) {
	calc := newResidentTaxCalc(t)

	assert.True(t, calc.FurusatoCredit(d(1500)).IsZero())
	assert.True(t, calc.FurusatoCredit(d(2000)).IsZero())
	assert.Equal(t, "48000", calc.FurusatoCredit(d(50000)).String())
}
