package calculation

import (
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income tax brackets and deduction amounts are the 2024 values.
//    Taxable income is not truncated to ¥1,000 before the bracket lookup.
//
// 2. Resident tax uses the prior year's income and the lower resident-tax
//    deduction amounts. Rate 10% (prefecture 4%, city 6%) plus the regional
//    flat levy. Nothing is due when prior-year total income is ¥450,000 or less.
//
// 3. Hometown donations are handled through the one-stop exception: the whole
//    credit above ¥2,000 comes off resident tax, nothing off income tax.
//
// 4. Life insurance is a single category (new system). Earthquake insurance
//    is deducted in full up to ¥50,000 (resident: half, up to ¥25,000).

// DeductionContext is the input to the deduction calculators.
type DeductionContext struct {
	Taxpayer        domain.TaxpayerInput
	Deductions      domain.DeductionInputs
	SocialInsurance decimal.Decimal
	SalaryDeduction decimal.Decimal
	// TotalIncome caps the charitable donation deduction.
	TotalIncome decimal.Decimal
}

// IncomeTaxCalculator handles national income tax.
type IncomeTaxCalculator struct {
	Rules           domain.IncomeTaxRules
	Brackets        *BracketTable
	SalaryDeduction *BracketTable
	LifeInsurance   *BracketTable
}

// NewIncomeTaxCalculator builds the calculator and validates its tables.
func NewIncomeTaxCalculator(rules domain.IncomeTaxRules) (*IncomeTaxCalculator, error) {
	brackets, err := NewBracketTable("income_tax", rules.Brackets)
	if err != nil {
		return nil, err
	}
	salary, err := NewBracketTable("salary_deduction", rules.SalaryDeduction)
	if err != nil {
		return nil, err
	}
	life, err := NewBracketTable("life_insurance", rules.LifeInsurance)
	if err != nil {
		return nil, err
	}
	return &IncomeTaxCalculator{Rules: rules, Brackets: brackets, SalaryDeduction: salary, LifeInsurance: life}, nil
}

// SalaryIncomeDeduction returns 給与所得控除 for a gross salary.
func (c *IncomeTaxCalculator) SalaryIncomeDeduction(gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(c.SalaryDeduction.Apply(gross), gross)
}

// Deductions itemises the income-tax deductions.
func (c *IncomeTaxCalculator) Deductions(ctx DeductionContext) domain.DeductionBreakdown {
	tp := ctx.Taxpayer
	r := c.Rules
	d := domain.DeductionBreakdown{
		SocialInsurance:     ctx.SocialInsurance,
		Salary:              ctx.SalaryDeduction,
		Basic:               r.BasicDeduction,
		Dependents:          r.DependentDeduction.Mul(decimal.NewFromInt(int64(tp.DependentCount))),
		DisabledDependents:  r.DisabledDeduction.Mul(decimal.NewFromInt(int64(tp.DisabledDependentCount))),
		LifeInsurance:       decimal.Min(c.LifeInsurance.Apply(ctx.Deductions.Get(domain.DeductionLifeInsurance)), r.LifeInsuranceCap),
		EarthquakeInsurance: decimal.Min(ctx.Deductions.Get(domain.DeductionEarthquakeInsurance), r.EarthquakeCap),
		Medical:             medicalDeduction(ctx.Deductions.Get(domain.DeductionMedicalExpense), r.MedicalFloor, r.MedicalCap),
		SmallBusinessAid:    ctx.Deductions.Get(domain.DeductionSmallBusinessMutualAid),
		IDeCo:               ctx.Deductions.Get(domain.DeductionIDeCo),
	}
	if spouseQualifies(tp, r.SpouseIncomeCeiling) {
		d.Spouse = r.SpouseDeduction
	}

	donation := tp.CharitableDonations.Sub(r.DonationSelfPay)
	if donation.IsPositive() {
		ceiling := ctx.TotalIncome.Mul(decimal.NewFromFloat(0.4))
		d.Donation = decimal.Min(donation, ceiling)
		if d.Donation.IsNegative() {
			d.Donation = decimal.Zero
		}
	}
	return d
}

// Tax applies the bracket table and the reconstruction surtax, rounded to the yen.
func (c *IncomeTaxCalculator) Tax(taxable decimal.Decimal) decimal.Decimal {
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	return c.Brackets.Apply(taxable).Mul(c.Rules.SurtaxMultiplier).Round(0)
}

// MarginalRate is the bracket rate (before surtax) that applies to taxable.
func (c *IncomeTaxCalculator) MarginalRate(taxable decimal.Decimal) decimal.Decimal {
	return c.Brackets.Rate(taxable)
}

// ResidentTax is the split of one resident-tax assessment.
type ResidentTax struct {
	Taxable    decimal.Decimal
	Prefecture decimal.Decimal
	City       decimal.Decimal
	FlatLevy   decimal.Decimal
}

// IncomePortion is the proportional part, without the flat levy.
func (r ResidentTax) IncomePortion() decimal.Decimal {
	return r.Prefecture.Add(r.City)
}

// Total is the full assessment.
func (r ResidentTax) Total() decimal.Decimal {
	return r.IncomePortion().Add(r.FlatLevy)
}

// ResidentTaxCalculator handles prefecture and municipal inhabitant tax.
type ResidentTaxCalculator struct {
	Rules               domain.ResidentTaxRules
	SpouseIncomeCeiling decimal.Decimal
	MedicalFloor        decimal.Decimal
	MedicalCap          decimal.Decimal
	LifeInsurance       *BracketTable
}

// NewResidentTaxCalculator builds the calculator. The spouse ceiling and the
// medical thresholds are shared with income tax.
func NewResidentTaxCalculator(rules domain.ResidentTaxRules, incomeRules domain.IncomeTaxRules) (*ResidentTaxCalculator, error) {
	life, err := NewBracketTable("resident_life_insurance", rules.LifeInsurance)
	if err != nil {
		return nil, err
	}
	return &ResidentTaxCalculator{
		Rules:               rules,
		SpouseIncomeCeiling: incomeRules.SpouseIncomeCeiling,
		MedicalFloor:        incomeRules.MedicalFloor,
		MedicalCap:          incomeRules.MedicalCap,
		LifeInsurance:       life,
	}, nil
}

// Deductions itemises the resident-tax deductions.
func (c *ResidentTaxCalculator) Deductions(ctx DeductionContext) domain.DeductionBreakdown {
	tp := ctx.Taxpayer
	r := c.Rules
	d := domain.DeductionBreakdown{
		SocialInsurance:     ctx.SocialInsurance,
		Salary:              ctx.SalaryDeduction,
		Basic:               r.BasicDeduction,
		Dependents:          r.DependentDeduction.Mul(decimal.NewFromInt(int64(tp.DependentCount))),
		DisabledDependents:  r.DisabledDeduction.Mul(decimal.NewFromInt(int64(tp.DisabledDependentCount))),
		LifeInsurance:       decimal.Min(c.LifeInsurance.Apply(ctx.Deductions.Get(domain.DeductionLifeInsurance)), r.LifeInsuranceCap),
		EarthquakeInsurance: decimal.Min(ctx.Deductions.Get(domain.DeductionEarthquakeInsurance).Mul(r.EarthquakeRatio).Round(0), r.EarthquakeCap),
		Medical:             medicalDeduction(ctx.Deductions.Get(domain.DeductionMedicalExpense), c.MedicalFloor, c.MedicalCap),
		SmallBusinessAid:    ctx.Deductions.Get(domain.DeductionSmallBusinessMutualAid),
		IDeCo:               ctx.Deductions.Get(domain.DeductionIDeCo),
	}
	if spouseQualifies(tp, c.SpouseIncomeCeiling) {
		d.Spouse = r.SpouseDeduction
	}
	return d
}

// Assess computes the resident tax on taxable income. totalIncome is the
// income before deductions, used for the non-taxable threshold.
func (c *ResidentTaxCalculator) Assess(taxable, totalIncome decimal.Decimal, region domain.RegionProfile) ResidentTax {
	if totalIncome.LessThanOrEqual(c.Rules.NonTaxableIncome) {
		return ResidentTax{}
	}
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	portion := taxable.Mul(region.ResidentRate()).Round(0)
	prefecture := taxable.Mul(region.PrefectureRate).Round(0)
	if prefecture.GreaterThan(portion) {
		prefecture = portion
	}
	return ResidentTax{
		Taxable:    taxable,
		Prefecture: prefecture,
		City:       portion.Sub(prefecture),
		FlatLevy:   region.FlatLevy,
	}
}

// FurusatoCredit is the donation amount above the self-pay floor.
func (c *ResidentTaxCalculator) FurusatoCredit(donation decimal.Decimal) decimal.Decimal {
	credit := donation.Sub(c.Rules.FurusatoSelfPay)
	if credit.IsNegative() {
		return decimal.Zero
	}
	return credit
}

func spouseQualifies(tp domain.TaxpayerInput, ceiling decimal.Decimal) bool {
	return tp.HasSpouse && tp.SpouseIncome.LessThanOrEqual(ceiling) && !tp.PaysSpouseSalary()
}

func medicalDeduction(expenses, floor, ceiling decimal.Decimal) decimal.Decimal {
	d := expenses.Sub(floor)
	if d.IsNegative() {
		return decimal.Zero
	}
	if ceiling.IsPositive() && d.GreaterThan(ceiling) {
		return ceiling
	}
	return d
}
