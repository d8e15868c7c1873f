package calculation

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates one tax calculation. It holds only
// read-only tables and is safe to share between goroutines once configured.
type CalculationEngine struct {
	Rules       domain.TaxRules
	Regions     map[string]domain.RegionProfile
	IncomeTax   *IncomeTaxCalculator
	ResidentTax *ResidentTaxCalculator
	Insurance   *SocialInsuranceCalculator
	Furusato    *FurusatoSolver
	Logger      Logger
}

// NewCalculationEngine creates an engine with the built-in 2024 rules and
// region table.
func NewCalculationEngine() *CalculationEngine {
	engine, err := NewCalculationEngineWithConfig(domain.DefaultTaxRules2024(), domain.DefaultRegions())
	if err != nil {
		// built-in tables are covered by tests
		panic(err)
	}
	return engine
}

// NewCalculationEngineWithConfig creates an engine from loaded rules. An
// empty region table falls back to the built-in one.
func NewCalculationEngineWithConfig(rules domain.TaxRules, regions map[string]domain.RegionProfile) (*CalculationEngine, error) {
	incomeTax, err := NewIncomeTaxCalculator(rules.IncomeTax)
	if err != nil {
		return nil, fmt.Errorf("income tax tables: %w", err)
	}
	residentTax, err := NewResidentTaxCalculator(rules.ResidentTax, rules.IncomeTax)
	if err != nil {
		return nil, fmt.Errorf("resident tax tables: %w", err)
	}
	if len(regions) == 0 {
		regions = domain.DefaultRegions()
	}
	return &CalculationEngine{
		Rules:       rules,
		Regions:     regions,
		IncomeTax:   incomeTax,
		ResidentTax: residentTax,
		Insurance:   NewSocialInsuranceCalculator(rules.SocialInsurance),
		Furusato:    NewFurusatoSolver(rules.ResidentTax, rules.IncomeTax.SurtaxMultiplier),
		Logger:      NopLogger{},
	}, nil
}

// SetLogger sets the logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// yearIncome is the income side of one tax year before deductions.
type yearIncome struct {
	gross            decimal.Decimal // primary income as reported plus side net
	businessOrSalary decimal.Decimal // primary income after salary deduction or expenses
	salaryDeduction  decimal.Decimal
	sideNet          decimal.Decimal
	insurance        domain.SocialInsurance
}

// totalIncome is 合計所得金額: income after the salary deduction, before
// any other deduction.
func (y yearIncome) totalIncome() decimal.Decimal {
	return y.businessOrSalary.Add(y.sideNet)
}

// Calculate validates the profile and computes the full breakdown.
func (ce *CalculationEngine) Calculate(profile *domain.Profile) (*domain.TaxResult, error) {
	if profile == nil {
		return nil, &CalculationError{Operation: "calculate", Message: "profile is nil"}
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	tp := profile.Taxpayer
	region, found := domain.LookupRegion(ce.Regions, tp.Region)
	if !found {
		ce.Logger.Warnf("region %q not found, using %s rates", tp.Region, region.Name)
	}

	current, err := ce.incomeForYear(tp, profile.Deductions, tp.GrossAnnualIncome, tp.Bonus, false, region)
	if err != nil {
		return nil, err
	}

	deductions := ce.IncomeTax.Deductions(ce.deductionContext(profile, current))
	totalDeductions := deductions.Total()
	taxable := nonNegative(current.gross.Sub(totalDeductions))
	incomeTax := ce.IncomeTax.Tax(taxable)
	marginal := ce.IncomeTax.MarginalRate(taxable)
	ce.Logger.Debugf("income tax: gross=%s deductions=%s taxable=%s tax=%s", current.gross, totalDeductions, taxable, incomeTax)

	// Resident tax is assessed on the previous year.
	prior := current
	separatePrior := tp.LastYearIncome.IsPositive() && !tp.LastYearIncome.Equal(tp.GrossAnnualIncome)
	if separatePrior {
		prior, err = ce.incomeForYear(tp, profile.Deductions, tp.LastYearIncome, decimal.Zero, true, region)
		if err != nil {
			return nil, err
		}
	}
	residentDeductions := ce.ResidentTax.Deductions(ce.deductionContext(profile, prior))
	resident := ce.ResidentTax.Assess(prior.gross.Sub(residentDeductions.Total()), prior.totalIncome(), region)

	nextYear := resident
	if separatePrior {
		nextDeductions := ce.ResidentTax.Deductions(ce.deductionContext(profile, current))
		nextYear = ce.ResidentTax.Assess(current.gross.Sub(nextDeductions.Total()), current.totalIncome(), region)
	}

	credit := ce.ResidentTax.FurusatoCredit(profile.Deductions.Get(domain.DeductionHometownDonation))
	adjustedResident := nonNegative(resident.Total().Sub(credit))
	limit := ce.Furusato.Limit(nextYear.IncomePortion(), marginal)
	ce.Logger.Debugf("resident tax: taxable=%s before=%s credit=%s after=%s furusato_limit=%s",
		resident.Taxable, resident.Total(), credit, adjustedResident, limit)

	housing := tp.CompanyHousingMonthly.Mul(twelve)
	net := current.gross.Sub(incomeTax).Sub(adjustedResident).Sub(current.insurance.Total).Sub(housing)

	result := &domain.TaxResult{
		Year:                    ce.Rules.Year,
		Region:                  region.Name,
		EmploymentCategory:      tp.EmploymentCategory,
		GrossIncome:             current.gross,
		BusinessOrSalaryIncome:  current.businessOrSalary,
		SideIncomeNet:           current.sideNet,
		Deductions:              deductions,
		TotalDeductions:         totalDeductions,
		TaxableIncome:           taxable,
		MarginalRate:            marginal,
		IncomeTax:               incomeTax,
		ResidentDeductions:      residentDeductions,
		ResidentTaxableIncome:   resident.Taxable,
		ResidentTaxPrefecture:   resident.Prefecture,
		ResidentTaxCity:         resident.City,
		ResidentTaxFlatLevy:     resident.FlatLevy,
		ResidentTaxBeforeCredit: resident.Total(),
		FurusatoCredit:          credit,
		ResidentTax:             adjustedResident,
		NextYearResidentTax:     nextYear.Total(),
		SocialInsurance:         current.insurance,
		FurusatoLimit:           limit,
		HousingDeduction:        housing,
		NetIncome:               net,
		MonthlyNetIncome:        net.Div(twelve).Round(0),
	}
	if current.gross.IsPositive() {
		result.EffectiveRate = result.TotalBurden().Div(current.gross).Round(4)
	}
	return result, nil
}

// incomeForYear derives primary income and premiums for one year's earnings.
// For business owners the prior year's figure is already business income.
func (ce *CalculationEngine) incomeForYear(tp domain.TaxpayerInput, deductions domain.DeductionInputs, earnings, bonus decimal.Decimal, priorYear bool, region domain.RegionProfile) (yearIncome, error) {
	y := yearIncome{sideNet: nonNegative(tp.SideIncome.Sub(tp.SideExpenses))}

	si := SocialInsuranceInput{
		MonthlySalary:  earnings.Sub(bonus).Div(twelve),
		AnnualBonus:    bonus,
		AnnualEarnings: earnings,
		Age:            tp.Age,
		Category:       tp.EmploymentCategory,
		Region:         region,
	}

	switch tp.EmploymentCategory {
	case domain.EmploymentSelfEmployed, domain.EmploymentFreelance:
		if priorYear {
			y.businessOrSalary = earnings
		} else {
			y.businessOrSalary = ce.BusinessIncome(tp, deductions, earnings)
		}
		y.gross = y.businessOrSalary.Add(y.sideNet)
		si.AssessableIncome = y.gross
	case domain.EmploymentSalaried, domain.EmploymentContract, domain.EmploymentPartTime:
		y.salaryDeduction = ce.IncomeTax.SalaryIncomeDeduction(earnings)
		y.businessOrSalary = nonNegative(earnings.Sub(y.salaryDeduction))
		y.gross = earnings.Add(y.sideNet)
		si.AssessableIncome = y.businessOrSalary.Add(y.sideNet)
	default:
		return y, &CalculationError{
			Operation: "calculate",
			Message:   fmt.Sprintf("unknown employment category %q", tp.EmploymentCategory),
		}
	}

	insurance, err := ce.Insurance.Calculate(si)
	if err != nil {
		return y, err
	}
	y.insurance = insurance
	return y, nil
}

// BusinessIncome is revenue minus expenses, the management safety mutual aid
// premium, and for blue filers the family employee salary and the blue
// filing deduction.
func (ce *CalculationEngine) BusinessIncome(tp domain.TaxpayerInput, deductions domain.DeductionInputs, revenue decimal.Decimal) decimal.Decimal {
	income := revenue.Sub(tp.BusinessExpenses).Sub(deductions.Get(domain.DeductionManagementSafetyMutualAid))
	if tp.IsBlueFiler() {
		income = income.Sub(tp.FamilyEmployeeSalary)
		blue := decimal.Min(deductions.Get(domain.DeductionBlueFiling), ce.Rules.IncomeTax.BlueFilingMax)
		income = income.Sub(decimal.Min(blue, nonNegative(income)))
	}
	return nonNegative(income)
}

func (ce *CalculationEngine) deductionContext(profile *domain.Profile, y yearIncome) DeductionContext {
	return DeductionContext{
		Taxpayer:        profile.Taxpayer,
		Deductions:      profile.Deductions,
		SocialInsurance: y.insurance.Total,
		SalaryDeduction: y.salaryDeduction,
		TotalIncome:     y.totalIncome(),
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
