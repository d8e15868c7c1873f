package domain

import (
	"github.com/shopspring/decimal"
)

// SocialInsurance is the employee share of each premium for one year.
type SocialInsurance struct {
	Health     decimal.Decimal `json:"health"`
	Pension    decimal.Decimal `json:"pension"`
	Employment decimal.Decimal `json:"employment"`
	Care       decimal.Decimal `json:"care"`
	Total      decimal.Decimal `json:"total"`

	// NationalScheme is true when the premiums are national health insurance
	// and national pension rather than employee insurance.
	NationalScheme bool `json:"national_scheme"`
}

// DeductionBreakdown itemises the income deductions of one tax.
type DeductionBreakdown struct {
	SocialInsurance     decimal.Decimal `json:"social_insurance"`
	Salary              decimal.Decimal `json:"salary"`
	Basic               decimal.Decimal `json:"basic"`
	Spouse              decimal.Decimal `json:"spouse"`
	Dependents          decimal.Decimal `json:"dependents"`
	DisabledDependents  decimal.Decimal `json:"disabled_dependents"`
	LifeInsurance       decimal.Decimal `json:"life_insurance"`
	EarthquakeInsurance decimal.Decimal `json:"earthquake_insurance"`
	Medical             decimal.Decimal `json:"medical"`
	Donation            decimal.Decimal `json:"donation"`
	SmallBusinessAid    decimal.Decimal `json:"small_business_aid"`
	IDeCo               decimal.Decimal `json:"ideco"`
}

// Total sums every line.
func (d DeductionBreakdown) Total() decimal.Decimal {
	return decimal.Sum(d.SocialInsurance, d.Salary, d.Basic, d.Spouse, d.Dependents,
		d.DisabledDependents, d.LifeInsurance, d.EarthquakeInsurance, d.Medical,
		d.Donation, d.SmallBusinessAid, d.IDeCo)
}

// TaxResult is the full breakdown of one calculation. It is derived from a
// Profile and never updated in place.
type TaxResult struct {
	Year                   int                `json:"year"`
	Region                 string             `json:"region"`
	EmploymentCategory     EmploymentCategory `json:"employment_category"`
	GrossIncome            decimal.Decimal    `json:"gross_income"`
	BusinessOrSalaryIncome decimal.Decimal    `json:"business_or_salary_income"`
	SideIncomeNet          decimal.Decimal    `json:"side_income_net"`
	Deductions             DeductionBreakdown `json:"deductions"`
	TotalDeductions        decimal.Decimal    `json:"total_deductions"`
	TaxableIncome          decimal.Decimal    `json:"taxable_income"`
	MarginalRate           decimal.Decimal    `json:"marginal_rate"`
	IncomeTax              decimal.Decimal    `json:"income_tax"`

	ResidentDeductions      DeductionBreakdown `json:"resident_deductions"`
	ResidentTaxableIncome   decimal.Decimal    `json:"resident_taxable_income"`
	ResidentTaxPrefecture   decimal.Decimal    `json:"resident_tax_prefecture"`
	ResidentTaxCity         decimal.Decimal    `json:"resident_tax_city"`
	ResidentTaxFlatLevy     decimal.Decimal    `json:"resident_tax_flat_levy"`
	ResidentTaxBeforeCredit decimal.Decimal    `json:"resident_tax_before_credit"`
	FurusatoCredit          decimal.Decimal    `json:"furusato_credit"`
	ResidentTax             decimal.Decimal    `json:"resident_tax"`
	NextYearResidentTax     decimal.Decimal    `json:"next_year_resident_tax"`

	SocialInsurance  SocialInsurance `json:"social_insurance"`
	FurusatoLimit    decimal.Decimal `json:"furusato_limit"`
	HousingDeduction decimal.Decimal `json:"housing_deduction"`
	NetIncome        decimal.Decimal `json:"net_income"`
	MonthlyNetIncome decimal.Decimal `json:"monthly_net_income"`
	EffectiveRate    decimal.Decimal `json:"effective_rate"`
}

// TotalBurden is income tax, resident tax and social insurance combined.
func (r *TaxResult) TotalBurden() decimal.Decimal {
	return r.IncomeTax.Add(r.ResidentTax).Add(r.SocialInsurance.Total)
}
