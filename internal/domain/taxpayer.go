package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EmploymentCategory is the closed set of employment types the engine understands.
type EmploymentCategory string

const (
	EmploymentSalaried     EmploymentCategory = "salaried"
	EmploymentContract     EmploymentCategory = "contract"
	EmploymentPartTime     EmploymentCategory = "part_time"
	EmploymentSelfEmployed EmploymentCategory = "self_employed"
	EmploymentFreelance    EmploymentCategory = "freelance"
)

// EmploymentCategories lists every category in display order.
var EmploymentCategories = []EmploymentCategory{
	EmploymentSalaried,
	EmploymentContract,
	EmploymentPartTime,
	EmploymentSelfEmployed,
	EmploymentFreelance,
}

var employmentAliases = map[string]EmploymentCategory{
	"employee":    EmploymentSalaried,
	"kaishain":    EmploymentSalaried,
	"keiyaku":     EmploymentContract,
	"part":        EmploymentPartTime,
	"jigyounushi": EmploymentSelfEmployed,
	"kojin":       EmploymentSelfEmployed,
}

// ParseEmploymentCategory accepts the canonical names, the hyphenated forms
// used by the web forms ("part-time", "self-employed") and a few romaji aliases.
func ParseEmploymentCategory(s string) (EmploymentCategory, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if c, ok := employmentAliases[normalized]; ok {
		return c, nil
	}
	for _, c := range EmploymentCategories {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown employment category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c EmploymentCategory) Valid() bool {
	for _, known := range EmploymentCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsBusinessOwner is true for filers whose primary income is business income.
func (c EmploymentCategory) IsBusinessOwner() bool {
	return c == EmploymentSelfEmployed || c == EmploymentFreelance
}

// UnmarshalText lets YAML and JSON inputs use either spelling of a category.
func (c *EmploymentCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseEmploymentCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FilingType is the self-employed return type (aoiro / shiroiro).
type FilingType string

const (
	FilingBlue  FilingType = "blue"
	FilingWhite FilingType = "white"
)

// TaxpayerInput is the normalized form input for one calculation.
// Money fields hold whole yen.
type TaxpayerInput struct {
	GrossAnnualIncome      decimal.Decimal    `yaml:"gross_annual_income" json:"gross_annual_income"`
	Bonus                  decimal.Decimal    `yaml:"bonus" json:"bonus"`
	Age                    int                `yaml:"age" json:"age"`
	Region                 string             `yaml:"region" json:"region"`
	EmploymentCategory     EmploymentCategory `yaml:"employment_category" json:"employment_category"`
	FilingType             FilingType         `yaml:"filing_type,omitempty" json:"filing_type,omitempty"`
	HasSpouse              bool               `yaml:"has_spouse" json:"has_spouse"`
	SpouseIncome           decimal.Decimal    `yaml:"spouse_income" json:"spouse_income"`
	DependentCount         int                `yaml:"dependent_count" json:"dependent_count"`
	DisabledDependentCount int                `yaml:"disabled_dependent_count" json:"disabled_dependent_count"`
	SideIncome             decimal.Decimal    `yaml:"side_income" json:"side_income"`
	SideExpenses           decimal.Decimal    `yaml:"side_expenses" json:"side_expenses"`
	CompanyHousingMonthly  decimal.Decimal    `yaml:"company_housing_monthly" json:"company_housing_monthly"`
	LastYearIncome         decimal.Decimal    `yaml:"last_year_income" json:"last_year_income"` // salary, or business income for owners

	// Self-employed only
	BusinessExpenses     decimal.Decimal `yaml:"business_expenses" json:"business_expenses"`
	FamilyEmployeeSalary decimal.Decimal `yaml:"family_employee_salary" json:"family_employee_salary"`

	CharitableDonations decimal.Decimal `yaml:"charitable_donations" json:"charitable_donations"`
}

// IsBlueFiler reports whether the blue-return privileges apply.
func (t TaxpayerInput) IsBlueFiler() bool {
	return t.EmploymentCategory.IsBusinessOwner() && t.FilingType == FilingBlue
}

// PaysSpouseSalary is true when the spouse is on the payroll as a dedicated
// family employee, which forfeits the spousal deduction.
func (t TaxpayerInput) PaysSpouseSalary() bool {
	return t.HasSpouse && t.IsBlueFiler() && t.FamilyEmployeeSalary.GreaterThan(decimal.Zero)
}

// PriorYearIncome returns LastYearIncome, or the current-year figure when unset.
func (t TaxpayerInput) PriorYearIncome() decimal.Decimal {
	if t.LastYearIncome.GreaterThan(decimal.Zero) {
		return t.LastYearIncome
	}
	return t.GrossAnnualIncome
}

// Profile bundles everything the engine needs for one request.
type Profile struct {
	Name       string          `yaml:"name,omitempty" json:"name,omitempty"`
	Taxpayer   TaxpayerInput   `yaml:"taxpayer" json:"taxpayer"`
	Deductions DeductionInputs `yaml:"deductions" json:"deductions"`
}

// Clone returns a deep copy so transforms can mutate freely.
func (p *Profile) Clone() *Profile {
	clone := *p
	clone.Deductions = p.Deductions.Clone()
	return &clone
}
