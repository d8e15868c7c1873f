package domain

import (
	"github.com/shopspring/decimal"
)

// RecommendationKind groups actions that compete for the same money.
type RecommendationKind string

const (
	KindRetirementAccount RecommendationKind = "retirement_account"
	KindInvestmentAccount RecommendationKind = "investment_account"
	KindInsurance         RecommendationKind = "insurance"
	KindBusiness          RecommendationKind = "business"
	KindDonation          RecommendationKind = "donation"
	KindIncomeManagement  RecommendationKind = "income_management"
	KindOther             RecommendationKind = "other"
)

// RecommendationSource tells which recommender produced an entry.
type RecommendationSource string

const (
	SourceCatalog RecommendationSource = "catalog"
	SourceProfile RecommendationSource = "profile"
)

// SavingFormula selects how the catalog engine prices an entry.
type SavingFormula string

const (
	FormulaDeductionHeadroom SavingFormula = "deduction_headroom"
	FormulaSpouseSalary      SavingFormula = "spouse_salary"
	FormulaHometownDonation  SavingFormula = "hometown_donation"
	FormulaFixedExpense      SavingFormula = "fixed_expense"
	FormulaBlueUpgrade       SavingFormula = "blue_upgrade"
	FormulaExample           SavingFormula = "example"
)

// SavingBreakdown splits an estimated saving by where it comes from.
type SavingBreakdown struct {
	Increase    decimal.Decimal `yaml:"increase_amount" json:"increase_amount"`
	IncomeTax   decimal.Decimal `yaml:"income_tax_saving" json:"income_tax_saving"`
	ResidentTax decimal.Decimal `yaml:"resident_tax_saving" json:"resident_tax_saving"`
	Insurance   decimal.Decimal `yaml:"insurance_saving" json:"insurance_saving"`
}

// Total sums the three saving components.
func (s SavingBreakdown) Total() decimal.Decimal {
	return s.IncomeTax.Add(s.ResidentTax).Add(s.Insurance)
}

// CatalogEntry is one candidate action from the tips catalog.
type CatalogEntry struct {
	ID                   string             `yaml:"id" json:"id"`
	Title                string             `yaml:"title" json:"title"`
	Description          string             `yaml:"description" json:"description"`
	Kind                 RecommendationKind `yaml:"kind" json:"kind"`
	Formula              SavingFormula      `yaml:"formula" json:"formula"`
	TargetDeduction      DeductionCategory  `yaml:"target_deduction,omitempty" json:"target_deduction,omitempty"`
	FixedAmount          decimal.Decimal    `yaml:"fixed_amount,omitempty" json:"fixed_amount,omitempty"`
	ForfeitedDeduction   decimal.Decimal    `yaml:"forfeited_deduction,omitempty" json:"forfeited_deduction,omitempty"`
	ReducesInsuranceBase bool               `yaml:"reduces_insurance_base" json:"reduces_insurance_base"`
	Conditions           CatalogConditions  `yaml:"conditions" json:"conditions"`
	Priority             int                `yaml:"priority" json:"priority"`
	Difficulty           int                `yaml:"difficulty" json:"difficulty"`
	CashflowImpact       int                `yaml:"cashflow_impact" json:"cashflow_impact"`
	SavingExample        *SavingBreakdown   `yaml:"saving_example,omitempty" json:"saving_example,omitempty"`
	Steps                []string           `yaml:"steps,omitempty" json:"steps,omitempty"`
	Warnings             []string           `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// CatalogConditions are the applicability predicates of a catalog entry.
type CatalogConditions struct {
	MinIncome            decimal.Decimal      `yaml:"min_income" json:"min_income"`
	RequiresSpouse       bool                 `yaml:"requires_spouse" json:"requires_spouse"`
	RequiresBlueFiling   bool                 `yaml:"requires_blue_filing" json:"requires_blue_filing"`
	EmploymentCategories []EmploymentCategory `yaml:"employment_categories,omitempty" json:"employment_categories,omitempty"`
}

// Recommendation is a priced, scored tax-saving action.
type Recommendation struct {
	ID                    string               `json:"id"`
	Category              DeductionCategory    `json:"category,omitempty"`
	Kind                  RecommendationKind   `json:"kind"`
	Source                RecommendationSource `json:"source"`
	Title                 string               `json:"title"`
	Description           string               `json:"description"`
	Breakdown             SavingBreakdown      `json:"breakdown"`
	EstimatedAnnualSaving decimal.Decimal      `json:"estimated_annual_saving"`
	PriorityScore         decimal.Decimal      `json:"priority_score"`
	Difficulty            int                  `json:"difficulty"`
	CashflowImpact        int                  `json:"cashflow_impact"`
	Steps                 []string             `json:"steps,omitempty"`
	Warnings              []string             `json:"warnings,omitempty"`
	// Action is a what-if transform spec that carries the recommendation
	// out, empty when it cannot be expressed as a profile change.
	Action string `json:"action,omitempty"`
}

// PriorityLabel buckets the score for display.
func (r Recommendation) PriorityLabel() string {
	switch {
	case r.PriorityScore.GreaterThanOrEqual(decimal.NewFromInt(95)):
		return "top"
	case r.PriorityScore.GreaterThanOrEqual(decimal.NewFromInt(85)):
		return "high"
	case r.PriorityScore.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return "medium"
	default:
		return "low"
	}
}

// CashflowLabel describes the up-front money an action ties up.
func (r Recommendation) CashflowLabel() string {
	switch {
	case r.CashflowImpact >= 3:
		return "large outlay"
	case r.CashflowImpact == 2:
		return "moderate outlay"
	case r.CashflowImpact == 1:
		return "small outlay"
	default:
		return "none"
	}
}
