package domain

import (
	"github.com/shopspring/decimal"
)

// DeductionCategory names an annual deduction or contribution the taxpayer controls.
type DeductionCategory string

const (
	DeductionSmallBusinessMutualAid    DeductionCategory = "small_business_mutual_aid"    // 小規模企業共済
	DeductionManagementSafetyMutualAid DeductionCategory = "management_safety_mutual_aid" // 経営セーフティ共済
	DeductionIDeCo                     DeductionCategory = "ideco"
	DeductionLifeInsurance             DeductionCategory = "life_insurance"
	DeductionEarthquakeInsurance       DeductionCategory = "earthquake_insurance"
	DeductionMedicalExpense            DeductionCategory = "medical_expense"
	DeductionHometownDonation          DeductionCategory = "hometown_donation" // ふるさと納税
	DeductionBlueFiling                DeductionCategory = "blue_filing_deduction"
)

// DeductionCategories lists every category in the order reports show them.
var DeductionCategories = []DeductionCategory{
	DeductionBlueFiling,
	DeductionSmallBusinessMutualAid,
	DeductionManagementSafetyMutualAid,
	DeductionIDeCo,
	DeductionLifeInsurance,
	DeductionEarthquakeInsurance,
	DeductionMedicalExpense,
	DeductionHometownDonation,
}

var deductionLabels = map[DeductionCategory]string{
	DeductionSmallBusinessMutualAid:    "Small business mutual aid",
	DeductionManagementSafetyMutualAid: "Management safety mutual aid",
	DeductionIDeCo:                     "iDeCo",
	DeductionLifeInsurance:             "Life insurance",
	DeductionEarthquakeInsurance:       "Earthquake insurance",
	DeductionMedicalExpense:            "Medical expenses",
	DeductionHometownDonation:          "Furusato nozei",
	DeductionBlueFiling:                "Blue filing deduction",
}

// Label is a human readable name.
func (c DeductionCategory) Label() string {
	if l, ok := deductionLabels[c]; ok {
		return l
	}
	return string(c)
}

// Known reports whether c is a recognised category.
func (c DeductionCategory) Known() bool {
	_, ok := deductionLabels[c]
	return ok
}

// DeductionInputs maps a category to the annual amount already used.
type DeductionInputs map[DeductionCategory]decimal.Decimal

// Get returns the amount for a category, zero when absent.
func (d DeductionInputs) Get(c DeductionCategory) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d[c]
}

// Clone copies the map.
func (d DeductionInputs) Clone() DeductionInputs {
	out := make(DeductionInputs, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// UsageClass grades how much of a deduction limit is used.
type UsageClass string

const (
	UsageUnused    UsageClass = "unused"
	UsageDanger    UsageClass = "danger"
	UsageWarning   UsageClass = "warning"
	UsageGood      UsageClass = "good"
	UsageExcellent UsageClass = "excellent"
)

// DeductionStatus is the tracker output for one category. Limit and Remaining
// are nil for categories whose ceiling depends on income.
type DeductionStatus struct {
	Category   DeductionCategory `json:"category"`
	Label      string            `json:"label"`
	Used       decimal.Decimal   `json:"used"`
	Limit      *decimal.Decimal  `json:"limit"`
	Remaining  *decimal.Decimal  `json:"remaining"`
	UsageRatio decimal.Decimal   `json:"usage_ratio"`
	UsageClass UsageClass        `json:"usage_class"`
	Message    string            `json:"message"`
}
