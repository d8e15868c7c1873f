package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter is one profile input swept across a range.
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"min_value"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"max_value"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"base_value"`
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the calculation at one swept value.
type SensitivityPoint struct {
	Value           decimal.Decimal `json:"value"`
	NetIncome       decimal.Decimal `json:"net_income"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	ResidentTax     decimal.Decimal `json:"resident_tax"`
	SocialInsurance decimal.Decimal `json:"social_insurance"`
	EffectiveRate   decimal.Decimal `json:"effective_rate"`
	MarginalRate    decimal.Decimal `json:"marginal_rate"`
	// KeepRate is the share of the step from the previous point that
	// reached take-home; zero on the first point.
	KeepRate decimal.Decimal `json:"keep_rate"`
}

// SensitivityAnalysis is a one-parameter sweep around a base profile.
type SensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	Base      SensitivityPoint     `json:"base"`
	Points    []SensitivityPoint   `json:"points"`
	Summary   SensitivitySummary   `json:"summary"`
}

// SensitivitySummary condenses a sweep.
type SensitivitySummary struct {
	AverageKeepRate  decimal.Decimal   `json:"average_keep_rate"`
	LowestKeepRate   decimal.Decimal   `json:"lowest_keep_rate"`
	LowestKeepRateAt decimal.Decimal   `json:"lowest_keep_rate_at"`
	Cliffs           []decimal.Decimal `json:"cliffs,omitempty"`
	Notes            []string          `json:"notes"`
}

// SensitivityParameters lists the profile inputs a sweep can vary.
func SensitivityParameters() []SensitivityParameter {
	return []SensitivityParameter{
		{Name: "gross_income", Description: "Salary, or revenue for business owners"},
		{Name: "side_income", Description: "Side-job income"},
		{Name: "ideco", Description: "iDeCo contributions"},
	}
}

// LookupSensitivityParameter returns the named parameter description.
func LookupSensitivityParameter(name string) (SensitivityParameter, bool) {
	for _, p := range SensitivityParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}
