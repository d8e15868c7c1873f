package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is the complete result surface of one advisory run.
type Report struct {
	GeneratedAt            time.Time         `json:"generated_at"`
	Profile                Profile           `json:"profile"`
	Result                 *TaxResult        `json:"result"`
	DeductionStatuses      []DeductionStatus `json:"deduction_statuses"`
	CatalogRecommendations []Recommendation  `json:"catalog_recommendations"`
	ProfileRecommendations []Recommendation  `json:"profile_recommendations"`
	Savings                SavingsSummary    `json:"savings"`
	Assumptions            []string          `json:"assumptions"`
}

// SavingsSummary is the headline "how much could you save" block.
type SavingsSummary struct {
	IDeCo         SavingsLine `json:"ideco"`
	NISA          SavingsLine `json:"nisa"`
	LifeInsurance SavingsLine `json:"life_insurance"`
	Furusato      SavingsLine `json:"furusato"`
}

// Total is the sum of every line's annual saving.
func (s SavingsSummary) Total() decimal.Decimal {
	return decimal.Sum(s.IDeCo.AnnualSaving, s.NISA.AnnualSaving, s.LifeInsurance.AnnualSaving, s.Furusato.AnnualSaving)
}

// SavingsLine is one item of the summary.
type SavingsLine struct {
	Contribution decimal.Decimal `json:"contribution"`
	AnnualSaving decimal.Decimal `json:"annual_saving"`
}
