// Package recommend prices and ranks tax-saving actions for a calculated
// profile. Two recommenders exist: Engine works from the tips catalog,
// ProfileRecommender derives actions from the profile alone.
package recommend

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tracker"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultBasePriority applies to catalog entries that carry none.
const DefaultBasePriority = 50

var (
	tenThousand = decimal.NewFromInt(10000)
	half        = decimal.NewFromFloat(0.5)
)

// Engine is the catalog-driven recommender.
type Engine struct {
	Catalog []domain.CatalogEntry
	Tracker *tracker.Tracker

	// ResidentRate is the flat resident tax rate added to the marginal rate.
	ResidentRate decimal.Decimal
	// InsuranceRate approximates the national health insurance saved per yen
	// removed from the assessment base.
	InsuranceRate      decimal.Decimal
	DonationReturnRate decimal.Decimal
	DonationSelfPay    decimal.Decimal
	BlueFilingMax      decimal.Decimal

	Logger calculation.Logger
}

// NewEngine creates a catalog engine. Limits may be nil.
func NewEngine(catalog []domain.CatalogEntry, limits map[domain.DeductionCategory]domain.LimitSpec) *Engine {
	return &Engine{
		Catalog:            catalog,
		Tracker:            tracker.NewTracker(limits),
		ResidentRate:       decimal.NewFromFloat(0.10),
		InsuranceRate:      decimal.NewFromFloat(0.033),
		DonationReturnRate: decimal.NewFromFloat(0.30),
		DonationSelfPay:    decimal.NewFromInt(2000),
		BlueFilingMax:      decimal.NewFromInt(650000),
		Logger:             calculation.NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	e.Logger = l
	e.Tracker.SetLogger(l)
}

// Recommend filters the catalog, prices each entry and returns them by
// descending priority. Catalog order breaks ties.
func (e *Engine) Recommend(profile *domain.Profile, result *domain.TaxResult) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, entry := range e.Catalog {
		if !e.Applicable(entry, profile, result) {
			e.Logger.Debugf("catalog entry %s not applicable", entry.ID)
			continue
		}
		saving := e.Price(entry, profile, result)
		total := saving.Total()
		if !total.IsPositive() {
			e.Logger.Debugf("catalog entry %s has no saving", entry.ID)
			continue
		}
		base := entry.Priority
		if base == 0 {
			base = DefaultBasePriority
		}
		recs = append(recs, domain.Recommendation{
			ID:                    entry.ID,
			Category:              entry.TargetDeduction,
			Kind:                  entry.Kind,
			Source:                domain.SourceCatalog,
			Title:                 entry.Title,
			Description:           entry.Description,
			Breakdown:             saving,
			EstimatedAnnualSaving: total,
			PriorityScore:         Priority(base, total, entry.Difficulty, entry.CashflowImpact),
			Difficulty:            entry.Difficulty,
			CashflowImpact:        entry.CashflowImpact,
			Steps:                 entry.Steps,
			Warnings:              entry.Warnings,
			Action:                e.action(entry, profile, saving),
		})
	}
	SortByPriority(recs)
	return recs
}

// Applicable checks the entry's conditions and whether its target deduction
// is already at its ceiling.
func (e *Engine) Applicable(entry domain.CatalogEntry, profile *domain.Profile, result *domain.TaxResult) bool {
	tp := profile.Taxpayer
	c := entry.Conditions
	if c.MinIncome.IsPositive() && result.BusinessOrSalaryIncome.LessThan(c.MinIncome) {
		return false
	}
	if c.RequiresSpouse && !tp.HasSpouse {
		return false
	}
	if c.RequiresBlueFiling && !tp.IsBlueFiler() {
		return false
	}
	if len(c.EmploymentCategories) > 0 && !lo.Contains(c.EmploymentCategories, tp.EmploymentCategory) {
		return false
	}
	if entry.TargetDeduction != "" {
		if ceiling, ok := e.ceiling(entry.TargetDeduction, tp); ok {
			if profile.Deductions.Get(entry.TargetDeduction).GreaterThanOrEqual(ceiling) {
				return false
			}
		}
	}
	return true
}

// Price estimates the yearly saving of one entry.
func (e *Engine) Price(entry domain.CatalogEntry, profile *domain.Profile, result *domain.TaxResult) domain.SavingBreakdown {
	tp := profile.Taxpayer
	used := profile.Deductions.Get(entry.TargetDeduction)
	insurance := decimal.Zero
	if entry.ReducesInsuranceBase && result.SocialInsurance.NationalScheme {
		insurance = e.InsuranceRate
	}

	switch entry.Formula {
	case domain.FormulaDeductionHeadroom:
		ceiling, ok := e.ceiling(entry.TargetDeduction, tp)
		if !ok {
			return domain.SavingBreakdown{}
		}
		return e.rated(ceiling.Sub(used), ceiling.Sub(used), result.MarginalRate, insurance)

	case domain.FormulaSpouseSalary:
		if !tp.HasSpouse || !tp.IsBlueFiler() || tp.FamilyEmployeeSalary.IsPositive() {
			return domain.SavingBreakdown{}
		}
		net := entry.FixedAmount.Sub(entry.ForfeitedDeduction)
		return e.rated(entry.FixedAmount, net, result.MarginalRate, insurance)

	case domain.FormulaHometownDonation:
		if used.IsPositive() {
			return domain.SavingBreakdown{}
		}
		benefit := result.FurusatoLimit.Mul(e.DonationReturnRate).Sub(e.DonationSelfPay)
		if !benefit.IsPositive() {
			return domain.SavingBreakdown{}
		}
		return domain.SavingBreakdown{
			Increase:    result.FurusatoLimit,
			IncomeTax:   benefit.Mul(half).Round(0),
			ResidentTax: benefit.Mul(half).Round(0),
			Insurance:   decimal.Zero,
		}

	case domain.FormulaFixedExpense:
		return e.rated(entry.FixedAmount, entry.FixedAmount, result.MarginalRate, insurance)

	case domain.FormulaBlueUpgrade:
		increase := e.BlueFilingMax.Sub(profile.Deductions.Get(domain.DeductionBlueFiling))
		return e.rated(increase, increase, result.MarginalRate, insurance)

	default:
		if entry.SavingExample != nil {
			return *entry.SavingExample
		}
		return domain.SavingBreakdown{}
	}
}

// rated prices base at the marginal, resident and insurance rates. Increase
// is reported separately because a net benefit can differ from the outlay.
func (e *Engine) rated(increase, base, marginal, insurance decimal.Decimal) domain.SavingBreakdown {
	if !base.IsPositive() {
		return domain.SavingBreakdown{}
	}
	return domain.SavingBreakdown{
		Increase:    increase,
		IncomeTax:   base.Mul(marginal).Round(0),
		ResidentTax: base.Mul(e.ResidentRate).Round(0),
		Insurance:   base.Mul(insurance).Round(0),
	}
}

// ceiling is the attainable yearly amount for a deduction. Blue filing is
// attainable by switching, so it does not depend on the current filing type.
func (e *Engine) ceiling(category domain.DeductionCategory, tp domain.TaxpayerInput) (decimal.Decimal, bool) {
	if category == domain.DeductionBlueFiling {
		return e.BlueFilingMax, true
	}
	return e.Tracker.Limit(category, tp)
}

// action is the what-if transform that carries out a priced entry.
func (e *Engine) action(entry domain.CatalogEntry, profile *domain.Profile, saving domain.SavingBreakdown) string {
	switch entry.Formula {
	case domain.FormulaDeductionHeadroom:
		return fmt.Sprintf("increase_deduction:category=%s,amount=%s", entry.TargetDeduction, saving.Increase)
	case domain.FormulaSpouseSalary:
		return fmt.Sprintf("family_salary:annual=%s", entry.FixedAmount)
	case domain.FormulaHometownDonation:
		return fmt.Sprintf("set_deduction:category=%s,amount=%s", domain.DeductionHometownDonation, saving.Increase)
	case domain.FormulaFixedExpense:
		return fmt.Sprintf("add_expense:amount=%s", entry.FixedAmount)
	case domain.FormulaBlueUpgrade:
		if profile.Taxpayer.IsBlueFiler() {
			return fmt.Sprintf("increase_deduction:category=%s,amount=%s", domain.DeductionBlueFiling, saving.Increase)
		}
		return fmt.Sprintf("switch_filing:filing=blue,deduction=%s", e.BlueFilingMax)
	}
	return ""
}

// Priority is base + saving/10,000 - difficulty*5 - cashflow*3.
func Priority(base int, total decimal.Decimal, difficulty, cashflow int) decimal.Decimal {
	return decimal.NewFromInt(int64(base)).
		Add(total.Div(tenThousand)).
		Sub(decimal.NewFromInt(int64(difficulty * 5))).
		Sub(decimal.NewFromInt(int64(cashflow * 3)))
}

// SortByPriority orders recommendations by descending priority, keeping the
// input order for equal scores.
func SortByPriority(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PriorityScore.GreaterThan(recs[j].PriorityScore)
	})
}
