// Package tracker compares each controllable deduction's usage against its
// yearly ceiling and grades how much of the allowance is being used.
package tracker

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Usage thresholds for Classify.
var (
	GoodRatio    = decimal.NewFromFloat(0.7)
	WarningRatio = decimal.NewFromFloat(0.3)
)

// lifeInsuranceHint is the deduction amount below which the premium hint is shown.
var lifeInsuranceHint = decimal.NewFromInt(80000)

// trackedCategories is the display order. Medical expenses are not a
// contribution the taxpayer plans, so they are left out.
var trackedCategories = []domain.DeductionCategory{
	domain.DeductionBlueFiling,
	domain.DeductionSmallBusinessMutualAid,
	domain.DeductionManagementSafetyMutualAid,
	domain.DeductionIDeCo,
	domain.DeductionLifeInsurance,
	domain.DeductionEarthquakeInsurance,
	domain.DeductionHometownDonation,
}

// businessOnly are the categories that exist only for business owners.
var businessOnly = map[domain.DeductionCategory]bool{
	domain.DeductionBlueFiling:                true,
	domain.DeductionSmallBusinessMutualAid:    true,
	domain.DeductionManagementSafetyMutualAid: true,
}

// DefaultLimits returns the statutory ceilings used when the limits feed is
// missing or incomplete.
func DefaultLimits() map[domain.DeductionCategory]domain.LimitSpec {
	amount := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return map[domain.DeductionCategory]domain.LimitSpec{
		domain.DeductionBlueFiling:                {Max: amount(650000)},
		domain.DeductionSmallBusinessMutualAid:    {YearlyMax: amount(840000)},
		domain.DeductionManagementSafetyMutualAid: {YearlyMax: amount(2400000)},
		domain.DeductionIDeCo: {
			YearlyMax: amount(276000),
			Categories: map[domain.EmploymentCategory]domain.LimitSpec{
				domain.EmploymentSelfEmployed: {YearlyMax: amount(816000)},
				domain.EmploymentFreelance:    {YearlyMax: amount(816000)},
			},
		},
		domain.DeductionLifeInsurance:       {TotalMax: amount(120000)},
		domain.DeductionEarthquakeInsurance: {Max: amount(50000)},
	}
}

// Tracker grades deduction usage against the limits feed.
type Tracker struct {
	Limits   map[domain.DeductionCategory]domain.LimitSpec
	defaults map[domain.DeductionCategory]domain.LimitSpec
	Logger   calculation.Logger
}

// NewTracker creates a tracker over a limits feed. A nil or partial feed is
// completed from DefaultLimits.
func NewTracker(limits map[domain.DeductionCategory]domain.LimitSpec) *Tracker {
	return &Tracker{
		Limits:   limits,
		defaults: DefaultLimits(),
		Logger:   calculation.NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (t *Tracker) SetLogger(l calculation.Logger) {
	if l == nil {
		t.Logger = calculation.NopLogger{}
		return
	}
	t.Logger = l
}

// Classify grades used against limit. A zero limit with any usage counts as
// fully used.
func Classify(used, limit decimal.Decimal) domain.UsageClass {
	if !used.IsPositive() {
		return domain.UsageUnused
	}
	if !limit.IsPositive() {
		return domain.UsageExcellent
	}
	ratio := used.Div(limit)
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return domain.UsageExcellent
	case ratio.GreaterThanOrEqual(GoodRatio):
		return domain.UsageGood
	case ratio.GreaterThanOrEqual(WarningRatio):
		return domain.UsageWarning
	default:
		return domain.UsageDanger
	}
}

// Track returns one status per deduction that applies to the taxpayer.
func (t *Tracker) Track(profile *domain.Profile) []domain.DeductionStatus {
	owner := profile.Taxpayer.EmploymentCategory.IsBusinessOwner()
	categories := lo.Filter(trackedCategories, func(c domain.DeductionCategory, _ int) bool {
		return owner || !businessOnly[c]
	})
	return lo.Map(categories, func(c domain.DeductionCategory, _ int) domain.DeductionStatus {
		return t.Status(c, profile)
	})
}

// Status grades one category.
func (t *Tracker) Status(category domain.DeductionCategory, profile *domain.Profile) domain.DeductionStatus {
	used := profile.Deductions.Get(category)
	status := domain.DeductionStatus{
		Category: category,
		Label:    category.Label(),
		Used:     used,
	}

	if category == domain.DeductionHometownDonation {
		// The ceiling depends on income; only usage is graded here.
		if used.IsPositive() {
			status.UsageClass = domain.UsageGood
			status.Message = fmt.Sprintf("In use (%s donated)", domain.FormatYen(used))
		} else {
			status.UsageClass = domain.UsageUnused
			status.Message = "Return gifts for an effective cost of ¥2,000"
		}
		return status
	}

	limit, _ := t.Limit(category, profile.Taxpayer)
	remaining := decimal.Max(limit.Sub(used), decimal.Zero)
	status.Limit = &limit
	status.Remaining = &remaining
	status.UsageClass = Classify(used, limit)
	if limit.IsPositive() {
		status.UsageRatio = used.Div(limit).Round(4)
	}
	status.Message = t.message(category, profile.Taxpayer, used, limit, remaining)
	return status
}

// Limit resolves the yearly ceiling for a category from the feed, then the
// defaults. The bool is false for categories without a fixed ceiling.
func (t *Tracker) Limit(category domain.DeductionCategory, tp domain.TaxpayerInput) (decimal.Decimal, bool) {
	switch {
	case category == domain.DeductionHometownDonation:
		return decimal.Zero, false
	case category == domain.DeductionBlueFiling && !tp.IsBlueFiler():
		return decimal.Zero, true
	}
	if spec, ok := t.Limits[category]; ok {
		if v, ok := spec.Resolve(tp.EmploymentCategory); ok {
			return v, true
		}
		t.Logger.Debugf("limits feed entry for %s has no usable value, using default", category)
	} else {
		t.Logger.Debugf("limits feed has no entry for %s, using default", category)
	}
	return t.defaults[category].Resolve(tp.EmploymentCategory)
}

func (t *Tracker) message(category domain.DeductionCategory, tp domain.TaxpayerInput, used, limit, remaining decimal.Decimal) string {
	switch {
	case category == domain.DeductionBlueFiling && !tp.IsBlueFiler():
		return "Switch to blue filing to unlock up to ¥650,000"
	case category == domain.DeductionManagementSafetyMutualAid && used.IsZero():
		return "Unused: a large saving opportunity"
	case category == domain.DeductionLifeInsurance && used.LessThan(lifeInsuranceHint):
		return "Reaching the maximum needs about ¥240,000 of yearly premiums"
	case remaining.IsPositive():
		return fmt.Sprintf("%s of headroom left", domain.FormatYen(remaining))
	default:
		return "Fully used"
	}
}
