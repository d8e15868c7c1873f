// Package advisor runs one full advisory pass over a taxpayer profile: the
// tax calculation, deduction usage, both recommenders and the headline
// savings, assembled into a domain.Report.
package advisor

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/recommend"
	"github.com/rgehrsitz/tedori/internal/tracker"
)

// Advisor wires the engines together. Savings assumptions live on the
// profile recommender so the headline figures and its entries agree.
type Advisor struct {
	Engine  *calculation.CalculationEngine
	Tracker *tracker.Tracker
	Catalog *recommend.Engine
	Profile *recommend.ProfileRecommender
	Logger  calculation.Logger

	now func() time.Time
}

// RulesForYear returns the built-in rule set for a tax year.
func RulesForYear(year int) (domain.TaxRules, error) {
	switch year {
	case 0, 2024:
		return domain.DefaultTaxRules2024(), nil
	default:
		return domain.TaxRules{}, fmt.Errorf("no tax rules for %d", year)
	}
}

// New builds an advisor from reference data and a rules year. A nil
// reference set uses the built-in defaults.
func New(ref *domain.ReferenceData, year int) (*Advisor, error) {
	rules, err := RulesForYear(year)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		ref = &domain.ReferenceData{}
	}
	engine, err := calculation.NewCalculationEngineWithConfig(rules, ref.Regions)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculation engine: %w", err)
	}
	return NewWithEngine(engine, ref), nil
}

// NewWithEngine builds an advisor around an existing engine.
func NewWithEngine(engine *calculation.CalculationEngine, ref *domain.ReferenceData) *Advisor {
	if ref == nil {
		ref = &domain.ReferenceData{}
	}
	return &Advisor{
		Engine:  engine,
		Tracker: tracker.NewTracker(ref.Limits),
		Catalog: recommend.NewEngine(ref.Catalog, ref.Limits),
		Profile: recommend.NewProfileRecommender(engine, ref.Limits),
		Logger:  calculation.NopLogger{},
		now:     time.Now,
	}
}

// SetLogger sets the logger on the advisor and every engine it owns; nil
// restores the no-op logger.
func (a *Advisor) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	a.Logger = l
	a.Engine.SetLogger(l)
	a.Tracker.SetLogger(l)
	a.Catalog.SetLogger(l)
	a.Profile.SetLogger(l)
}

// Advise calculates the profile and builds the full report.
func (a *Advisor) Advise(profile *domain.Profile) (*domain.Report, error) {
	if profile == nil {
		return nil, &calculation.CalculationError{Operation: "advise", Message: "profile is nil"}
	}

	result, err := a.Engine.Calculate(profile)
	if err != nil {
		return nil, err
	}
	a.Logger.Infof("calculated %s profile in %s: net %s", profile.Taxpayer.EmploymentCategory, result.Region, result.NetIncome)

	report := &domain.Report{
		GeneratedAt:            a.now(),
		Profile:                *profile.Clone(),
		Result:                 result,
		DeductionStatuses:      a.Tracker.Track(profile),
		CatalogRecommendations: a.Catalog.Recommend(profile, result),
		ProfileRecommendations: a.Profile.Recommend(profile, result),
		Savings:                a.Engine.EstimateSavings(profile, result, a.Profile.Assumptions),
	}
	report.Assumptions = Assumptions(a.Engine, result, a.Profile.Assumptions)

	a.Logger.Debugf("report: %d deduction statuses, %d catalog and %d profile recommendations",
		len(report.DeductionStatuses), len(report.CatalogRecommendations), len(report.ProfileRecommendations))
	return report, nil
}

// Assumptions lists the modelling choices behind a result, for display
// next to it.
func Assumptions(engine *calculation.CalculationEngine, result *domain.TaxResult, s calculation.SavingsAssumptions) []string {
	region, found := domain.LookupRegion(engine.Regions, result.Region)
	regionNote := fmt.Sprintf("Region %s: health %s, care %s, NHI %s, flat levy %s",
		region.Name,
		domain.FormatRate(region.HealthInsuranceRate),
		domain.FormatRate(region.CareInsuranceRate),
		domain.FormatRate(region.NHIRate),
		domain.FormatYen(region.FlatLevy))
	if !found {
		regionNote += " (fallback)"
	}

	return []string{
		fmt.Sprintf("Tax rules: %d, held constant", engine.Rules.Year),
		regionNote,
		"Resident tax is assessed on the previous year's income",
		"Hometown donations use the one-stop special exception",
		"Company housing is deducted from take-home after tax",
		fmt.Sprintf("NISA: %s a year at %s expected return", domain.FormatYen(s.NISAAnnual), domain.FormatRate(s.NISAReturn)),
		fmt.Sprintf("Savings use a combined marginal rate of %s", domain.FormatRate(engine.CombinedMarginalRate(result))),
	}
}
