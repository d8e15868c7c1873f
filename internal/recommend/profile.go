package recommend

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tracker"
	"github.com/shopspring/decimal"
)

var (
	sideExpenseTarget  = decimal.NewFromFloat(0.20)
	partTimeWatchFloor = decimal.NewFromInt(1000000)
	lifePremiumForMax  = decimal.NewFromInt(80000)
)

// ProfileRecommender derives actions from the taxpayer profile directly:
// age, income, employment category and side income.
type ProfileRecommender struct {
	Engine      *calculation.CalculationEngine
	Tracker     *tracker.Tracker
	Assumptions calculation.SavingsAssumptions
	Logger      calculation.Logger
}

// NewProfileRecommender creates a recommender over a calculation engine.
func NewProfileRecommender(engine *calculation.CalculationEngine, limits map[domain.DeductionCategory]domain.LimitSpec) *ProfileRecommender {
	return &ProfileRecommender{
		Engine:      engine,
		Tracker:     tracker.NewTracker(limits),
		Assumptions: calculation.DefaultSavingsAssumptions(),
		Logger:      calculation.NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (p *ProfileRecommender) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	p.Logger = l
	p.Tracker.SetLogger(l)
}

// Recommend returns the profile-driven recommendations by descending priority.
func (p *ProfileRecommender) Recommend(profile *domain.Profile, result *domain.TaxResult) []domain.Recommendation {
	tp := profile.Taxpayer
	savings := p.Engine.EstimateSavings(profile, result, p.Assumptions)

	var recs []domain.Recommendation
	add := func(r domain.Recommendation, base int) {
		if r.EstimatedAnnualSaving.IsZero() {
			r.EstimatedAnnualSaving = r.Breakdown.Total()
		}
		if !r.EstimatedAnnualSaving.IsPositive() {
			p.Logger.Debugf("profile recommendation %s has no saving", r.ID)
			return
		}
		r.Source = domain.SourceProfile
		r.PriorityScore = Priority(base, r.EstimatedAnnualSaving, r.Difficulty, r.CashflowImpact)
		recs = append(recs, r)
	}

	if tp.Age < p.Assumptions.IDeCoMaxAge {
		add(domain.Recommendation{
			ID:                    "profile_ideco",
			Category:              domain.DeductionIDeCo,
			Kind:                  domain.KindRetirementAccount,
			Title:                 "Contribute the full iDeCo allowance",
			Description:           fmt.Sprintf("Contributions up to %s a year are fully deductible.", domain.FormatYen(p.Assumptions.IDeCoCeiling(tp.EmploymentCategory))),
			Breakdown:             p.split(savings.IDeCo.Contribution, result),
			Difficulty:            1,
			CashflowImpact:        2,
			Warnings:              []string{"Funds are locked until age 60."},
			Action:                fmt.Sprintf("increase_deduction:category=%s,amount=%s", domain.DeductionIDeCo, savings.IDeCo.Contribution),
		}, 90)
	}

	add(domain.Recommendation{
		ID:                    "profile_nisa",
		Kind:                  domain.KindInvestmentAccount,
		Title:                 "Invest through NISA",
		Description:           fmt.Sprintf("Gains on %s a year are tax free.", domain.FormatYen(p.Assumptions.NISAAnnual)),
		Breakdown:             domain.SavingBreakdown{Increase: p.Assumptions.NISAAnnual, IncomeTax: savings.NISA.AnnualSaving},
		EstimatedAnnualSaving: savings.NISA.AnnualSaving,
		Difficulty:            1,
		CashflowImpact:        2,
		Warnings:              []string{"Estimate assumes a 5% yearly return."},
	}, 70)

	if profile.Deductions.Get(domain.DeductionLifeInsurance).LessThan(lifePremiumForMax) {
		add(domain.Recommendation{
			ID:                    "profile_life_insurance",
			Category:              domain.DeductionLifeInsurance,
			Kind:                  domain.KindInsurance,
			Title:                 "Use the life insurance deduction",
			Description:           "Premiums of about ¥80,000 per category reach the deduction cap.",
			Breakdown:             p.split(savings.LifeInsurance.Contribution, result),
			Difficulty:            2,
			CashflowImpact:        2,
			Action:                fmt.Sprintf("set_deduction:category=%s,amount=%s", domain.DeductionLifeInsurance, lifePremiumForMax),
		}, 60)
	}

	if tp.SideIncome.IsPositive() {
		target := tp.SideIncome.Mul(sideExpenseTarget).Floor()
		if tp.SideExpenses.LessThan(target) {
			potential := target.Sub(tp.SideExpenses)
			add(domain.Recommendation{
				ID:                    "profile_side_job_expenses",
				Kind:                  domain.KindBusiness,
				Title:                 "Book side-job expenses",
				Description:           fmt.Sprintf("Expenses are under 20%% of side income; %s more is typical.", domain.FormatYen(potential)),
				Breakdown:             p.split(potential, result),
				Difficulty:            2,
				CashflowImpact:        0,
				Warnings:              []string{"Only genuine business expenses with receipts qualify."},
				Action:                fmt.Sprintf("add_expense:amount=%s", potential),
			}, 75)
		}
	}

	if tp.EmploymentCategory.IsBusinessOwner() {
		if ceiling, ok := p.Tracker.Limit(domain.DeductionSmallBusinessMutualAid, tp); ok {
			room := decimal.Max(ceiling.Sub(profile.Deductions.Get(domain.DeductionSmallBusinessMutualAid)), decimal.Zero)
			add(domain.Recommendation{
				ID:                    "profile_small_business_mutual_aid",
				Category:              domain.DeductionSmallBusinessMutualAid,
				Kind:                  domain.KindRetirementAccount,
				Title:                 "Join small business mutual aid",
				Description:           fmt.Sprintf("Premiums up to %s a year are fully deductible.", domain.FormatYen(ceiling)),
				Breakdown:             p.split(room, result),
				Difficulty:            1,
				CashflowImpact:        3,
				Action:                fmt.Sprintf("increase_deduction:category=%s,amount=%s", domain.DeductionSmallBusinessMutualAid, room),
			}, 90)
		}
	}

	if tp.EmploymentCategory == domain.EmploymentPartTime {
		if r, ok := p.thresholdWatch(profile, result); ok {
			add(r, 80)
		}
	}

	SortByPriority(recs)
	return recs
}

// thresholdWatch warns a part-timer approaching the employee insurance
// threshold. The saving is the premium load that crossing it would add.
func (p *ProfileRecommender) thresholdWatch(profile *domain.Profile, result *domain.TaxResult) (domain.Recommendation, bool) {
	tp := profile.Taxpayer
	threshold := p.Engine.Rules.SocialInsurance.PartTimeThreshold
	if tp.GrossAnnualIncome.LessThan(partTimeWatchFloor) || tp.GrossAnnualIncome.GreaterThanOrEqual(threshold) {
		return domain.Recommendation{}, false
	}
	region, _ := domain.LookupRegion(p.Engine.Regions, result.Region)
	premiums, err := p.Engine.Insurance.Calculate(calculation.SocialInsuranceInput{
		MonthlySalary:  threshold.Div(decimal.NewFromInt(12)),
		AnnualEarnings: threshold,
		Age:            tp.Age,
		Category:       domain.EmploymentSalaried,
		Region:         region,
	})
	if err != nil {
		p.Logger.Warnf("threshold premiums: %v", err)
		return domain.Recommendation{}, false
	}
	headroom := threshold.Sub(tp.GrossAnnualIncome)
	return domain.Recommendation{
		ID:                    "profile_income_threshold",
		Kind:                  domain.KindIncomeManagement,
		Title:                 fmt.Sprintf("Keep yearly earnings under %s", domain.FormatYen(threshold)),
		Description:           fmt.Sprintf("%s of headroom before employee insurance premiums start.", domain.FormatYen(headroom)),
		Breakdown:             domain.SavingBreakdown{Increase: headroom, Insurance: premiums.Total},
		EstimatedAnnualSaving: premiums.Total,
		Difficulty:            1,
		CashflowImpact:        0,
		Warnings:              []string{"Employee insurance also brings pension and sick-pay cover."},
	}, true
}

// split attributes a deduction's saving to income and resident tax.
func (p *ProfileRecommender) split(amount decimal.Decimal, result *domain.TaxResult) domain.SavingBreakdown {
	if !result.TaxableIncome.IsPositive() {
		return domain.SavingBreakdown{Increase: amount}
	}
	region, _ := domain.LookupRegion(p.Engine.Regions, result.Region)
	return domain.SavingBreakdown{
		Increase:    amount,
		IncomeTax:   amount.Mul(result.MarginalRate).Mul(p.Engine.Rules.IncomeTax.SurtaxMultiplier).Round(0),
		ResidentTax: amount.Mul(region.ResidentRate()).Round(0),
	}
}
