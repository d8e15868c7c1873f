package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/transform"
	"github.com/shopspring/decimal"
)

// DefaultSensitivitySteps is used when a parameter leaves Steps unset.
const DefaultSensitivitySteps = 11

// SensitivityAnalyzer sweeps one profile input and recalculates at each step
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter recalculates the profile at evenly spaced values of
// the parameter, from MinValue to MaxValue inclusive.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	profile *domain.Profile,
	parameter domain.SensitivityParameter,
) (*domain.SensitivityAnalysis, error) {

	if profile == nil {
		return nil, &CalculationError{Operation: "sensitivity", Message: "profile is nil"}
	}
	known, ok := domain.LookupSensitivityParameter(parameter.Name)
	if !ok {
		return nil, &CalculationError{Operation: "sensitivity", Message: fmt.Sprintf("unknown parameter %q", parameter.Name)}
	}
	if parameter.Description == "" {
		parameter.Description = known.Description
	}
	if parameter.Steps == 0 {
		parameter.Steps = DefaultSensitivitySteps
	}
	if parameter.Steps < 2 {
		return nil, &CalculationError{Operation: "sensitivity", Message: "at least two steps are required"}
	}
	if parameter.MinValue.IsNegative() || !parameter.MaxValue.GreaterThan(parameter.MinValue) {
		return nil, &CalculationError{
			Operation: "sensitivity",
			Message:   fmt.Sprintf("range %s to %s is invalid", parameter.MinValue, parameter.MaxValue),
		}
	}
	parameter.BaseValue = baseValue(profile, parameter.Name)

	base, err := sa.calculationEngine.Calculate(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base profile: %w", err)
	}

	values := sa.generateParameterValues(parameter)
	points := make([]domain.SensitivityPoint, 0, len(values))
	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := sa.modifyProfileParameter(profile, parameter.Name, value)
		if err != nil {
			return nil, err
		}
		result, err := sa.calculationEngine.Calculate(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s=%s: %w", parameter.Name, value, err)
		}

		point := pointFrom(value, result)
		if n := len(points); n > 0 {
			point.KeepRate = keepRate(points[n-1], point)
		}
		points = append(points, point)
	}

	analysis := &domain.SensitivityAnalysis{
		Parameter: parameter,
		Base:      pointFrom(parameter.BaseValue, base),
		Points:    points,
	}
	analysis.Summary = sa.calculateSensitivitySummary(parameter, points)
	return analysis, nil
}

func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, param.Steps)
	span := param.MaxValue.Sub(param.MinValue)
	last := decimal.NewFromInt(int64(param.Steps - 1))

	for i := 0; i < param.Steps; i++ {
		offset := span.Mul(decimal.NewFromInt(int64(i))).Div(last).Floor()
		values = append(values, param.MinValue.Add(offset))
	}
	values[len(values)-1] = param.MaxValue
	return values
}

func (sa *SensitivityAnalyzer) modifyProfileParameter(profile *domain.Profile, paramName string, value decimal.Decimal) (*domain.Profile, error) {
	var change transform.ProfileTransform
	switch paramName {
	case "gross_income":
		change = &transform.SetIncome{Gross: value}
	case "side_income":
		change = &transform.SetSideIncome{Amount: value}
	case "ideco":
		change = &transform.SetDeduction{Category: domain.DeductionIDeCo, Amount: value}
	default:
		return nil, &CalculationError{Operation: "sensitivity", Message: fmt.Sprintf("unknown parameter %q", paramName)}
	}
	return transform.ApplyTransforms(profile, []transform.ProfileTransform{change})
}

func baseValue(profile *domain.Profile, paramName string) decimal.Decimal {
	switch paramName {
	case "gross_income":
		return profile.Taxpayer.GrossAnnualIncome
	case "side_income":
		return profile.Taxpayer.SideIncome
	case "ideco":
		return profile.Deductions.Get(domain.DeductionIDeCo)
	}
	return decimal.Zero
}

func pointFrom(value decimal.Decimal, r *domain.TaxResult) domain.SensitivityPoint {
	return domain.SensitivityPoint{
		Value:           value,
		NetIncome:       r.NetIncome,
		IncomeTax:       r.IncomeTax,
		ResidentTax:     r.ResidentTax,
		SocialInsurance: r.SocialInsurance.Total,
		EffectiveRate:   r.EffectiveRate,
		MarginalRate:    r.MarginalRate,
	}
}

func keepRate(prev, cur domain.SensitivityPoint) decimal.Decimal {
	step := cur.Value.Sub(prev.Value)
	if step.IsZero() {
		return decimal.Zero
	}
	return cur.NetIncome.Sub(prev.NetIncome).Div(step).Round(4)
}

func (sa *SensitivityAnalyzer) calculateSensitivitySummary(param domain.SensitivityParameter, points []domain.SensitivityPoint) domain.SensitivitySummary {
	var summary domain.SensitivitySummary
	first, last := points[0], points[len(points)-1]
	summary.AverageKeepRate = keepRate(first, last)

	for i := 1; i < len(points); i++ {
		p := points[i]
		if i == 1 || p.KeepRate.LessThan(summary.LowestKeepRate) {
			summary.LowestKeepRate = p.KeepRate
			summary.LowestKeepRateAt = p.Value
		}
		if p.NetIncome.LessThan(points[i-1].NetIncome) {
			summary.Cliffs = append(summary.Cliffs, p.Value)
		}
	}

	tenThousand := decimal.NewFromInt(10000)
	summary.Notes = append(summary.Notes, fmt.Sprintf("Each extra ¥10,000 of %s changes take-home by about %s on average",
		param.Name, domain.FormatYen(summary.AverageKeepRate.Mul(tenThousand))))
	summary.Notes = append(summary.Notes, fmt.Sprintf("Weakest step ends at %s, where %s of each added yen is kept",
		domain.FormatYen(summary.LowestKeepRateAt), domain.FormatRate(summary.LowestKeepRate)))
	for _, c := range summary.Cliffs {
		summary.Notes = append(summary.Notes, fmt.Sprintf("Take-home falls on the step up to %s", domain.FormatYen(c)))
	}
	return summary
}
