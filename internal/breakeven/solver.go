package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the income needed for a take-home target
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
	Logger     calculation.Logger
}

// NewSolver creates a new target solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
		Logger:     calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// SetLogger sets the logger; nil restores the no-op logger
func (s *Solver) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.Logger = l
}

// Solve bisects the lever between its bounds for the smallest amount whose
// take-home reaches the target, to within the request tolerance (¥1 by
// default). Take-home is assumed to rise with income over the searched range.
func (s *Solver) Solve(ctx context.Context, req TargetRequest) (*TargetResult, error) {
	if req.Profile == nil {
		return nil, &SolverError{Operation: "solve", Message: "profile is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if s.CalcEngine == nil {
		return nil, &SolverError{Operation: "solve", Message: "calculation engine is required"}
	}

	if req.Lever == "" {
		req.Lever = LeverGrossIncome
	}
	if req.Goal == "" {
		req.Goal = GoalAnnualNet
	}
	if req.Goal != GoalAnnualNet && req.Goal != GoalMonthlyNet {
		return nil, &SolverError{Operation: "solve", Message: fmt.Sprintf("unsupported goal: %s", req.Goal)}
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Tolerance.LessThan(decimal.NewFromInt(1)) {
		req.Tolerance = decimal.NewFromInt(1)
	}

	current, err := currentAmount(req.Profile, req.Lever)
	if err != nil {
		return nil, err
	}
	base, err := s.CalcEngine.Calculate(req.Profile)
	if err != nil {
		return nil, &SolverError{Operation: "solve", Message: "failed to calculate base profile", Cause: err}
	}

	lo, hi := s.bounds(req)
	if lo.GreaterThan(hi) {
		return nil, &SolverError{
			Operation: "solve",
			Message:   fmt.Sprintf("lower bound %s is above upper bound %s", lo, hi),
		}
	}
	target := *req.Constraints.TargetNet

	result := &TargetResult{
		Request:       req,
		CurrentAmount: current,
		BaseResult:    base,
	}
	finish := func(amount decimal.Decimal, calc *domain.TaxResult) *TargetResult {
		result.RequiredAmount = amount
		result.Increase = amount.Sub(current)
		result.Result = calc
		result.Achieved = achieved(calc, req.Goal)
		return result
	}

	loCalc, err := s.evaluate(req, lo)
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if achieved(loCalc, req.Goal).GreaterThanOrEqual(target) {
		result.Success = true
		result.ConvergenceInfo = "Target already met at the lower bound"
		return finish(lo, loCalc), nil
	}

	hiCalc, err := s.evaluate(req, hi)
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if achieved(hiCalc, req.Goal).LessThan(target) {
		return nil, &SolverError{
			Operation: "solve",
			Message:   fmt.Sprintf("%s of %s reaches only %s", req.Lever, domain.FormatYen(hi), domain.FormatYen(achieved(hiCalc, req.Goal))),
			Cause:     ErrTargetUnreachable,
		}
	}

	two := decimal.NewFromInt(2)
	for hi.Sub(lo).GreaterThan(req.Tolerance) && result.Iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).Floor()
		calc, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		result.Iterations++

		if achieved(calc, req.Goal).GreaterThanOrEqual(target) {
			hi, hiCalc = mid, calc
		} else {
			lo = mid
		}
		s.Logger.Debugf("solve %s: iteration %d bracket [%s, %s]", req.Lever, result.Iterations, lo, hi)
	}

	if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Converged within %s", domain.FormatYen(req.Tolerance))
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Stopped after %d iterations with a %s bracket", result.Iterations, domain.FormatYen(hi.Sub(lo)))
	}
	return finish(hi, hiCalc), nil
}

// bounds returns the search interval. The floor keeps the modified profile
// valid: owners cannot earn less than their expenses and company housing
// cannot exceed pay.
func (s *Solver) bounds(req TargetRequest) (decimal.Decimal, decimal.Decimal) {
	lo := decimal.Zero
	if req.Lever == LeverGrossIncome {
		tp := req.Profile.Taxpayer
		if tp.EmploymentCategory.IsBusinessOwner() {
			lo = decimal.Max(lo, tp.BusinessExpenses)
		}
		lo = decimal.Max(lo, tp.CompanyHousingMonthly.Mul(decimal.NewFromInt(12)))
	}
	if req.Constraints.MinAmount != nil {
		lo = decimal.Max(lo, *req.Constraints.MinAmount)
	}

	hi := s.Options.UpperBound
	if req.Constraints.MaxAmount != nil {
		hi = *req.Constraints.MaxAmount
	}
	return lo, hi
}

func (s *Solver) evaluate(req TargetRequest, amount decimal.Decimal) (*domain.TaxResult, error) {
	var change transform.ProfileTransform
	switch req.Lever {
	case LeverGrossIncome:
		change = &transform.SetIncome{Gross: amount}
	case LeverSideIncome:
		change = &transform.SetSideIncome{Amount: amount}
	default:
		return nil, &SolverError{Operation: "evaluate", Message: fmt.Sprintf("unsupported lever: %s", req.Lever)}
	}

	modified, err := transform.ApplyTransforms(req.Profile, []transform.ProfileTransform{change})
	if err != nil {
		return nil, &SolverError{Operation: "evaluate", Message: "failed to apply lever", Cause: err}
	}
	calc, err := s.CalcEngine.Calculate(modified)
	if err != nil {
		return nil, &SolverError{
			Operation: "evaluate",
			Message:   fmt.Sprintf("failed to calculate at %s", amount),
			Cause:     err,
		}
	}
	return calc, nil
}

func currentAmount(profile *domain.Profile, lever Lever) (decimal.Decimal, error) {
	switch lever {
	case LeverGrossIncome:
		return profile.Taxpayer.GrossAnnualIncome, nil
	case LeverSideIncome:
		return profile.Taxpayer.SideIncome, nil
	default:
		return decimal.Zero, &SolverError{Operation: "solve", Message: fmt.Sprintf("unsupported lever: %s", lever)}
	}
}

func achieved(result *domain.TaxResult, goal Goal) decimal.Decimal {
	if goal == GoalMonthlyNet {
		return result.MonthlyNetIncome
	}
	return result.NetIncome
}
