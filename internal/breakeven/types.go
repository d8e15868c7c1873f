package breakeven

import (
	"errors"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// Lever is the income figure the solver adjusts
type Lever string

const (
	LeverGrossIncome Lever = "gross_income" // salary, or revenue for business owners
	LeverSideIncome  Lever = "side_income"
)

// Goal is the take-home figure that has to reach the target
type Goal string

const (
	GoalAnnualNet  Goal = "annual_net"
	GoalMonthlyNet Goal = "monthly_net"
)

// ErrTargetUnreachable is wrapped when even the upper bound misses the target.
var ErrTargetUnreachable = errors.New("target not reachable within bounds")

// Constraints bound the search
type Constraints struct {
	TargetNet *decimal.Decimal `json:"target_net,omitempty"`
	MinAmount *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
}

// TargetRequest defines one solve
type TargetRequest struct {
	Profile       *domain.Profile `json:"-"`
	Lever         Lever           `json:"lever"`
	Goal          Goal            `json:"goal"`
	Constraints   Constraints     `json:"constraints"`
	MaxIterations int             `json:"max_iterations"`
	Tolerance     decimal.Decimal `json:"tolerance"`
}

// TargetResult is the smallest lever amount found that reaches the target
type TargetResult struct {
	Request         TargetRequest `json:"request"`
	Success         bool          `json:"success"`
	Iterations      int           `json:"iterations"`
	ConvergenceInfo string        `json:"convergence_info"`

	CurrentAmount  decimal.Decimal `json:"current_amount"`
	RequiredAmount decimal.Decimal `json:"required_amount"`
	Increase       decimal.Decimal `json:"increase"`
	Achieved       decimal.Decimal `json:"achieved"`

	Result     *domain.TaxResult `json:"result"`
	BaseResult *domain.TaxResult `json:"base_result"`
}

// Target returns the requested take-home figure
func (r *TargetResult) Target() decimal.Decimal {
	if r.Request.Constraints.TargetNet == nil {
		return decimal.Zero
	}
	return *r.Request.Constraints.TargetNet
}

// LeverComparison holds one solve per lever for the same target
type LeverComparison struct {
	Results  []TargetResult `json:"results"`
	Cheapest *TargetResult  `json:"cheapest,omitempty"`
	Notes    []string       `json:"notes"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // yen; 1 gives the smallest whole-yen amount
	MaxIterations int
	UpperBound    decimal.Decimal // default ceiling for the lever
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
		UpperBound:    decimal.NewFromInt(100000000),
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.TargetNet == nil {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "target net income is required",
		}
	}
	if !c.TargetNet.IsPositive() {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "target net income must be positive",
		}
	}
	if c.MinAmount != nil && c.MinAmount.IsNegative() {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_amount cannot be negative",
		}
	}
	if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_amount cannot be greater than max_amount",
		}
	}
	return nil
}

// SolverError represents errors from the target solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
