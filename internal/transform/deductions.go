package transform

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// IncreaseDeduction adds an amount to one deduction category.
type IncreaseDeduction struct {
	Category domain.DeductionCategory
	Amount   decimal.Decimal
}

func (t *IncreaseDeduction) Name() string {
	return "increase_deduction"
}

func (t *IncreaseDeduction) Description() string {
	return fmt.Sprintf("Increase %s by %s", t.Category.Label(), domain.FormatYen(t.Amount))
}

func (t *IncreaseDeduction) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if !t.Category.Known() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown deduction category %q", t.Category), nil)
	}
	if base.Deductions.Get(t.Category).Add(t.Amount).IsNegative() {
		return NewTransformError(t.Name(), "validate", "resulting amount would be negative", nil)
	}
	return nil
}

func (t *IncreaseDeduction) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.Deductions[t.Category] = base.Deductions.Get(t.Category).Add(t.Amount)
	return modified, nil
}

// SetDeduction sets one deduction category to an absolute amount.
type SetDeduction struct {
	Category domain.DeductionCategory
	Amount   decimal.Decimal
}

func (t *SetDeduction) Name() string {
	return "set_deduction"
}

func (t *SetDeduction) Description() string {
	return fmt.Sprintf("Set %s to %s", t.Category.Label(), domain.FormatYen(t.Amount))
}

func (t *SetDeduction) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if !t.Category.Known() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown deduction category %q", t.Category), nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", t.Amount), nil)
	}
	return nil
}

func (t *SetDeduction) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.Deductions[t.Category] = t.Amount
	return modified, nil
}
