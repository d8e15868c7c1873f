package transform

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// SwitchFiling changes a business owner's filing type. Switching to blue also
// claims the given blue filing deduction.
type SwitchFiling struct {
	Filing    domain.FilingType
	Deduction decimal.Decimal
}

func (t *SwitchFiling) Name() string {
	return "switch_filing"
}

func (t *SwitchFiling) Description() string {
	if t.Filing == domain.FilingBlue {
		return fmt.Sprintf("Switch to blue filing with a %s deduction", domain.FormatYen(t.Deduction))
	}
	return fmt.Sprintf("Switch to %s filing", t.Filing)
}

func (t *SwitchFiling) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if t.Filing != domain.FilingBlue && t.Filing != domain.FilingWhite {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("filing must be blue or white, got %q", t.Filing), nil)
	}
	if !base.Taxpayer.EmploymentCategory.IsBusinessOwner() {
		return NewTransformError(t.Name(), "validate", "only business owners choose a filing type", nil)
	}
	if t.Deduction.IsNegative() {
		return NewTransformError(t.Name(), "validate", "deduction must be non-negative", nil)
	}
	return nil
}

func (t *SwitchFiling) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.Taxpayer.FilingType = t.Filing
	if t.Filing == domain.FilingBlue {
		modified.Deductions[domain.DeductionBlueFiling] = t.Deduction
	} else {
		delete(modified.Deductions, domain.DeductionBlueFiling)
		modified.Taxpayer.FamilyEmployeeSalary = decimal.Zero
	}
	return modified, nil
}

// FamilySalary puts the spouse on the payroll as a dedicated family employee.
type FamilySalary struct {
	Annual decimal.Decimal
}

func (t *FamilySalary) Name() string {
	return "family_salary"
}

func (t *FamilySalary) Description() string {
	return fmt.Sprintf("Pay the spouse %s a year as a family employee", domain.FormatYen(t.Annual))
}

func (t *FamilySalary) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if !base.Taxpayer.HasSpouse {
		return NewTransformError(t.Name(), "validate", "profile has no spouse", nil)
	}
	if !base.Taxpayer.IsBlueFiler() {
		return NewTransformError(t.Name(), "validate", "family employee salaries require blue filing", nil)
	}
	if t.Annual.IsNegative() {
		return NewTransformError(t.Name(), "validate", "salary must be non-negative", nil)
	}
	return nil
}

func (t *FamilySalary) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.Taxpayer.FamilyEmployeeSalary = t.Annual
	return modified, nil
}

// AddExpense books an additional yearly expense: business expenses for
// owners, side-job expenses for everyone else.
type AddExpense struct {
	Amount decimal.Decimal
}

func (t *AddExpense) Name() string {
	return "add_expense"
}

func (t *AddExpense) Description() string {
	return fmt.Sprintf("Book %s of additional expenses", domain.FormatYen(t.Amount))
}

func (t *AddExpense) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if !t.Amount.IsPositive() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", t.Amount), nil)
	}
	tp := base.Taxpayer
	if tp.EmploymentCategory.IsBusinessOwner() {
		if tp.BusinessExpenses.Add(t.Amount).GreaterThan(tp.GrossAnnualIncome) {
			return NewTransformError(t.Name(), "validate", "expenses would exceed revenue", nil)
		}
		return nil
	}
	if !tp.SideIncome.IsPositive() {
		return NewTransformError(t.Name(), "validate", "employees can only book expenses against side income", nil)
	}
	return nil
}

func (t *AddExpense) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	if modified.Taxpayer.EmploymentCategory.IsBusinessOwner() {
		modified.Taxpayer.BusinessExpenses = modified.Taxpayer.BusinessExpenses.Add(t.Amount)
	} else {
		modified.Taxpayer.SideExpenses = modified.Taxpayer.SideExpenses.Add(t.Amount)
	}
	return modified, nil
}

// SetIncome replaces gross annual income. The bonus is scaled so its share
// of gross stays the same.
type SetIncome struct {
	Gross decimal.Decimal
}

func (t *SetIncome) Name() string {
	return "set_income"
}

func (t *SetIncome) Description() string {
	return fmt.Sprintf("Set gross annual income to %s", domain.FormatYen(t.Gross))
}

func (t *SetIncome) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if t.Gross.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("gross must be non-negative, got %s", t.Gross), nil)
	}
	return nil
}

func (t *SetIncome) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	old := base.Taxpayer.GrossAnnualIncome
	if old.IsPositive() && base.Taxpayer.Bonus.IsPositive() {
		modified.Taxpayer.Bonus = base.Taxpayer.Bonus.Mul(t.Gross).Div(old).Floor()
	}
	modified.Taxpayer.GrossAnnualIncome = t.Gross
	return modified, nil
}

// SetSideIncome replaces side-job income. Side expenses above the new income
// are capped to it.
type SetSideIncome struct {
	Amount decimal.Decimal
}

func (t *SetSideIncome) Name() string {
	return "set_side_income"
}

func (t *SetSideIncome) Description() string {
	return fmt.Sprintf("Set side income to %s", domain.FormatYen(t.Amount))
}

func (t *SetSideIncome) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", t.Amount), nil)
	}
	return nil
}

func (t *SetSideIncome) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.Taxpayer.SideIncome = t.Amount
	if modified.Taxpayer.SideExpenses.GreaterThan(t.Amount) {
		modified.Taxpayer.SideExpenses = t.Amount
	}
	return modified, nil
}
