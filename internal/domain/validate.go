package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	MinAge = 15
	MaxAge = 100
)

// Validate checks a profile before any calculation runs. Every violation is
// reported; the returned error joins one *ValidationError per field.
func (p *Profile) Validate() error {
	var errs []error
	add := func(field string, value fmt.Stringer, msg string) {
		v := ""
		if value != nil {
			v = value.String()
		}
		errs = append(errs, &ValidationError{Field: field, Value: v, Message: msg})
	}

	t := p.Taxpayer
	if !t.EmploymentCategory.Valid() {
		errs = append(errs, &ValidationError{
			Field:   "employment_category",
			Value:   string(t.EmploymentCategory),
			Message: "must be one of salaried, contract, part_time, self_employed, freelance",
		})
	}
	if t.Age < MinAge || t.Age > MaxAge {
		errs = append(errs, &ValidationError{
			Field:   "age",
			Value:   fmt.Sprint(t.Age),
			Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge),
		})
	}
	switch t.FilingType {
	case "", FilingBlue, FilingWhite:
	default:
		errs = append(errs, &ValidationError{Field: "filing_type", Value: string(t.FilingType), Message: "must be blue or white"})
	}

	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"gross_annual_income", t.GrossAnnualIncome},
		{"bonus", t.Bonus},
		{"spouse_income", t.SpouseIncome},
		{"side_income", t.SideIncome},
		{"side_expenses", t.SideExpenses},
		{"company_housing_monthly", t.CompanyHousingMonthly},
		{"last_year_income", t.LastYearIncome},
		{"business_expenses", t.BusinessExpenses},
		{"family_employee_salary", t.FamilyEmployeeSalary},
		{"charitable_donations", t.CharitableDonations},
	}
	for _, m := range money {
		checkYen(m.field, m.value, add)
	}
	if t.DependentCount < 0 || t.DependentCount > 20 {
		errs = append(errs, &ValidationError{Field: "dependent_count", Value: fmt.Sprint(t.DependentCount), Message: "must be between 0 and 20"})
	}
	if t.DisabledDependentCount < 0 || t.DisabledDependentCount > 20 {
		errs = append(errs, &ValidationError{Field: "disabled_dependent_count", Value: fmt.Sprint(t.DisabledDependentCount), Message: "must be between 0 and 20"})
	}

	if t.Bonus.GreaterThan(t.GrossAnnualIncome) {
		add("bonus", t.Bonus, fmt.Sprintf("must not exceed gross annual income (0 to %s)", t.GrossAnnualIncome))
	}
	if t.EmploymentCategory.IsBusinessOwner() {
		if t.BusinessExpenses.GreaterThan(t.GrossAnnualIncome) {
			add("business_expenses", t.BusinessExpenses, fmt.Sprintf("must not exceed revenue (0 to %s)", t.GrossAnnualIncome))
		}
	}
	if t.CompanyHousingMonthly.Mul(decimal.NewFromInt(12)).GreaterThan(t.GrossAnnualIncome) {
		add("company_housing_monthly", t.CompanyHousingMonthly, "yearly housing deduction must not exceed gross annual income")
	}

	keys := make([]string, 0, len(p.Deductions))
	for k := range p.Deductions {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := DeductionCategory(k)
		field := "deductions." + k
		if !c.Known() {
			errs = append(errs, &ValidationError{Field: field, Message: "unknown deduction category"})
			continue
		}
		checkYen(field, p.Deductions[c], add)
	}

	return errors.Join(errs...)
}

// checkYen reports amounts that are negative or carry a fraction of a yen.
func checkYen(field string, v decimal.Decimal, add func(string, fmt.Stringer, string)) {
	switch {
	case v.IsNegative():
		add(field, v, "must be zero or greater")
	case !v.Equal(v.Truncate(0)):
		add(field, v, "must be a whole yen amount")
	}
}
