package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func validProfile() *Profile {
	return &Profile{
		Taxpayer: TaxpayerInput{
			GrossAnnualIncome:  yen(6000000),
			Age:                35,
			Region:             "tokyo",
			EmploymentCategory: EmploymentSalaried,
		},
		Deductions: DeductionInputs{DeductionIDeCo: yen(144000)},
	}
}

func fieldsOf(err error) []string {
	var fields []string
	for _, ve := range ValidationErrors(err) {
		fields = append(fields, ve.Field)
	}
	return fields
}

func TestParseEmploymentCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected EmploymentCategory
	}{
		{"salaried", EmploymentSalaried},
		{"Part-Time", EmploymentPartTime},
		{"self-employed", EmploymentSelfEmployed},
		{" freelance ", EmploymentFreelance},
		{"kaishain", EmploymentSalaried},
		{"kojin", EmploymentSelfEmployed},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEmploymentCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseEmploymentCategory("astronaut")
	assert.Error(t, err)
}

func TestEmploymentCategory_UnmarshalYAML(t *testing.T) {
	var tp TaxpayerInput
	err := yaml.Unmarshal([]byte("employment_category: self-employed\nfiling_type: blue\n"), &tp)
	require.NoError(t, err)

	assert.Equal(t, EmploymentSelfEmployed, tp.EmploymentCategory)
	assert.True(t, tp.IsBlueFiler())

	err = yaml.Unmarshal([]byte("employment_category: pirate\n"), &tp)
	assert.Error(t, err, "Unknown categories should fail to parse")
}

func TestTaxpayerInput_Predicates(t *testing.T) {
	tp := TaxpayerInput{EmploymentCategory: EmploymentSalaried, FilingType: FilingBlue}
	assert.False(t, tp.IsBlueFiler(), "Employees never file blue")

	tp = TaxpayerInput{
		EmploymentCategory:   EmploymentFreelance,
		FilingType:           FilingBlue,
		HasSpouse:            true,
		FamilyEmployeeSalary: yen(960000),
	}
	assert.True(t, tp.PaysSpouseSalary())

	tp.GrossAnnualIncome = yen(5000000)
	assert.Equal(t, "5000000", tp.PriorYearIncome().String())
	tp.LastYearIncome = yen(4200000)
	assert.Equal(t, "4200000", tp.PriorYearIncome().String())
}

func TestProfile_CloneIsIndependent(t *testing.T) {
	original := validProfile()
	clone := original.Clone()

	clone.Deductions[DeductionIDeCo] = yen(276000)
	clone.Taxpayer.Age = 50

	assert.Equal(t, "144000", original.Deductions.Get(DeductionIDeCo).String())
	assert.Equal(t, 35, original.Taxpayer.Age)
}

func TestProfile_ValidateAcceptsValidInput(t *testing.T) {
	assert.NoError(t, validProfile().Validate())
}

func TestProfile_ValidateReportsEveryField(t *testing.T) {
	p := validProfile()
	p.Taxpayer.Age = 12
	p.Taxpayer.GrossAnnualIncome = yen(-1)
	p.Taxpayer.DependentCount = 25
	p.Taxpayer.FilingType = "green"
	p.Deductions["yacht"] = yen(1)

	err := p.Validate()
	require.Error(t, err)

	fields := fieldsOf(err)
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "gross_annual_income")
	assert.Contains(t, fields, "dependent_count")
	assert.Contains(t, fields, "filing_type")
	assert.Contains(t, fields, "deductions.yacht")
}

func TestProfile_ValidateWholeYen(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(p *Profile)
		field string
	}{
		{"gross", func(p *Profile) { p.Taxpayer.GrossAnnualIncome = decimal.RequireFromString("6000000.5") }, "gross_annual_income"},
		{"housing", func(p *Profile) { p.Taxpayer.CompanyHousingMonthly = decimal.RequireFromString("1000.25") }, "company_housing_monthly"},
		{"deduction", func(p *Profile) { p.Deductions[DeductionIDeCo] = decimal.RequireFromString("12000.01") }, "deductions.ideco"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.edit(p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, fieldsOf(err), tt.field)
			assert.ErrorContains(t, err, "whole yen")
		})
	}

	p := validProfile()
	p.Taxpayer.GrossAnnualIncome = decimal.RequireFromString("6000000.00")
	assert.NoError(t, p.Validate(), "Trailing zero decimals are whole yen")
}

func TestProfile_ValidateCrossFieldRules(t *testing.T) {
	p := validProfile()
	p.Taxpayer.Bonus = yen(6000001)
	assert.Contains(t, fieldsOf(p.Validate()), "bonus")

	p = validProfile()
	p.Taxpayer.EmploymentCategory = EmploymentSelfEmployed
	p.Taxpayer.BusinessExpenses = yen(7000000)
	assert.Contains(t, fieldsOf(p.Validate()), "business_expenses")

	p = validProfile()
	p.Taxpayer.CompanyHousingMonthly = yen(600000)
	assert.Contains(t, fieldsOf(p.Validate()), "company_housing_monthly")

	p = validProfile()
	p.Taxpayer.SideIncome = yen(100000)
	p.Taxpayer.SideExpenses = yen(500000)
	assert.NoError(t, p.Validate(), "Side expenses may exceed side income")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "age", Value: "12", Message: "must be between 15 and 100"}
	assert.Equal(t, "age: must be between 15 and 100 (got 12)", err.Error())
}

func TestLookupRegion(t *testing.T) {
	regions := DefaultRegions()

	osaka, found := LookupRegion(regions, "Osaka")
	assert.True(t, found)
	assert.Equal(t, "5300", osaka.FlatLevy.String())
	assert.Equal(t, "0.1", osaka.ResidentRate().String())

	fallback, found := LookupRegion(regions, "atlantis")
	assert.False(t, found)
	assert.Equal(t, DefaultRegion, fallback.Name)

	fallback, found = LookupRegion(nil, "tokyo")
	assert.False(t, found)
	assert.Equal(t, DefaultRegion, fallback.Name, "An empty table still yields the built-in default")
}

func TestRegionNames_Sorted(t *testing.T) {
	names := RegionNames(DefaultRegions())
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "tokyo")
}

func TestLimitSpec_Resolve(t *testing.T) {
	yearly := yen(840000)
	total := yen(8000000)
	owner := yen(816000)
	other := yen(276000)

	simple := LimitSpec{YearlyMax: &yearly, TotalMax: &total}
	v, ok := simple.Resolve(EmploymentSalaried)
	assert.True(t, ok)
	assert.Equal(t, "840000", v.String(), "Yearly max wins over total max")

	nested := LimitSpec{
		Max: &other,
		Categories: map[EmploymentCategory]LimitSpec{
			EmploymentSelfEmployed: {Max: &owner},
		},
	}
	v, ok = nested.Resolve(EmploymentSelfEmployed)
	assert.True(t, ok)
	assert.Equal(t, "816000", v.String())
	v, ok = nested.Resolve(EmploymentContract)
	assert.True(t, ok)
	assert.Equal(t, "276000", v.String())

	_, ok = LimitSpec{}.Resolve(EmploymentSalaried)
	assert.False(t, ok)
}

func TestComparisonSession_Toggle(t *testing.T) {
	session := ComparisonSession{Selected: []string{"a"}}
	session.Outcome = &ComparisonOutcome{Combinations: []Combination{{IDs: []string{"a", "b"}}}}

	next := session.Toggle("b")
	assert.True(t, next.IsSelected("a"))
	assert.True(t, next.IsSelected("b"))
	assert.Nil(t, next.Outcome, "Changing the selection drops the outcome")
	assert.Len(t, session.Selected, 1, "The original session is untouched")

	next = next.Toggle("a")
	assert.False(t, next.IsSelected("a"))
	assert.Equal(t, []string{"b"}, next.Selected)
}

func TestComparisonOutcome_Best(t *testing.T) {
	var nilOutcome *ComparisonOutcome
	assert.Nil(t, nilOutcome.Best())

	outcome := &ComparisonOutcome{
		Combinations: []Combination{{TotalSaving: yen(10)}, {TotalSaving: yen(30)}},
		Recommended:  1,
	}
	require.NotNil(t, outcome.Best())
	assert.Equal(t, "30", outcome.Best().TotalSaving.String())
}

func TestRecommendation_Labels(t *testing.T) {
	r := Recommendation{PriorityScore: yen(96), CashflowImpact: 4}
	assert.Equal(t, "top", r.PriorityLabel())
	assert.Equal(t, "large outlay", r.CashflowLabel())

	r = Recommendation{PriorityScore: decimal.NewFromFloat(69.9)}
	assert.Equal(t, "low", r.PriorityLabel())
	assert.Equal(t, "none", r.CashflowLabel())
}

func TestDeductionBreakdown_Total(t *testing.T) {
	b := DeductionBreakdown{
		SocialInsurance: yen(884400),
		Salary:          yen(1640000),
		Basic:           yen(480000),
	}
	assert.Equal(t, "3004400", b.Total().String())
}

func TestDeductionCategory_Labels(t *testing.T) {
	for _, c := range DeductionCategories {
		assert.True(t, c.Known())
		assert.NotEqual(t, string(c), c.Label(), "%s should have a display label", c)
	}
	assert.False(t, DeductionCategory("yacht").Known())
	assert.Equal(t, "yacht", DeductionCategory("yacht").Label())
}

func TestFormatYen(t *testing.T) {
	assert.Equal(t, "¥0", FormatYen(decimal.Zero))
	assert.Equal(t, "¥78,000", FormatYen(yen(78000)))
	assert.Equal(t, "¥4,599,737", FormatYen(yen(4599737)))
	assert.Equal(t, "¥1,001", FormatYen(decimal.NewFromFloat(1000.5)))
	assert.Equal(t, "20.2%", FormatRate(decimal.NewFromFloat(0.2021)))
}
