package allocation

import (
	"testing"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tracker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testSlots() []Slot {
	return []Slot{
		{Category: domain.DeductionIDeCo, Headroom: yen(276000), Treatment: IncomeDeduction, SavingRate: decimal.RequireFromString("0.3"), Priority: 0},
		{Category: domain.DeductionHometownDonation, Headroom: yen(78000), Treatment: TaxCredit, SavingRate: decimal.RequireFromString("0.97"), Priority: 2},
		{Category: domain.DeductionLifeInsurance, Headroom: yen(80000), Treatment: CappedDeduction, SavingRate: decimal.RequireFromString("0.05"), Priority: 4},
	}
}

func amounts(plan Plan) map[domain.DeductionCategory]int64 {
	out := map[domain.DeductionCategory]int64{}
	for _, a := range plan.Merged() {
		out[a.Category] = a.Amount.IntPart()
	}
	return out
}

func TestCreateStrategy(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		expected string
	}{
		{"Standard Strategy", "standard", "standard"},
		{"Savings First Strategy", "savings_first", "savings_first"},
		{"Bracket Fill Strategy", "bracket_fill", "bracket_fill"},
		{"Custom Strategy", "custom", "custom"},
		{"Unknown Strategy", "yolo", "standard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := CreateStrategy(tt.strategy, []domain.DeductionCategory{domain.DeductionIDeCo})
			if strategy == nil {
				t.Fatal("Expected strategy to be created, got nil")
			}
			if strategy.Name() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, strategy.Name())
			}

			plan := strategy.Plan(testSlots(), StrategyContext{Budget: yen(10000)})
			if len(plan.Allocations) == 0 {
				t.Fatal("Expected allocations to be created")
			}
			if !plan.TotalAllocated.Equal(yen(10000)) {
				t.Errorf("Expected the whole budget to be allocated, got %s", plan.TotalAllocated)
			}
		})
	}
}

func TestStandardStrategy(t *testing.T) {
	plan := NewStandardStrategy().Plan(testSlots(), StrategyContext{Budget: yen(300000)})

	assert.Equal(t, map[domain.DeductionCategory]int64{
		domain.DeductionIDeCo:            276000,
		domain.DeductionHometownDonation: 24000,
	}, amounts(plan))
	assert.Equal(t, "82800", plan.Allocations[0].EstimatedSaving.String())
	assert.Equal(t, "23280", plan.Allocations[1].EstimatedSaving.String())
	assert.Equal(t, "106080", plan.EstimatedSaving.String())
	assert.True(t, plan.Unallocated.IsZero())
	assert.Empty(t, plan.Notes)
}

func TestStandardStrategy_BudgetBeyondHeadroom(t *testing.T) {
	plan := NewStandardStrategy().Plan(testSlots(), StrategyContext{Budget: yen(500000)})

	assert.Equal(t, "434000", plan.TotalAllocated.String())
	assert.Equal(t, "66000", plan.Unallocated.String())
	require.Len(t, plan.Notes, 1)
	assert.Contains(t, plan.Notes[0], "every deduction is full")
}

func TestStrategiesLeaveSlotsUntouched(t *testing.T) {
	slots := testSlots()
	for _, name := range StrategyNames {
		CreateStrategy(name, nil).Plan(slots, StrategyContext{Budget: yen(1000000), TaxableIncome: yen(3000000)})
	}
	assert.Equal(t, testSlots(), slots)
}

func TestSavingsFirstStrategy(t *testing.T) {
	plan := NewSavingsFirstStrategy().Plan(testSlots(), StrategyContext{Budget: yen(100000)})

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, domain.DeductionHometownDonation, plan.Allocations[0].Category)
	assert.Equal(t, "78000", plan.Allocations[0].Amount.String())
	assert.Equal(t, domain.DeductionIDeCo, plan.Allocations[1].Category)
	assert.Equal(t, "22000", plan.Allocations[1].Amount.String())
}

func TestBracketFillStrategy(t *testing.T) {
	ctx := StrategyContext{
		Budget:        yen(200000),
		TaxableIncome: yen(2000000),
		BracketEdges:  []decimal.Decimal{yen(1950000), yen(3300000), yen(6950000)},
	}
	plan := NewBracketFillStrategy().Plan(testSlots(), ctx)

	require.NotNil(t, plan.BracketTarget)
	assert.Equal(t, "1950000", plan.BracketTarget.String())
	assert.True(t, plan.BracketFilled)

	require.Len(t, plan.Allocations, 3)
	assert.Equal(t, domain.DeductionIDeCo, plan.Allocations[0].Category)
	assert.Equal(t, "50000", plan.Allocations[0].Amount.String())
	assert.Equal(t, domain.DeductionHometownDonation, plan.Allocations[1].Category)
	assert.Equal(t, "78000", plan.Allocations[1].Amount.String())
	assert.Equal(t, domain.DeductionIDeCo, plan.Allocations[2].Category)
	assert.Equal(t, "72000", plan.Allocations[2].Amount.String())

	assert.Equal(t, map[domain.DeductionCategory]int64{
		domain.DeductionIDeCo:            122000,
		domain.DeductionHometownDonation: 78000,
	}, amounts(plan))
}

func TestBracketFillStrategy_Buffer(t *testing.T) {
	ctx := StrategyContext{
		Budget:        yen(100000),
		TaxableIncome: yen(2000000),
		BracketEdges:  []decimal.Decimal{yen(1950000), yen(3300000)},
		BracketBuffer: yen(10000),
	}
	plan := NewBracketFillStrategy().Plan(testSlots(), ctx)

	assert.Equal(t, "1940000", plan.BracketTarget.String())
	assert.Equal(t, "60000", plan.Allocations[0].Amount.String())
}

func TestBracketFillStrategy_ShortOfEdge(t *testing.T) {
	ctx := StrategyContext{
		Budget:        yen(400000),
		TaxableIncome: yen(3000000),
		BracketEdges:  []decimal.Decimal{yen(1950000), yen(3300000)},
	}
	plan := NewBracketFillStrategy().Plan(testSlots(), ctx)

	assert.False(t, plan.BracketFilled)
	assert.Contains(t, plan.Notes, "budget or headroom ran out before reaching the lower bracket")
	assert.Equal(t, "276000", plan.Allocations[0].Amount.String())
}

func TestBracketFillStrategy_LowestBracket(t *testing.T) {
	ctx := StrategyContext{
		Budget:        yen(100000),
		TaxableIncome: yen(1000000),
		BracketEdges:  []decimal.Decimal{yen(1950000)},
	}
	plan := NewBracketFillStrategy().Plan(testSlots(), ctx)

	assert.Nil(t, plan.BracketTarget)
	assert.Contains(t, plan.Notes, "taxable income is already in the lowest bracket")
	assert.Equal(t, domain.DeductionHometownDonation, plan.Allocations[0].Category)
}

func TestCustomStrategy(t *testing.T) {
	plan := NewCustomStrategy([]domain.DeductionCategory{
		domain.DeductionLifeInsurance,
		domain.DeductionSmallBusinessMutualAid, // no slot, skipped
		domain.DeductionIDeCo,
	}).Plan(testSlots(), StrategyContext{Budget: yen(100000)})

	assert.Equal(t, "custom", plan.StrategyUsed)
	assert.Equal(t, map[domain.DeductionCategory]int64{
		domain.DeductionLifeInsurance: 80000,
		domain.DeductionIDeCo:         20000,
	}, amounts(plan))
}

func TestCustomStrategy_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		sequence []domain.DeductionCategory
	}{
		{"empty", nil},
		{"duplicate", []domain.DeductionCategory{domain.DeductionIDeCo, domain.DeductionIDeCo}},
		{"unknown", []domain.DeductionCategory{"pension_fund"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewCustomStrategy(tt.sequence).Plan(testSlots(), StrategyContext{Budget: yen(1000)})
			assert.Equal(t, "custom->standard_fallback", plan.StrategyUsed)
			assert.Equal(t, domain.DeductionIDeCo, plan.Allocations[0].Category)
			assert.Contains(t, plan.Notes[0], "invalid or empty custom order")
		})
	}
}

func TestTreatmentString(t *testing.T) {
	assert.Equal(t, "income_deduction", IncomeDeduction.String())
	assert.Equal(t, "tax_credit", TaxCredit.String())
	assert.Equal(t, "unknown", Treatment(9).String())
}

func salaried() *domain.Profile {
	return &domain.Profile{
		Taxpayer: domain.TaxpayerInput{
			GrossAnnualIncome:  yen(6000000),
			Age:                30,
			Region:             "tokyo",
			EmploymentCategory: domain.EmploymentSalaried,
		},
		Deductions: domain.DeductionInputs{},
	}
}

func newTestPlanner() *Planner {
	return NewPlanner(calculation.NewCalculationEngine(), tracker.NewTracker(nil))
}

func TestCreateStrategyContext(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	result := &domain.TaxResult{TaxableIncome: yen(3000000)}

	ctx := CreateStrategyContext(yen(100000), result, engine.IncomeTax.Brackets.Tiers(), yen(5000))

	assert.Equal(t, "3000000", ctx.TaxableIncome.String())
	assert.Equal(t, "5000", ctx.BracketBuffer.String())
	require.NotEmpty(t, ctx.BracketEdges)
	assert.Equal(t, "1950000", ctx.BracketEdges[0].String())
	for i := 1; i < len(ctx.BracketEdges); i++ {
		assert.True(t, ctx.BracketEdges[i].GreaterThan(ctx.BracketEdges[i-1]))
	}
}

func TestPlanner_Slots(t *testing.T) {
	p := newTestPlanner()
	profile := salaried()
	base, err := p.Engine.Calculate(profile)
	require.NoError(t, err)

	slots, err := p.Slots(profile, base)
	require.NoError(t, err)

	categories := make([]domain.DeductionCategory, len(slots))
	for i, s := range slots {
		categories[i] = s.Category
	}
	assert.Equal(t, []domain.DeductionCategory{
		domain.DeductionIDeCo,
		domain.DeductionHometownDonation,
		domain.DeductionLifeInsurance,
		domain.DeductionEarthquakeInsurance,
	}, categories, "Business-only deductions are not offered to employees")

	assert.Equal(t, "276000", slots[0].Headroom.String())
	assert.InDelta(t, 0.2, slots[0].SavingRate.InexactFloat64(), 0.01)
	assert.Equal(t, "78000", slots[1].Headroom.String())
	assert.Greater(t, slots[1].SavingRate.InexactFloat64(), 0.9)
	assert.Equal(t, "80000", slots[2].Headroom.String(), "Premiums past the flat tier deduct nothing")
	for _, s := range slots {
		assert.True(t, s.SavingRate.IsPositive(), "%s should save tax", s.Category)
	}
}

func TestPlanner_LifeInsuranceHeadroom(t *testing.T) {
	p := newTestPlanner()

	tests := []struct {
		name     string
		used     int64
		headroom string
	}{
		{"unused", 0, "80000"},
		{"part_used", 60000, "20000"},
		{"at_flat_tier", 80000, ""},
		{"past_flat_tier", 100000, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := salaried()
			if tt.used > 0 {
				profile.Deductions[domain.DeductionLifeInsurance] = yen(tt.used)
			}
			base, err := p.Engine.Calculate(profile)
			require.NoError(t, err)
			slots, err := p.Slots(profile, base)
			require.NoError(t, err)

			var found *Slot
			for i := range slots {
				if slots[i].Category == domain.DeductionLifeInsurance {
					found = &slots[i]
				}
			}
			if tt.headroom == "" {
				assert.Nil(t, found, "No life insurance slot once the table is flat")
				return
			}
			require.NotNil(t, found)
			assert.Equal(t, tt.headroom, found.Headroom.String())
		})
	}

	// Every yen of a custom plan that starts with life insurance saves tax.
	plan, err := p.Plan(salaried(), NewCustomStrategy([]domain.DeductionCategory{
		domain.DeductionLifeInsurance, domain.DeductionIDeCo,
	}), yen(120000), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, int64(80000), amounts(*plan)[domain.DeductionLifeInsurance])
	assert.Equal(t, int64(40000), amounts(*plan)[domain.DeductionIDeCo])
}

func TestPlanner_Plan(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.Plan(salaried(), NewStandardStrategy(), yen(300000), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, map[domain.DeductionCategory]int64{
		domain.DeductionIDeCo:            276000,
		domain.DeductionHometownDonation: 24000,
	}, amounts(*plan))
	require.NotNil(t, plan.Before)
	require.NotNil(t, plan.After)
	assert.Equal(t, "4599737", plan.Before.NetIncome.String())
	assert.True(t, plan.ActualSaving.IsPositive())
	assert.InDelta(t, plan.EstimatedSaving.InexactFloat64(), plan.ActualSaving.InexactFloat64(), 5000)
	assert.True(t, plan.After.TotalBurden().LessThan(plan.Before.TotalBurden()))
}

func TestPlanner_DonationOverRecalculatedLimit(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.Plan(salaried(), NewSavingsFirstStrategy(), yen(354000), decimal.Zero)
	require.NoError(t, err)

	require.NotEmpty(t, plan.Allocations)
	assert.Equal(t, domain.DeductionHometownDonation, plan.Allocations[0].Category)
	require.NotEmpty(t, plan.Notes)
	assert.Contains(t, plan.Notes[len(plan.Notes)-1], "exceed the recalculated limit")
}

func TestPlanner_Errors(t *testing.T) {
	p := newTestPlanner()

	_, err := p.Plan(salaried(), NewStandardStrategy(), decimal.Zero, decimal.Zero)
	assert.ErrorContains(t, err, "budget must be positive")

	_, err = p.Plan(salaried(), NewStandardStrategy(), yen(1000), yen(-1))
	assert.ErrorContains(t, err, "buffer cannot be negative")

	p.SetLogger(nil)
	assert.IsType(t, calculation.NopLogger{}, p.Logger)
}
