package calculation

import (
	"testing"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newFurusatoSolver() *FurusatoSolver {
	rules := domain.DefaultTaxRules2024()
	return NewFurusatoSolver(rules.ResidentTax, rules.IncomeTax.SurtaxMultiplier)
}

func TestFurusatoSolver_Limit(t *testing.T) {
	solver := newFurusatoSolver()

	tests := []struct {
		name     string
		portion  int64
		marginal float64
		expected string
	}{
		{"10% bracket", 304560, 0.10, "78000"},
		{"20% bracket", 441800, 0.20, "128000"},
		{"5% bracket", 150000, 0.05, "37000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solver.Limit(d(tt.portion), decimal.NewFromFloat(tt.marginal))
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestFurusatoSolver_FloorsToThousand(t *testing.T) {
	solver := newFurusatoSolver()

	for _, portion := range []int64{1, 12345, 99999, 777777} {
		got := solver.Limit(d(portion), decimal.NewFromFloat(0.2))
		assert.True(t, got.Mod(d(1000)).IsZero(), "limit %s should be a multiple of 1,000", got)
	}
}

func TestFurusatoSolver_EdgeCases(t *testing.T) {
	solver := newFurusatoSolver()

	assert.True(t, solver.Limit(d(0), decimal.NewFromFloat(0.1)).IsZero(), "No income portion means no limit")
	assert.True(t, solver.Limit(d(-100), decimal.NewFromFloat(0.1)).IsZero())

	// 0.9 / 1.021 is about 0.8815; anything above drives the denominator negative.
	assert.Equal(t, "2000", solver.Limit(d(500000), decimal.NewFromFloat(0.95)).String(),
		"Non-positive denominator returns the self-pay amount")
}
