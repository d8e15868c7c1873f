package compare

import (
	"testing"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, title string, kind domain.RecommendationKind, saving int64) domain.Recommendation {
	return domain.Recommendation{
		ID:                    id,
		Title:                 title,
		Kind:                  kind,
		EstimatedAnnualSaving: decimal.NewFromInt(saving),
	}
}

func available() []domain.Recommendation {
	return []domain.Recommendation{
		rec("ideco", "iDeCo", domain.KindRetirementAccount, 55200),
		rec("nisa", "NISA", domain.KindInvestmentAccount, 12189),
		rec("furusato", "Furusato", domain.KindDonation, 21400),
		rec("life", "Life insurance", domain.KindInsurance, 24252),
		rec("small_assets", "Small assets", domain.KindOther, 15000),
	}
}

func totals(outcome *domain.ComparisonOutcome) []string {
	out := make([]string, 0, len(outcome.Combinations))
	for _, c := range outcome.Combinations {
		out = append(out, c.TotalSaving.String())
	}
	return out
}

func TestCompare_CapsAtFiveInEnumerationOrder(t *testing.T) {
	session := domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"ideco", "nisa", "furusato", "life", "small_assets"},
	}

	got, err := Compare(session)
	require.NoError(t, err)
	require.NotNil(t, got.Outcome)

	combos := got.Outcome.Combinations
	require.Len(t, combos, 5)
	assert.Equal(t, []string{"ideco", "nisa"}, combos[0].IDs)
	assert.Equal(t, []string{"ideco", "furusato"}, combos[1].IDs)
	assert.Equal(t, []string{"ideco", "life"}, combos[2].IDs)
	assert.Equal(t, []string{"ideco", "small_assets"}, combos[3].IDs)
	assert.Equal(t, []string{"nisa", "furusato"}, combos[4].IDs)

	assert.Equal(t, []string{"60650", "76600", "79452", "70200", "33589"}, totals(got.Outcome))
	assert.Equal(t, 2, got.Outcome.Recommended)
	assert.Equal(t, []string{"iDeCo", "Life insurance"}, got.Outcome.Best().Titles)
}

func TestCompare_ThreeSelectedIncludesTriple(t *testing.T) {
	session := domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"ideco", "nisa", "furusato"},
	}

	got, err := Compare(session)
	require.NoError(t, err)

	combos := got.Outcome.Combinations
	require.Len(t, combos, 4)
	assert.Equal(t, []string{"ideco", "nisa", "furusato"}, combos[3].IDs)
	assert.Equal(t, "88789", combos[3].RawSaving.String())
	assert.Equal(t, "79910", combos[3].TotalSaving.String(), "floor(88,789 x 0.9)")
	assert.True(t, combos[3].FundConflict)
	assert.Equal(t, 3, got.Outcome.Recommended)
}

func TestCompare_FundConflictHaircut(t *testing.T) {
	session := domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"ideco", "nisa"},
	}

	got, err := Compare(session)
	require.NoError(t, err)
	require.Len(t, got.Outcome.Combinations, 1)

	combo := got.Outcome.Combinations[0]
	sum := decimal.NewFromInt(55200 + 12189)
	assert.True(t, combo.FundConflict)
	assert.True(t, combo.TotalSaving.LessThanOrEqual(sum.Mul(decimal.NewFromFloat(0.9))),
		"Mixing retirement and investment accounts must cost at least 10%%, got %s", combo.TotalSaving)
}

func TestCompare_NoConflictIsPlainSum(t *testing.T) {
	session := domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"furusato", "life"},
	}

	got, err := Compare(session)
	require.NoError(t, err)

	combo := got.Outcome.Combinations[0]
	assert.False(t, combo.FundConflict)
	assert.True(t, combo.TotalSaving.Equal(combo.RawSaving))
	assert.Equal(t, "45652", combo.TotalSaving.String())
}

func TestCompare_FirstMaximumWinsTies(t *testing.T) {
	session := domain.ComparisonSession{
		Available: []domain.Recommendation{
			rec("x", "X", domain.KindOther, 100),
			rec("y", "Y", domain.KindOther, 100),
			rec("z", "Z", domain.KindOther, 0),
		},
		Selected: []string{"x", "y", "z"},
	}

	got, err := Compare(session)
	require.NoError(t, err)

	assert.Equal(t, []string{"200", "100", "100", "200"}, totals(got.Outcome))
	assert.Equal(t, 0, got.Outcome.Recommended)
}

func TestCompare_SelectionOrderDoesNotMatter(t *testing.T) {
	session := domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"life", "ideco"},
	}

	got, err := Compare(session)
	require.NoError(t, err)
	assert.Equal(t, []string{"ideco", "life"}, got.Outcome.Combinations[0].IDs)
	assert.Equal(t, []string{"life", "ideco"}, got.Selected, "Selection is carried through unchanged")
}

func TestCompare_Errors(t *testing.T) {
	_, err := Compare(domain.ComparisonSession{Available: available(), Selected: []string{"ideco"}})
	assert.ErrorIs(t, err, ErrTooFewSelected)

	_, err = Compare(domain.ComparisonSession{Available: available()})
	assert.ErrorIs(t, err, ErrTooFewSelected)

	got, err := Compare(domain.ComparisonSession{Available: available(), Selected: []string{"ideco", "ghost"}})
	var unknown *UnknownSelectionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.ID)
	assert.Nil(t, got.Outcome)
}

func TestCompare_DoesNotMutateInput(t *testing.T) {
	session := domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"ideco", "furusato"},
	}

	got, err := Compare(session)
	require.NoError(t, err)

	assert.Nil(t, session.Outcome, "The caller's session keeps no hidden result")
	assert.NotNil(t, got.Outcome)

	// Toggling drops the stale outcome.
	next := got.Toggle("life")
	assert.Nil(t, next.Outcome)
	assert.Equal(t, []string{"ideco", "furusato", "life"}, next.Selected)
}

func TestComparer_CustomLimits(t *testing.T) {
	c := NewComparer()
	c.MaxSize = 2
	c.MaxCombinations = 100
	c.SetLogger(nil)

	got, err := c.Compare(domain.ComparisonSession{
		Available: available(),
		Selected:  []string{"ideco", "nisa", "furusato", "life"},
	})
	require.NoError(t, err)
	assert.Len(t, got.Outcome.Combinations, 6, "C(4,2) pairs only")
}

func TestHasFundConflict(t *testing.T) {
	recs := available()
	assert.True(t, HasFundConflict(recs))
	assert.False(t, HasFundConflict(recs[:1]))
	assert.False(t, HasFundConflict(recs[1:]))
}
