package integration

import (
	"testing"

	"github.com/rgehrsitz/tedori/internal/compare"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndComparison(t *testing.T) {
	profile, adv := loadFixture(t, fixtures[0])
	report, err := adv.Advise(profile)
	require.NoError(t, err)

	session := domain.ComparisonSession{
		Available: recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations),
	}
	require.GreaterOrEqual(t, len(session.Available), 3)
	for _, rec := range session.Available[:3] {
		session = session.Toggle(rec.ID)
	}

	session, err = compare.NewComparer().Compare(session)
	require.NoError(t, err)
	require.NotNil(t, session.Outcome)
	// Three picks give three pairs and the triple.
	assert.Len(t, session.Outcome.Combinations, 4)

	result, err := compare.NewComparisonReport(session)
	require.NoError(t, err)
	best := result.Best()
	require.NotNil(t, best)
	for _, combo := range result.Combinations {
		assert.True(t, best.TotalSaving.GreaterThanOrEqual(combo.TotalSaving))
	}
}

func TestSimulatedRecommendations(t *testing.T) {
	profile, adv := loadFixture(t, fixtures[0])
	report, err := adv.Advise(profile)
	require.NoError(t, err)

	simulated := 0
	for _, rec := range report.CatalogRecommendations {
		sim, err := recommend.Simulate(adv.Engine, profile, rec)
		if err != nil {
			continue
		}
		simulated++
		assert.False(t, sim.ActualSaving.IsNegative(), "%s should not raise the tax bill", rec.ID)
	}
	assert.Positive(t, simulated, "Some catalog entries map to profile changes")
}
