package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/tedori/internal/allocation"
	"github.com/rgehrsitz/tedori/internal/compare"
	"github.com/rgehrsitz/tedori/internal/config"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/output"
	"github.com/rgehrsitz/tedori/internal/recommend"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicIntegration tests basic end-to-end functionality
func TestBasicIntegration(t *testing.T) {
	for _, fixture := range fixtures {
		t.Run(filepath.Base(fixture), func(t *testing.T) {
			profile, adv := loadFixture(t, fixture)

			report, err := adv.Advise(profile)
			require.NoError(t, err, "Should advise successfully")
			require.NotNil(t, report.Result)

			r := report.Result
			assert.True(t, r.NetIncome.IsPositive(), "Take-home should be positive")
			assert.True(t, r.NetIncome.LessThan(r.GrossIncome), "Take-home should be below gross")
			assert.True(t, r.EffectiveRate.IsPositive())
			assert.Equal(t, profile.Taxpayer.Region, r.Region)
			assert.NotEmpty(t, report.DeductionStatuses, "Should track deductions")
			assert.NotEmpty(t, report.Assumptions, "Should state assumptions")

			var buf bytes.Buffer
			for _, format := range output.AvailableFormatterNames() {
				buf.Reset()
				require.NoError(t, output.GenerateReport(&buf, report, format), "Should generate %s output", format)
				assert.NotZero(t, buf.Len(), "%s output should not be empty", format)
			}
		})
	}
}

func TestBusinessOwnerPipeline(t *testing.T) {
	profile, adv := loadFixture(t, fixtures[1])
	require.True(t, profile.Taxpayer.IsBlueFiler())

	report, err := adv.Advise(profile)
	require.NoError(t, err)

	tracked := make([]domain.DeductionCategory, len(report.DeductionStatuses))
	for i, s := range report.DeductionStatuses {
		tracked[i] = s.Category
	}
	assert.Contains(t, tracked, domain.DeductionSmallBusinessMutualAid, "Owners see business deductions")
	assert.True(t, report.Result.SocialInsurance.NationalScheme, "Owners pay national insurance")

	planner := allocation.NewPlanner(adv.Engine, adv.Tracker)
	plan, err := planner.Plan(profile, allocation.NewBracketFillStrategy(), decimal.NewFromInt(500000), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, plan.ActualSaving.IsPositive())
	assert.Equal(t, "bracket_fill", plan.StrategyUsed)
}

// TestErrorHandling checks that bad inputs fail at the edges
func TestErrorHandling(t *testing.T) {
	ref, err := config.DefaultReferenceData()
	require.NoError(t, err)
	parser := config.NewInputParser(ref.Regions)

	t.Run("missing_file", func(t *testing.T) {
		_, err := parser.LoadFromFile("../testdata/does_not_exist.yaml")
		assert.Error(t, err)
	})

	t.Run("unknown_region", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("taxpayer:\n  gross_annual_income: 5000000\n  age: 30\n  region: atlantis\n  employment_category: salaried\n"), 0o644))
		_, err := parser.LoadFromFile(path)
		assert.ErrorContains(t, err, "region")
	})

	t.Run("too_few_to_compare", func(t *testing.T) {
		profile, adv := loadFixture(t, fixtures[0])
		report, err := adv.Advise(profile)
		require.NoError(t, err)

		session := domain.ComparisonSession{
			Available: recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations),
		}
		session = session.Toggle(session.Available[0].ID)
		_, err = compare.NewComparer().Compare(session)
		assert.ErrorIs(t, err, compare.ErrTooFewSelected)
	})
}

// TestDataConsistency checks that the views of one run agree with each other
func TestDataConsistency(t *testing.T) {
	profile, adv := loadFixture(t, fixtures[2])

	first, err := adv.Advise(profile)
	require.NoError(t, err)
	second, err := adv.Advise(profile)
	require.NoError(t, err)
	assert.Equal(t, first.Result, second.Result, "Advice should be deterministic")

	var buf bytes.Buffer
	require.NoError(t, output.GenerateReport(&buf, first, "json"))
	var decoded struct {
		Result struct {
			NetIncome string `json:"net_income"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, first.Result.NetIncome.String(), decoded.Result.NetIncome)

	r := first.Result
	assert.True(t, r.NetIncome.Equal(r.GrossIncome.Sub(r.TotalBurden()).Sub(r.HousingDeduction)),
		"Take-home is gross less taxes, premiums and company housing")
}
