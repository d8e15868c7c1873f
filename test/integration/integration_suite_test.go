package integration

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/tedori/internal/advisor"
	"github.com/rgehrsitz/tedori/internal/config"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = []string{
	"../testdata/salaried_tokyo.yaml",
	"../testdata/freelance_blue.yaml",
	"../testdata/family_osaka.yaml",
}

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("Basic_Integration", TestBasicIntegration)
	t.Run("Error_Handling", TestErrorHandling)
	t.Run("Data_Consistency", TestDataConsistency)
}

// setupTestEnvironment keeps settings discovery away from the developer's
// own files and quiets logging.
func setupTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TEDORI_LOG_LEVEL", "error")
}

// loadFixture parses a profile with the default reference data.
func loadFixture(t *testing.T, path string) (*domain.Profile, *advisor.Advisor) {
	t.Helper()
	ref, err := config.DefaultReferenceData()
	require.NoError(t, err)
	profile, err := config.NewInputParser(ref.Regions).LoadFromFile(path)
	require.NoError(t, err, "Should load profile %s", path)
	adv, err := advisor.New(ref, 2024)
	require.NoError(t, err)
	return profile, adv
}

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("reference_figures", func(t *testing.T) {
		profile, adv := loadFixture(t, fixtures[0])
		report, err := adv.Advise(profile)
		require.NoError(t, err)

		assert.Equal(t, "4599737", report.Result.NetIncome.String())
		assert.Equal(t, "383311", report.Result.MonthlyNetIncome.String())
		assert.Equal(t, "78000", report.Result.FurusatoLimit.String())
		assert.Equal(t, "0.1", report.Result.MarginalRate.String())
	})

	t.Run("output_format_consistency", func(t *testing.T) {
		profile, adv := loadFixture(t, fixtures[0])
		report, err := adv.Advise(profile)
		require.NoError(t, err)

		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("format_%s", format), func(t *testing.T) {
				var first, second bytes.Buffer
				require.NoError(t, output.GenerateReport(&first, report, format))
				require.NoError(t, output.GenerateReport(&second, report, format))
				assert.Equal(t, first.String(), second.String(), "%s output should be stable", format)
			})
		}
	})
}

// TestIntegrationBenchmarks runs performance checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}
	setupTestEnvironment(t)

	for _, fixture := range fixtures {
		t.Run(filepath.Base(fixture), func(t *testing.T) {
			profile, adv := loadFixture(t, fixture)

			start := time.Now()
			_, err := adv.Advise(profile)
			duration := time.Since(start)

			require.NoError(t, err, "Should complete advice")
			assert.Less(t, duration, 5*time.Second, "Advice should complete within 5 seconds")
			t.Logf("Advice completed in %v", duration)
		})
	}
}
