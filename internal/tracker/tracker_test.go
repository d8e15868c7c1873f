package tracker

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ownerProfile(deductions domain.DeductionInputs) *domain.Profile {
	return &domain.Profile{
		Taxpayer: domain.TaxpayerInput{
			GrossAnnualIncome:  d(8000000),
			Age:                40,
			EmploymentCategory: domain.EmploymentSelfEmployed,
			FilingType:         domain.FilingBlue,
		},
		Deductions: deductions,
	}
}

func statusFor(t *testing.T, statuses []domain.DeductionStatus, c domain.DeductionCategory) domain.DeductionStatus {
	t.Helper()
	for _, s := range statuses {
		if s.Category == c {
			return s
		}
	}
	require.Failf(t, "missing status", "no status for %s", c)
	return domain.DeductionStatus{}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		used, limit int64
		expected    domain.UsageClass
	}{
		{0, 840000, domain.UsageUnused},
		{840000, 840000, domain.UsageExcellent},
		{900000, 840000, domain.UsageExcellent},
		{588000, 840000, domain.UsageGood},
		{587999, 840000, domain.UsageWarning},
		{252000, 840000, domain.UsageWarning},
		{251999, 840000, domain.UsageDanger},
		{1, 0, domain.UsageExcellent},
		{0, 0, domain.UsageUnused},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.used, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(d(tt.used), d(tt.limit)))
		})
	}
}

func TestTrack_OwnerSeesEveryCategory(t *testing.T) {
	tracker := NewTracker(nil)

	statuses := tracker.Track(ownerProfile(domain.DeductionInputs{
		domain.DeductionBlueFiling:             d(650000),
		domain.DeductionSmallBusinessMutualAid: d(300000),
		domain.DeductionIDeCo:                  d(816000),
	}))

	require.Len(t, statuses, 7)
	assert.Equal(t, domain.DeductionBlueFiling, statuses[0].Category, "Display order starts with blue filing")

	blue := statusFor(t, statuses, domain.DeductionBlueFiling)
	assert.Equal(t, domain.UsageExcellent, blue.UsageClass)
	assert.Equal(t, "Fully used", blue.Message)

	aid := statusFor(t, statuses, domain.DeductionSmallBusinessMutualAid)
	assert.Equal(t, "840000", aid.Limit.String())
	assert.Equal(t, "540000", aid.Remaining.String())
	assert.Equal(t, domain.UsageWarning, aid.UsageClass)
	assert.Equal(t, "¥540,000 of headroom left", aid.Message)

	ideco := statusFor(t, statuses, domain.DeductionIDeCo)
	assert.Equal(t, "816000", ideco.Limit.String(), "Business owners get the higher iDeCo ceiling")
	assert.Equal(t, domain.UsageExcellent, ideco.UsageClass)

	safety := statusFor(t, statuses, domain.DeductionManagementSafetyMutualAid)
	assert.Equal(t, domain.UsageUnused, safety.UsageClass)
	assert.Contains(t, safety.Message, "Unused")
}

func TestTrack_EmployeeSkipsBusinessCategories(t *testing.T) {
	tracker := NewTracker(nil)
	profile := &domain.Profile{
		Taxpayer: domain.TaxpayerInput{
			GrossAnnualIncome:  d(6000000),
			Age:                30,
			EmploymentCategory: domain.EmploymentSalaried,
		},
		Deductions: domain.DeductionInputs{domain.DeductionIDeCo: d(144000)},
	}

	statuses := tracker.Track(profile)

	require.Len(t, statuses, 4)
	ideco := statusFor(t, statuses, domain.DeductionIDeCo)
	assert.Equal(t, "276000", ideco.Limit.String())
	assert.Equal(t, "132000", ideco.Remaining.String())
	assert.Equal(t, "0.5217", ideco.UsageRatio.String())
	assert.Equal(t, domain.UsageWarning, ideco.UsageClass)
}

func TestTrack_HometownDonationHasNoLimit(t *testing.T) {
	tracker := NewTracker(nil)

	unused := tracker.Status(domain.DeductionHometownDonation, ownerProfile(nil))
	assert.Nil(t, unused.Limit)
	assert.Nil(t, unused.Remaining)
	assert.Equal(t, domain.UsageUnused, unused.UsageClass)

	used := tracker.Status(domain.DeductionHometownDonation, ownerProfile(domain.DeductionInputs{
		domain.DeductionHometownDonation: d(50000),
	}))
	assert.Equal(t, domain.UsageGood, used.UsageClass)
	assert.Equal(t, "In use (¥50,000 donated)", used.Message)
}

func TestTrack_WhiteFilerHasNoBlueAllowance(t *testing.T) {
	tracker := NewTracker(nil)
	profile := ownerProfile(nil)
	profile.Taxpayer.FilingType = domain.FilingWhite

	blue := tracker.Status(domain.DeductionBlueFiling, profile)

	assert.True(t, blue.Limit.IsZero())
	assert.True(t, blue.Remaining.IsZero())
	assert.Equal(t, domain.UsageUnused, blue.UsageClass)
	assert.Contains(t, blue.Message, "blue filing")
}

func TestTrack_RemainingNeverNegative(t *testing.T) {
	tracker := NewTracker(nil)

	quake := tracker.Status(domain.DeductionEarthquakeInsurance, ownerProfile(domain.DeductionInputs{
		domain.DeductionEarthquakeInsurance: d(80000),
	}))

	assert.True(t, quake.Remaining.IsZero())
	assert.Equal(t, domain.UsageExcellent, quake.UsageClass)
}

func TestTrack_FeedOverridesAndFallsBack(t *testing.T) {
	custom := d(700000)
	tracker := NewTracker(map[domain.DeductionCategory]domain.LimitSpec{
		domain.DeductionSmallBusinessMutualAid: {YearlyMax: &custom},
		domain.DeductionLifeInsurance:          {}, // present but empty
	})
	logger := &recordingLogger{}
	tracker.SetLogger(logger)

	profile := ownerProfile(domain.DeductionInputs{domain.DeductionLifeInsurance: d(120000)})
	aid := tracker.Status(domain.DeductionSmallBusinessMutualAid, profile)
	life := tracker.Status(domain.DeductionLifeInsurance, profile)
	safety := tracker.Status(domain.DeductionManagementSafetyMutualAid, profile)

	assert.Equal(t, "700000", aid.Limit.String(), "Feed value wins")
	assert.Equal(t, "120000", life.Limit.String(), "Empty entry falls back to the default")
	assert.Equal(t, "2400000", safety.Limit.String(), "Missing entry falls back to the default")
	assert.Len(t, logger.debug, 2, "Fallbacks are logged at debug level only")
}

func TestTracker_SetLogger(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.SetLogger(nil)
	assert.NotNil(t, tracker.Logger)
}

type recordingLogger struct {
	debug []string
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Infof(string, ...interface{})  {}
func (r *recordingLogger) Warnf(string, ...interface{})  {}
func (r *recordingLogger) Errorf(string, ...interface{}) {}

func TestTracker_Limit(t *testing.T) {
	tracker := NewTracker(nil)
	tp := ownerProfile(nil).Taxpayer

	_, ok := tracker.Limit(domain.DeductionHometownDonation, tp)
	assert.False(t, ok, "Hometown donation ceiling depends on income")

	v, ok := tracker.Limit(domain.DeductionManagementSafetyMutualAid, tp)
	assert.True(t, ok)
	assert.Equal(t, "2400000", v.String())

	tp.FilingType = domain.FilingWhite
	v, ok = tracker.Limit(domain.DeductionBlueFiling, tp)
	assert.True(t, ok)
	assert.True(t, v.IsZero())
}
