package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonReport is the display form of an evaluated comparison session
type ComparisonReport struct {
	Selected     []domain.Recommendation `json:"selected"`
	Combinations []domain.Combination    `json:"combinations"`
	Recommended  int                     `json:"recommended"`
	Notes        []string                `json:"notes"`
}

// NewComparisonReport builds the report for a session that has been compared
func NewComparisonReport(session domain.ComparisonSession) (*ComparisonReport, error) {
	if session.Outcome == nil {
		return nil, fmt.Errorf("comparison session has no outcome; run Compare first")
	}

	report := &ComparisonReport{
		Combinations: session.Outcome.Combinations,
		Recommended:  session.Outcome.Recommended,
	}
	for _, rec := range session.Available {
		if session.IsSelected(rec.ID) {
			report.Selected = append(report.Selected, rec)
		}
	}
	report.Notes = GenerateNotes(report)
	return report, nil
}

// Best returns the recommended combination, or nil for an empty report
func (r *ComparisonReport) Best() *domain.Combination {
	if r.Recommended < 0 || r.Recommended >= len(r.Combinations) {
		return nil
	}
	return &r.Combinations[r.Recommended]
}

// GenerateNotes writes the short findings shown under the comparison table
func GenerateNotes(report *ComparisonReport) []string {
	notes := []string{}

	best := report.Best()
	if best == nil {
		return notes
	}
	notes = append(notes, fmt.Sprintf("Recommended: %s saves %s a year",
		strings.Join(best.Titles, " + "), domain.FormatYen(best.TotalSaving)))

	for _, combo := range report.Combinations {
		if !combo.FundConflict {
			continue
		}
		notes = append(notes, fmt.Sprintf("%s draws on the same savings budget; %s taken off the simple sum",
			strings.Join(combo.Titles, " + "), domain.FormatYen(combo.RawSaving.Sub(combo.TotalSaving))))
	}

	// Point out when a single pick beats the best group.
	for _, rec := range report.Selected {
		if rec.EstimatedAnnualSaving.GreaterThan(best.TotalSaving) {
			notes = append(notes, fmt.Sprintf("%s alone saves more than any compared combination", rec.Title))
		}
	}
	return notes
}

// Uplift is how much the recommended combination adds over the best single pick.
func (r *ComparisonReport) Uplift() decimal.Decimal {
	best := r.Best()
	if best == nil {
		return decimal.Zero
	}
	single := decimal.Zero
	for _, rec := range r.Selected {
		if rec.EstimatedAnnualSaving.GreaterThan(single) {
			single = rec.EstimatedAnnualSaving
		}
	}
	return best.TotalSaving.Sub(single)
}
