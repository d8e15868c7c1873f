package domain

import (
	"github.com/shopspring/decimal"
)

// ComparisonSession is the request-scoped state of the plan comparison view.
// It is passed into and returned from the comparison function; nothing keeps
// a copy between calls.
type ComparisonSession struct {
	Available []Recommendation   `json:"available"`
	Selected  []string           `json:"selected"`
	Outcome   *ComparisonOutcome `json:"outcome,omitempty"`
}

// IsSelected reports whether the recommendation id is part of the selection.
func (s ComparisonSession) IsSelected(id string) bool {
	for _, sel := range s.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Toggle returns a copy of the session with id added to or removed from the
// selection. Any previous outcome is dropped.
func (s ComparisonSession) Toggle(id string) ComparisonSession {
	next := ComparisonSession{Available: s.Available}
	found := false
	for _, sel := range s.Selected {
		if sel == id {
			found = true
			continue
		}
		next.Selected = append(next.Selected, sel)
	}
	if !found {
		next.Selected = append(next.Selected, id)
	}
	return next
}

// Combination is one evaluated group of recommendations.
type Combination struct {
	IDs          []string        `json:"ids"`
	Titles       []string        `json:"titles"`
	RawSaving    decimal.Decimal `json:"raw_saving"`
	TotalSaving  decimal.Decimal `json:"total_saving"`
	FundConflict bool            `json:"fund_conflict"`
}

// ComparisonOutcome holds every evaluated combination and the best one.
type ComparisonOutcome struct {
	Combinations []Combination `json:"combinations"`
	Recommended  int           `json:"recommended"`
}

// Best returns the recommended combination.
func (o *ComparisonOutcome) Best() *Combination {
	if o == nil || o.Recommended < 0 || o.Recommended >= len(o.Combinations) {
		return nil
	}
	return &o.Combinations[o.Recommended]
}
