package domain

import (
	"github.com/shopspring/decimal"
)

// LimitSpec is one entry of the deduction-limits feed. Feeds express the
// ceiling in different shapes; Resolve picks the one that applies.
type LimitSpec struct {
	YearlyMax  *decimal.Decimal                 `yaml:"yearly_max,omitempty" json:"yearlyMax,omitempty"`
	TotalMax   *decimal.Decimal                 `yaml:"total_max,omitempty" json:"totalMax,omitempty"`
	Max        *decimal.Decimal                 `yaml:"max,omitempty" json:"max,omitempty"`
	Categories map[EmploymentCategory]LimitSpec `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// Resolve returns the ceiling for an employment category, preferring a
// category-specific entry. The bool is false when the spec carries no value.
func (l LimitSpec) Resolve(category EmploymentCategory) (decimal.Decimal, bool) {
	if nested, ok := l.Categories[category]; ok {
		if v, ok := nested.Resolve(category); ok {
			return v, true
		}
	}
	for _, v := range []*decimal.Decimal{l.YearlyMax, l.TotalMax, l.Max} {
		if v != nil {
			return *v, true
		}
	}
	return decimal.Zero, false
}

// ReferenceData is everything loaded from outside the engine: limits, the
// tips catalog and region tables. Any part may be missing.
type ReferenceData struct {
	Limits  map[DeductionCategory]LimitSpec `yaml:"limits" json:"limits"`
	Catalog []CatalogEntry                  `yaml:"catalog" json:"catalog"`
	Regions map[string]RegionProfile        `yaml:"regions" json:"regions"`
}
