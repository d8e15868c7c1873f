package recommend

import (
	"sort"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/samber/lo"
)

// Merge combines both recommenders into one list. Entries that target the
// same deduction are collapsed to the one with the larger saving, the first
// seen on ties; entries without a deduction are keyed by id. The result is
// ordered by priority.
func Merge(catalog, profile []domain.Recommendation) []domain.Recommendation {
	all := append(append([]domain.Recommendation{}, catalog...), profile...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].EstimatedAnnualSaving.GreaterThan(all[j].EstimatedAnnualSaving)
	})
	merged := lo.UniqBy(all, func(r domain.Recommendation) string {
		if r.Category != "" {
			return "category:" + string(r.Category)
		}
		return "id:" + r.ID
	})
	SortByPriority(merged)
	return merged
}
