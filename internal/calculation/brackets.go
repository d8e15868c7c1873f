package calculation

import (
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// BracketTable evaluates a progressive rate table. Tables are pure data so a
// statutory amendment only touches the rules, never this code.
type BracketTable struct {
	Name  string
	tiers []domain.BracketTier
}

// NewBracketTable validates tiers and wraps them.
func NewBracketTable(name string, tiers []domain.BracketTier) (*BracketTable, error) {
	t := &BracketTable{Name: name, tiers: append([]domain.BracketTier(nil), tiers...)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that bounds strictly increase and only the last tier is open.
func (t *BracketTable) Validate() error {
	if len(t.tiers) == 0 {
		return &CalculationError{Operation: "bracket_table", Message: fmt.Sprintf("%s: table is empty", t.Name)}
	}
	prev := decimal.Zero
	for i, tier := range t.tiers {
		last := i == len(t.tiers)-1
		if tier.UpTo == nil {
			if !last {
				return &CalculationError{Operation: "bracket_table", Message: fmt.Sprintf("%s: tier %d is unbounded but not last", t.Name, i)}
			}
			continue
		}
		if last {
			return &CalculationError{Operation: "bracket_table", Message: fmt.Sprintf("%s: last tier must be unbounded", t.Name)}
		}
		if tier.UpTo.LessThanOrEqual(prev) {
			return &CalculationError{Operation: "bracket_table", Message: fmt.Sprintf("%s: tier %d bound %s does not increase", t.Name, i, tier.UpTo)}
		}
		prev = *tier.UpTo
	}
	return nil
}

func (t *BracketTable) tierFor(value decimal.Decimal) domain.BracketTier {
	for _, tier := range t.tiers {
		if tier.UpTo == nil || value.LessThanOrEqual(*tier.UpTo) {
			return tier
		}
	}
	return t.tiers[len(t.tiers)-1]
}

// Apply returns rate*value - subtraction for the tier containing value.
// Negative values are treated as zero.
func (t *BracketTable) Apply(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		value = decimal.Zero
	}
	tier := t.tierFor(value)
	return value.Mul(tier.Rate).Sub(tier.Subtraction)
}

// Rate returns the marginal rate of the tier containing value.
func (t *BracketTable) Rate(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		value = decimal.Zero
	}
	return t.tierFor(value).Rate
}

// Tiers returns a copy of the underlying rows.
func (t *BracketTable) Tiers() []domain.BracketTier {
	return append([]domain.BracketTier(nil), t.tiers...)
}
