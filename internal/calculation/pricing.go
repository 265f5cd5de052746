package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceTier maps a credit band to a flat service fee. A tier spans
// [MinCredit, next tier's MinCredit): lower bound inclusive, upper bound
// exclusive, so every non-negative credit lands in exactly one tier and a
// credit exactly on a boundary takes the higher tier.
type PriceTier struct {
	Tier      int
	MinCredit decimal.Decimal
	Fee       decimal.Decimal
}

// PricingTable assigns service pricing tiers from the computed federal
// credit. Tiers are ordered by ascending MinCredit; the first tier starts at
// zero and the last is unbounded above.
type PricingTable struct {
	Tiers []PriceTier
}

// DefaultPricingTable returns the standard eight-tier service fee schedule.
func DefaultPricingTable() PricingTable {
	return PricingTable{Tiers: []PriceTier{
		{0, decimal.Zero, decimal.NewFromInt(500)},
		{1, decimal.NewFromInt(5000), decimal.NewFromInt(1250)},
		{2, decimal.NewFromInt(10000), decimal.NewFromInt(2500)},
		{3, decimal.NewFromInt(25000), decimal.NewFromInt(4500)},
		{4, decimal.NewFromInt(50000), decimal.NewFromInt(7500)},
		{5, decimal.NewFromInt(100000), decimal.NewFromInt(11000)},
		{6, decimal.NewFromInt(150000), decimal.NewFromInt(14500)},
		{7, decimal.NewFromInt(200000), decimal.NewFromInt(18500)},
	}}
}

// Assign returns the tier whose band contains the credit. Validation upstream
// guarantees the credit is non-negative, so the scan always lands on a tier.
func (pt PricingTable) Assign(credit decimal.Decimal) PriceTier {
	assigned := pt.Tiers[0]
	for _, tier := range pt.Tiers {
		if credit.GreaterThanOrEqual(tier.MinCredit) {
			assigned = tier
		}
	}
	return assigned
}

// Validate checks the table invariants: at least one tier, the first starting
// at zero, minimums strictly ascending, and fees never decreasing as the
// credit grows.
func (pt PricingTable) Validate() error {
	if len(pt.Tiers) == 0 {
		return fmt.Errorf("pricing table has no tiers")
	}
	if !pt.Tiers[0].MinCredit.IsZero() {
		return fmt.Errorf("first pricing tier must start at zero, got %s", pt.Tiers[0].MinCredit)
	}
	for i := 1; i < len(pt.Tiers); i++ {
		if !pt.Tiers[i].MinCredit.GreaterThan(pt.Tiers[i-1].MinCredit) {
			return fmt.Errorf("pricing tier %d minimum must exceed tier %d minimum", i, i-1)
		}
		if pt.Tiers[i].Fee.LessThan(pt.Tiers[i-1].Fee) {
			return fmt.Errorf("pricing tier %d fee is lower than tier %d fee", i, i-1)
		}
	}
	return nil
}
