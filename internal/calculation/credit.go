package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// ascBasePercentage is the statutory Alternative Simplified Credit base: 50%
// of the prior three-year average QRE. Unlike the credit rates it is not a
// regime parameter.
var ascBasePercentage = decimal.NewFromFloat(0.5)

// CreditCalculator computes the federal R&D credit from aggregated QREs using
// the Alternative Simplified Credit method.
type CreditCalculator struct {
	FirstTimeRate decimal.Decimal
	RepeatRate    decimal.Decimal
}

// NewCreditCalculator creates a calculator with the standard ASC rates
// (6% first-time, 14% repeat).
func NewCreditCalculator() *CreditCalculator {
	return &CreditCalculator{
		FirstTimeRate: decimal.NewFromFloat(0.06),
		RepeatRate:    decimal.NewFromFloat(0.14),
	}
}

// NewCreditCalculatorWithRegime creates a calculator using the regime's
// credit rates.
func NewCreditCalculatorWithRegime(regime domain.LawRegime) *CreditCalculator {
	return &CreditCalculator{
		FirstTimeRate: regime.CreditRateFirstTime,
		RepeatRate:    regime.CreditRateRepeat,
	}
}

// Calculate returns the federal credit for the given input and QRE total.
// The first-time-filer flag alone selects the branch; an empty prior-year
// history under the repeat branch simply produces a zero base.
func (cc *CreditCalculator) Calculate(input *domain.CalculationInput, expenses domain.QualifiedExpenses) decimal.Decimal {
	if input.IsFirstTimeFiler {
		return expenses.Total.Mul(cc.FirstTimeRate)
	}

	base := cc.ASCBase(input.PriorYearQREs)
	excess := expenses.Total.Sub(base)
	if excess.LessThan(decimal.Zero) {
		excess = decimal.Zero
	}
	return excess.Mul(cc.RepeatRate)
}

// ASCBase returns 50% of the three-year average of prior QREs. The average
// always divides by three: years the caller did not supply count as zero, so
// a short history shrinks the base rather than the window.
func (cc *CreditCalculator) ASCBase(priorYearQREs []decimal.Decimal) decimal.Decimal {
	var sum decimal.Decimal
	for _, qre := range priorYearQREs {
		sum = sum.Add(qre)
	}

	average := sum.Div(decimal.NewFromInt(MaxPriorYearEntries))
	base := average.Mul(ascBasePercentage)
	if base.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return base
}
