package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// QSB ineligibility reasons. Both tests always run, so an ineligible company
// sees every reason that applies, not just the first.
const (
	ReasonRevenueTooHigh = "current year gross receipts are at or above the qualified small business revenue ceiling"
	ReasonCompanyTooOld  = "first revenue was earned more than five years before the tax year"
)

// QSBDetermination is the outcome of the qualified small business evaluation:
// the eligibility verdict, every reason it failed, and the payroll tax offset
// the company can actually apply.
type QSBDetermination struct {
	Eligible      bool
	Reasons       []string
	PayrollOffset decimal.Decimal
}

// QSBEvaluator decides qualified small business status and sizes the payroll
// tax offset under a regime's offset rules.
type QSBEvaluator struct {
	RevenueCeiling       decimal.Decimal
	MaxYearsSinceRevenue int
	PayrollOffsetEnabled bool
	MaxPayrollOffset     decimal.Decimal
}

// NewQSBEvaluator creates an evaluator with the statutory QSB thresholds
// ($5M gross receipts, five years since first revenue) and the standard
// $500k offset cap.
func NewQSBEvaluator() *QSBEvaluator {
	return &QSBEvaluator{
		RevenueCeiling:       decimal.NewFromInt(5000000),
		MaxYearsSinceRevenue: 5,
		PayrollOffsetEnabled: true,
		MaxPayrollOffset:     decimal.NewFromInt(500000),
	}
}

// NewQSBEvaluatorWithRegime creates an evaluator using the regime's payroll
// offset rules. The QSB thresholds themselves are statutory, not per-regime.
func NewQSBEvaluatorWithRegime(regime domain.LawRegime) *QSBEvaluator {
	ev := NewQSBEvaluator()
	ev.PayrollOffsetEnabled = regime.PayrollOffsetEnabled
	ev.MaxPayrollOffset = regime.MaxPayrollOffset
	return ev
}

// Evaluate runs the full determination for a validated input and an already
// computed federal credit.
func (ev *QSBEvaluator) Evaluate(input *domain.CalculationInput, credit decimal.Decimal) QSBDetermination {
	eligible, reasons := ev.Eligibility(input)
	return QSBDetermination{
		Eligible:      eligible,
		Reasons:       reasons,
		PayrollOffset: ev.PayrollOffset(input, credit, eligible),
	}
}

// Eligibility applies the two QSB tests. The revenue ceiling is exclusive: a
// company at exactly the ceiling is not a qualified small business. Both
// tests are evaluated unconditionally so the reasons list is complete.
func (ev *QSBEvaluator) Eligibility(input *domain.CalculationInput) (bool, []string) {
	var reasons []string
	if !input.CurrentYearRevenue.LessThan(ev.RevenueCeiling) {
		reasons = append(reasons, ReasonRevenueTooHigh)
	}
	if input.YearsSinceFirstRevenue() > ev.MaxYearsSinceRevenue {
		reasons = append(reasons, ReasonCompanyTooOld)
	}
	return len(reasons) == 0, reasons
}

// PayrollOffset sizes the offset: zero whenever the regime disables it, the
// company already has income tax liability to absorb the credit, or the
// company is not a QSB; otherwise the credit capped by the regime maximum and
// the annualized payroll tax actually available to offset.
func (ev *QSBEvaluator) PayrollOffset(input *domain.CalculationInput, credit decimal.Decimal, eligible bool) decimal.Decimal {
	if !ev.PayrollOffsetEnabled || input.HasIncomeTaxLiability || !eligible {
		return decimal.Zero
	}
	return decimal.Min(credit, ev.MaxPayrollOffset, input.AnnualizedPayrollTax())
}
