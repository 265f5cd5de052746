package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// QRE CALCULATION ASSUMPTIONS:
//
// 1. Wages: headcount x average salary is an estimate, not a payroll pull.
//    The R&D allocation percentage prorates the whole technical wage base;
//    per-employee allocation detail is outside this engine.
// 2. Contractors: only 65% of contract research qualifies (Section 41(b)(3)),
//    configurable per regime.
// 3. Supplies qualify at 100%; so do software and cloud costs, which are
//    combined into one reporting category.
// 4. No expense category is capped against another; the total is a plain sum.

// QualifiedExpenseCalculator converts raw expense inputs into the qualified
// research expense breakdown under a regime's qualifying rules.
type QualifiedExpenseCalculator struct {
	ContractorQualifyingFraction decimal.Decimal
}

// NewQualifiedExpenseCalculator creates a calculator with the standard 65%
// contractor qualifying fraction.
func NewQualifiedExpenseCalculator() *QualifiedExpenseCalculator {
	return &QualifiedExpenseCalculator{
		ContractorQualifyingFraction: decimal.NewFromFloat(0.65),
	}
}

// NewQualifiedExpenseCalculatorWithRegime creates a calculator using the
// regime's contractor qualifying fraction.
func NewQualifiedExpenseCalculatorWithRegime(regime domain.LawRegime) *QualifiedExpenseCalculator {
	return &QualifiedExpenseCalculator{
		ContractorQualifyingFraction: regime.ContractorQualifyingFraction,
	}
}

// Calculate aggregates the four QRE categories. Inputs are assumed validated;
// every component and the total are non-negative for non-negative inputs.
func (qc *QualifiedExpenseCalculator) Calculate(input *domain.CalculationInput) domain.QualifiedExpenses {
	wages := qc.QualifiedWages(input)
	contractors := input.ContractorCosts.Mul(qc.ContractorQualifyingFraction)
	supplies := input.SuppliesCosts
	softwareAndCloud := input.SoftwareCosts.Add(input.CloudCosts)

	return domain.QualifiedExpenses{
		Wages:            wages,
		Contractors:      contractors,
		Supplies:         supplies,
		SoftwareAndCloud: softwareAndCloud,
		Total:            wages.Add(contractors).Add(supplies).Add(softwareAndCloud),
	}
}

// QualifiedWages prorates the technical wage base by the R&D allocation
// percentage: count x salary x (allocation / 100).
func (qc *QualifiedExpenseCalculator) QualifiedWages(input *domain.CalculationInput) decimal.Decimal {
	wageBase := decimal.NewFromInt(int64(input.TechnicalEmployeeCount)).Mul(input.AverageTechnicalSalary)
	return wageBase.Mul(input.RDAllocationPercent.Div(decimal.NewFromInt(100)))
}
