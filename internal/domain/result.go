package domain

import (
	"github.com/shopspring/decimal"
)

// QualifiedExpenses is the per-category QRE breakdown. Total always equals
// the sum of the four components; callers can rely on the parts without
// re-adding them.
type QualifiedExpenses struct {
	Wages            decimal.Decimal `json:"wages"`
	Contractors      decimal.Decimal `json:"contractors"`
	Supplies         decimal.Decimal `json:"supplies"`
	SoftwareAndCloud decimal.Decimal `json:"software_and_cloud"`
	Total            decimal.Decimal `json:"total"`
}

// ComponentSum re-adds the four categories. It exists so consumers can check
// the breakdown invariant without duplicating the list of components.
func (qe *QualifiedExpenses) ComponentSum() decimal.Decimal {
	return qe.Wages.Add(qe.Contractors).Add(qe.Supplies).Add(qe.SoftwareAndCloud)
}

// CalculationResult is the complete output of one calculation: the QRE
// breakdown, the federal credit, the QSB determination, the service pricing
// tier, and pass-through metadata for downstream consumers. Amounts are raw
// decimals; rendering them as currency strings is the presentation layer's
// job.
type CalculationResult struct {
	QualifiedExpenses       QualifiedExpenses   `json:"qualified_expenses"`
	FederalCredit           decimal.Decimal     `json:"federal_credit"`
	IsQSBEligible           bool                `json:"is_qsb_eligible"`
	QSBIneligibilityReasons []string            `json:"qsb_ineligibility_reasons,omitempty"`
	PayrollTaxOffset        decimal.Decimal     `json:"payroll_tax_offset"`
	PricingTier             int                 `json:"pricing_tier"`
	PricingAmount           decimal.Decimal     `json:"pricing_amount"`
	Warnings                []string            `json:"warnings,omitempty"`

	// Pass-through metadata. None of it feeds back into the amounts above.
	RegimeID            string              `json:"regime_id"`
	BusinessType        BusinessType        `json:"business_type"`
	Section280CElection Section280CElection `json:"section_280c_election"`
	TaxYear             int                 `json:"tax_year"`
}

// NetBenefit returns the federal credit less the service fee for the assigned
// pricing tier.
func (cr *CalculationResult) NetBenefit() decimal.Decimal {
	return cr.FederalCredit.Sub(cr.PricingAmount)
}

// OffsetsPayrollTax reports whether any portion of the credit was directed at
// payroll tax.
func (cr *CalculationResult) OffsetsPayrollTax() bool {
	return cr.PayrollTaxOffset.GreaterThan(decimal.Zero)
}
