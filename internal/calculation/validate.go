package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// MaxPriorYearEntries is how many prior-year QREs the ASC lookback considers.
const MaxPriorYearEntries = 3

// ValidateInput checks a calculation input against the engine's contract and
// returns a ValidationError naming the first offending field. The engine
// rejects bad inputs outright rather than clamping them; a zero-valued input
// is fine and yields a zero result.
//
// Empty business type and 280C election are accepted here: they mean the
// caller skipped the optional fields, and the composer falls back to the
// documented defaults (other / full).
func ValidateInput(input *domain.CalculationInput) error {
	if input == nil {
		return NewValidationError("input", "calculation input is required")
	}

	if input.BusinessType != "" && !input.BusinessType.Valid() {
		return NewValidationError("business_type", fmt.Sprintf("unknown business type %q", input.BusinessType))
	}
	if input.CurrentYearRevenue.LessThan(decimal.Zero) {
		return NewValidationError("current_year_revenue", "cannot be negative")
	}
	if input.QuarterlyPayrollTax.LessThan(decimal.Zero) {
		return NewValidationError("quarterly_payroll_tax", "cannot be negative")
	}
	if input.TechnicalEmployeeCount < 0 {
		return NewValidationError("technical_employee_count", "cannot be negative")
	}
	if input.AverageTechnicalSalary.LessThan(decimal.Zero) {
		return NewValidationError("average_technical_salary", "cannot be negative")
	}
	if input.RDAllocationPercent.LessThan(decimal.Zero) || input.RDAllocationPercent.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("rd_allocation_percentage", "must be between 0 and 100")
	}
	if input.ContractorCosts.LessThan(decimal.Zero) {
		return NewValidationError("contractor_costs", "cannot be negative")
	}
	if input.SuppliesCosts.LessThan(decimal.Zero) {
		return NewValidationError("supplies_costs", "cannot be negative")
	}
	if input.SoftwareCosts.LessThan(decimal.Zero) {
		return NewValidationError("software_costs", "cannot be negative")
	}
	if input.CloudCosts.LessThan(decimal.Zero) {
		return NewValidationError("cloud_costs", "cannot be negative")
	}
	if len(input.PriorYearQREs) > MaxPriorYearEntries {
		return NewValidationError("prior_year_qres", fmt.Sprintf("at most %d prior year entries are considered, got %d", MaxPriorYearEntries, len(input.PriorYearQREs)))
	}
	for i, qre := range input.PriorYearQREs {
		if qre.LessThan(decimal.Zero) {
			return NewValidationError("prior_year_qres", fmt.Sprintf("entry %d cannot be negative", i))
		}
	}
	if input.Section280CElection != "" && !input.Section280CElection.Valid() {
		return NewValidationError("section_280c_election", fmt.Sprintf("must be %q or %q", domain.Election280CFull, domain.Election280CReduced))
	}
	if input.TaxYear < input.YearOfFirstRevenue {
		return NewValidationError("tax_year", "cannot be earlier than year of first revenue")
	}

	return nil
}
