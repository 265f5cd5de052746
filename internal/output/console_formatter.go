package output

import (
	"bytes"
	"fmt"

	"github.com/credstack/rdcalc/internal/domain"
)

// ConsoleFormatter renders the detailed sectioned text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "R&D TAX CREDIT ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Tax Year:      %d\n", result.TaxYear)
	fmt.Fprintf(&buf, "Law Regime:    %s\n", result.RegimeID)
	fmt.Fprintf(&buf, "Business Type: %s\n", result.BusinessType)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%s\n", businessNarrative(result.BusinessType))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "QUALIFIED RESEARCH EXPENSES")
	fmt.Fprintln(&buf, "===========================")
	fmt.Fprintf(&buf, "  Technical Wages:        %s\n", FormatCurrency(result.QualifiedExpenses.Wages))
	fmt.Fprintf(&buf, "  Contract Research:      %s\n", FormatCurrency(result.QualifiedExpenses.Contractors))
	fmt.Fprintf(&buf, "  Supplies:               %s\n", FormatCurrency(result.QualifiedExpenses.Supplies))
	fmt.Fprintf(&buf, "  Software & Cloud:       %s\n", FormatCurrency(result.QualifiedExpenses.SoftwareAndCloud))
	fmt.Fprintf(&buf, "  TOTAL QRE:              %s\n", FormatCurrency(result.QualifiedExpenses.Total))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FEDERAL CREDIT")
	fmt.Fprintln(&buf, "==============")
	fmt.Fprintf(&buf, "  Federal Credit:         %s\n", FormatCurrency(result.FederalCredit))
	fmt.Fprintf(&buf, "  Section 280C Election:  %s\n", result.Section280CElection)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PAYROLL TAX OFFSET")
	fmt.Fprintln(&buf, "==================")
	fmt.Fprintf(&buf, "  QSB Eligible:           %t\n", result.IsQSBEligible)
	if len(result.QSBIneligibilityReasons) > 0 {
		for _, reason := range result.QSBIneligibilityReasons {
			fmt.Fprintf(&buf, "  • %s\n", reason)
		}
	}
	fmt.Fprintf(&buf, "  Payroll Tax Offset:     %s\n", FormatCurrency(result.PayrollTaxOffset))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SERVICE PRICING")
	fmt.Fprintln(&buf, "===============")
	fmt.Fprintf(&buf, "  Pricing Tier:           %d\n", result.PricingTier)
	fmt.Fprintf(&buf, "  Service Fee:            %s\n", FormatCurrency(result.PricingAmount))
	fmt.Fprintf(&buf, "  Net Benefit:            %s\n", FormatCurrency(result.NetBenefit()))
	fmt.Fprintln(&buf)

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, "========")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&buf, "  • %s\n", warning)
		}
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

// businessNarrative is the one-line industry framing shown under the report
// header; business type influences no calculated amount.
func businessNarrative(businessType domain.BusinessType) string {
	switch businessType {
	case domain.BusinessTypeSoftware:
		return "Qualifying software activities typically include new feature development, platform engineering, and technical experimentation."
	case domain.BusinessTypeBiotech:
		return "Qualifying biotech activities typically include laboratory research, assay development, and preclinical experimentation."
	case domain.BusinessTypeHardware:
		return "Qualifying hardware activities typically include prototype design, component testing, and engineering iteration."
	case domain.BusinessTypeManufacturing:
		return "Qualifying manufacturing activities typically include process development, tooling design, and production trials."
	case domain.BusinessTypeServices:
		return "Qualifying services activities typically include custom technical development and internal tooling research."
	default:
		return "Qualifying activities are those resolving technical uncertainty through a process of experimentation."
	}
}
