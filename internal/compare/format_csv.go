package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Regime",
		"Type",
		"Federal Credit",
		"Payroll Offset",
		"QSB Eligible",
		"Pricing Tier",
		"Service Fee",
		"Warnings",
		"Credit Diff from Base",
		"Credit % Change",
		"Offset Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base regime
	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	// Write alternative regimes
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, regimeType string) []string {
	return []string{
		result.RegimeID,
		regimeType,
		result.FederalCredit.StringFixed(2),
		result.PayrollTaxOffset.StringFixed(2),
		fmt.Sprintf("%t", result.IsQSBEligible),
		formatInt(result.PricingTier),
		result.PricingAmount.StringFixed(2),
		formatInt(result.WarningCount),
		result.CreditDiffFromBase.StringFixed(2),
		result.CreditPctFromBase.StringFixed(2),
		result.OffsetDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
