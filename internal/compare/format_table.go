package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("R&D TAX CREDIT REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Regime: %s\n", compSet.BaseRegimeID))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.InputPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 25
	numWidth := 15

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Regime",
		numWidth, "Federal Credit",
		numWidth, "Payroll Offset",
		numWidth, "Service Fee",
		numWidth, "Warnings"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base regime row
	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	// Alternative regimes
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.RegimeID))

			// Credit difference
			creditSymbol := tf.deltaSymbol(alt.CreditDiffFromBase)
			sb.WriteString(fmt.Sprintf("  Federal Credit:   %s$%s (%s%%)\n",
				creditSymbol,
				tf.formatDecimal(alt.CreditDiffFromBase.Abs()),
				alt.CreditPctFromBase.StringFixed(1)))

			// Offset difference
			if !alt.OffsetDiffFromBase.IsZero() {
				offsetSymbol := tf.deltaSymbol(alt.OffsetDiffFromBase)
				sb.WriteString(fmt.Sprintf("  Payroll Offset:   %s$%s\n",
					offsetSymbol,
					tf.formatDecimal(alt.OffsetDiffFromBase.Abs())))
			}

			// Warning count difference
			if alt.WarningCountDiff != 0 {
				warningSymbol := "+"
				if alt.WarningCountDiff < 0 {
					warningSymbol = ""
				}
				sb.WriteString(fmt.Sprintf("  Warnings:         %s%d\n",
					warningSymbol, alt.WarningCountDiff))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single regime row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.RegimeID
	if isBase {
		name += " (base)"
	}

	warningStr := fmt.Sprintf("%d", result.WarningCount)
	if result.WarningCount == 0 {
		warningStr = "none"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.FederalCredit),
		numWidth, "$"+tf.formatDecimal(result.PayrollTaxOffset),
		numWidth, "$"+tf.formatDecimal(result.PricingAmount),
		numWidth, warningStr)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		// Format in millions
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each regime
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseRegimeID))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		creditChange := "="
		if alt.CreditDiffFromBase.IsPositive() {
			creditChange = fmt.Sprintf("+$%s", tf.formatDecimal(alt.CreditDiffFromBase))
		} else if alt.CreditDiffFromBase.IsNegative() {
			creditChange = fmt.Sprintf("-$%s", tf.formatDecimal(alt.CreditDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.RegimeID, creditChange))
	}

	return sb.String()
}
