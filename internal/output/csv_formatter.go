package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/credstack/rdcalc/internal/domain"
)

// CSVFormatter implements the flat summary CSV output: one row per QRE
// component, then the credit, offset and pricing summary rows.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Section", "Item", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	rows := [][]string{
		{"qre", "technical_wages", result.QualifiedExpenses.Wages.StringFixed(2)},
		{"qre", "contract_research", result.QualifiedExpenses.Contractors.StringFixed(2)},
		{"qre", "supplies", result.QualifiedExpenses.Supplies.StringFixed(2)},
		{"qre", "software_and_cloud", result.QualifiedExpenses.SoftwareAndCloud.StringFixed(2)},
		{"qre", "total", result.QualifiedExpenses.Total.StringFixed(2)},
		{"credit", "federal_credit", result.FederalCredit.StringFixed(2)},
		{"qsb", "eligible", strconv.FormatBool(result.IsQSBEligible)},
		{"qsb", "payroll_tax_offset", result.PayrollTaxOffset.StringFixed(2)},
		{"pricing", "tier", strconv.Itoa(result.PricingTier)},
		{"pricing", "fee", result.PricingAmount.StringFixed(2)},
		{"pricing", "net_benefit", result.NetBenefit().StringFixed(2)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
