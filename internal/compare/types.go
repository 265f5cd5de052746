package compare

import (
	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// ComparisonResult represents one input calculated under one law regime,
// with metrics measured against the base regime
type ComparisonResult struct {
	RegimeID    string                    `json:"regimeID"`
	Description string                    `json:"description"`
	Result      *domain.CalculationResult `json:"result"`

	// Key Metrics
	FederalCredit    decimal.Decimal `json:"federalCredit"`
	PayrollTaxOffset decimal.Decimal `json:"payrollTaxOffset"`
	IsQSBEligible    bool            `json:"isQSBEligible"`
	PricingTier      int             `json:"pricingTier"`
	PricingAmount    decimal.Decimal `json:"pricingAmount"`
	WarningCount     int             `json:"warningCount"`

	// Comparison to Base
	CreditDiffFromBase decimal.Decimal `json:"creditDiffFromBase"`
	CreditPctFromBase  decimal.Decimal `json:"creditPctFromBase"`
	OffsetDiffFromBase decimal.Decimal `json:"offsetDiffFromBase"`
	WarningCountDiff   int             `json:"warningCountDiff"`
}

// ComparisonSet represents one input run across a whole regime table
type ComparisonSet struct {
	BaseRegimeID       string             `json:"baseRegimeID"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath"`
}

// MetricsCalculator extracts comparison metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one regime's result
func (mc *MetricsCalculator) CalculateMetrics(regime domain.LawRegime, result *domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		RegimeID:         regime.ID,
		Description:      regime.Description,
		Result:           result,
		FederalCredit:    result.FederalCredit,
		PayrollTaxOffset: result.PayrollTaxOffset,
		IsQSBEligible:    result.IsQSBEligible,
		PricingTier:      result.PricingTier,
		PricingAmount:    result.PricingAmount,
		WarningCount:     len(result.Warnings),
	}
}

// CalculateComparison computes delta metrics between a regime result and the base
func (mc *MetricsCalculator) CalculateComparison(alternative, base ComparisonResult) ComparisonResult {
	alternative.CreditDiffFromBase = alternative.FederalCredit.Sub(base.FederalCredit)

	if !base.FederalCredit.IsZero() {
		alternative.CreditPctFromBase = alternative.CreditDiffFromBase.
			Div(base.FederalCredit).
			Mul(decimal.NewFromInt(100))
	}

	alternative.OffsetDiffFromBase = alternative.PayrollTaxOffset.Sub(base.PayrollTaxOffset)
	alternative.WarningCountDiff = alternative.WarningCount - base.WarningCount

	return alternative
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find highest federal credit
	bestCredit := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FederalCredit.GreaterThan(bestCredit.FederalCredit) {
			bestCredit = alt
		}
	}

	if bestCredit != compSet.BaseResult {
		creditDiff := bestCredit.FederalCredit.Sub(compSet.BaseResult.FederalCredit)
		recommendations = append(recommendations,
			"Best Credit: "+bestCredit.RegimeID+" yields $"+creditDiff.StringFixed(0)+
				" more federal credit than the base regime")
	}

	// Find highest payroll tax offset
	bestOffset := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PayrollTaxOffset.GreaterThan(bestOffset.PayrollTaxOffset) {
			bestOffset = alt
		}
	}

	if bestOffset != compSet.BaseResult {
		offsetDiff := bestOffset.PayrollTaxOffset.Sub(compSet.BaseResult.PayrollTaxOffset)
		recommendations = append(recommendations,
			"Best Offset: "+bestOffset.RegimeID+" allows $"+offsetDiff.StringFixed(0)+
				" more payroll tax offset than the base regime")
	}

	// Find fewest warnings
	fewestWarnings := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.WarningCount < fewestWarnings.WarningCount {
			fewestWarnings = alt
		}
	}

	if fewestWarnings != compSet.BaseResult {
		recommendations = append(recommendations,
			"Fewest Caveats: "+fewestWarnings.RegimeID+" carries the fewest warnings")
	}

	return recommendations
}
