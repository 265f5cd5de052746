package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credstack/rdcalc/internal/domain"
)

func firstTimeFilerInput() *domain.CalculationInput {
	return &domain.CalculationInput{
		BusinessType:           domain.BusinessTypeSoftware,
		CurrentYearRevenue:     decimal.NewFromInt(3200000),
		YearOfFirstRevenue:     2021,
		QuarterlyPayrollTax:    decimal.NewFromInt(30000),
		TechnicalEmployeeCount: 4,
		AverageTechnicalSalary: decimal.NewFromInt(120000),
		RDAllocationPercent:    decimal.NewFromInt(75),
		ContractorCosts:        decimal.NewFromInt(80000),
		SuppliesCosts:          decimal.NewFromInt(10000),
		SoftwareCosts:          decimal.NewFromInt(12000),
		CloudCosts:             decimal.NewFromInt(8000),
		IsFirstTimeFiler:       true,
		Section280CElection:    domain.Election280CFull,
		TaxYear:                2025,
	}
}

func TestEngineFirstTimeFilerEndToEnd(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Calculate(firstTimeFilerInput(), "")
	require.NoError(t, err)

	// Wages 4 x 120000 x 75% = 360000; contractors 80000 x 65% = 52000;
	// supplies 10000; software+cloud 20000; total 442000.
	assert.True(t, result.QualifiedExpenses.Wages.Equal(decimal.NewFromInt(360000)),
		"Expected wages 360000, got %s", result.QualifiedExpenses.Wages)
	assert.True(t, result.QualifiedExpenses.Total.Equal(decimal.NewFromInt(442000)),
		"Expected total 442000, got %s", result.QualifiedExpenses.Total)
	assert.True(t, result.QualifiedExpenses.Total.Equal(result.QualifiedExpenses.ComponentSum()),
		"Breakdown must add up exactly")

	// 6% of 442000.
	assert.True(t, result.FederalCredit.Equal(decimal.NewFromInt(26520)),
		"Expected credit 26520, got %s", result.FederalCredit)

	// Young company under the revenue ceiling, no liability: the whole
	// credit offsets payroll (well under both caps).
	assert.True(t, result.IsQSBEligible)
	assert.Empty(t, result.QSBIneligibilityReasons)
	assert.True(t, result.PayrollTaxOffset.Equal(decimal.NewFromInt(26520)),
		"Expected offset 26520, got %s", result.PayrollTaxOffset)

	// 26520 falls in the [25000, 50000) band.
	assert.Equal(t, 3, result.PricingTier)
	assert.True(t, result.PricingAmount.Equal(decimal.NewFromInt(4500)),
		"Expected fee 4500, got %s", result.PricingAmount)

	assert.Equal(t, RegimeImmediateExpensing, result.RegimeID)
	assert.Equal(t, domain.BusinessTypeSoftware, result.BusinessType)
	assert.Equal(t, domain.Election280CFull, result.Section280CElection)
	assert.Equal(t, 2025, result.TaxYear)
	assert.Empty(t, result.Warnings)
}

func TestEngineRepeatFilerEndToEnd(t *testing.T) {
	engine := NewCalculationEngine()
	input := &domain.CalculationInput{
		CurrentYearRevenue:  decimal.NewFromInt(2000000),
		YearOfFirstRevenue:  2022,
		QuarterlyPayrollTax: decimal.NewFromInt(50000),
		SuppliesCosts:       decimal.NewFromInt(100000),
		IsFirstTimeFiler:    false,
		PriorYearQREs: []decimal.Decimal{
			decimal.NewFromInt(40000),
			decimal.NewFromInt(40000),
			decimal.NewFromInt(40000),
		},
		TaxYear: 2025,
	}

	result, err := engine.Calculate(input, "")
	require.NoError(t, err)

	// base = avg(40000 x3) * 0.5 = 20000; excess = 80000; credit = 11200.
	assert.True(t, result.FederalCredit.Equal(decimal.NewFromInt(11200)),
		"Expected credit 11200, got %s", result.FederalCredit)
	assert.Equal(t, 2, result.PricingTier)
}

func TestEngineUnknownRegime(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.Calculate(firstTimeFilerInput(), "no_such_regime")
	require.Error(t, err)

	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr), "expected a ConfigurationError, got %T", err)
}

func TestEngineValidationErrorPropagates(t *testing.T) {
	engine := NewCalculationEngine()
	input := firstTimeFilerInput()
	input.ContractorCosts = decimal.NewFromInt(-5)

	_, err := engine.Calculate(input, "")
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr), "expected a ValidationError, got %T", err)
	assert.Equal(t, "contractor_costs", valErr.Field)
}

func TestEngineCapitalizationWarning(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Calculate(firstTimeFilerInput(), RegimeCapitalization2022)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningCapitalization, result.Warnings[0])
}

func TestEngineShortHistoryWarning(t *testing.T) {
	engine := NewCalculationEngine()
	input := firstTimeFilerInput()
	input.IsFirstTimeFiler = false
	input.PriorYearQREs = []decimal.Decimal{decimal.NewFromInt(30000)}

	result, err := engine.Calculate(input, "")
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningShortPriorHistory, result.Warnings[0])
}

func TestEngineWarningOrder(t *testing.T) {
	// Regime warnings come before input-shape warnings, always in the same
	// order for the same input.
	engine := NewCalculationEngine()
	input := firstTimeFilerInput()
	input.IsFirstTimeFiler = false
	input.PriorYearQREs = nil

	result, err := engine.Calculate(input, RegimeCapitalization2022)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, WarningCapitalization, result.Warnings[0])
	assert.Equal(t, WarningShortPriorHistory, result.Warnings[1])
}

func TestEngineMetadataDefaults(t *testing.T) {
	engine := NewCalculationEngine()
	input := firstTimeFilerInput()
	input.BusinessType = ""
	input.Section280CElection = ""

	result, err := engine.Calculate(input, "")
	require.NoError(t, err)

	assert.Equal(t, domain.BusinessTypeOther, result.BusinessType)
	assert.Equal(t, domain.Election280CFull, result.Section280CElection)
}

func TestEngineZeroInput(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.Calculate(&domain.CalculationInput{}, "")
	require.NoError(t, err)

	assert.True(t, result.QualifiedExpenses.Total.IsZero())
	assert.True(t, result.FederalCredit.IsZero())
	assert.True(t, result.PayrollTaxOffset.IsZero())
	assert.Equal(t, 0, result.PricingTier)
	assert.True(t, result.PricingAmount.Equal(decimal.NewFromInt(500)),
		"Zero credit still gets the first-tier fee, got %s", result.PricingAmount)

	// Zero revenue and zero company age both pass the QSB tests.
	assert.True(t, result.IsQSBEligible)
}

func TestEngineResultsAreIdempotent(t *testing.T) {
	engine := NewCalculationEngine()
	input := firstTimeFilerInput()

	first, err := engine.Calculate(input, "")
	require.NoError(t, err)
	second, err := engine.Calculate(input, "")
	require.NoError(t, err)

	assert.Equal(t, first, second, "Identical input must produce identical results")
}

func TestEngineNonNegativityEverywhere(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := []*domain.CalculationInput{
		{},
		firstTimeFilerInput(),
		{
			SuppliesCosts: decimal.NewFromInt(1000),
			PriorYearQREs: []decimal.Decimal{
				decimal.NewFromInt(9000000),
				decimal.NewFromInt(9000000),
				decimal.NewFromInt(9000000),
			},
			TaxYear: 2025,
		},
	}

	for _, input := range inputs {
		result, err := engine.Calculate(input, "")
		require.NoError(t, err)
		assert.False(t, result.QualifiedExpenses.Total.IsNegative())
		assert.False(t, result.FederalCredit.IsNegative())
		assert.False(t, result.PayrollTaxOffset.IsNegative())
		assert.False(t, result.PricingAmount.IsNegative())
		assert.GreaterOrEqual(t, result.PricingTier, 0)
	}
}

func TestEngineCreditMonotonicity(t *testing.T) {
	// Raising an expense input never lowers the credit.
	engine := NewCalculationEngine()
	base := firstTimeFilerInput()

	baseResult, err := engine.Calculate(base, "")
	require.NoError(t, err)

	raised := base.Clone()
	raised.SuppliesCosts = raised.SuppliesCosts.Add(decimal.NewFromInt(50000))

	raisedResult, err := engine.Calculate(raised, "")
	require.NoError(t, err)

	assert.True(t, raisedResult.FederalCredit.GreaterThanOrEqual(baseResult.FederalCredit),
		"Credit fell from %s to %s after raising supplies", baseResult.FederalCredit, raisedResult.FederalCredit)
}

func TestEngineWithCustomRegimeSet(t *testing.T) {
	offsetless := domain.LawRegime{
		ID:                           "no_offset",
		PayrollOffsetEnabled:         false,
		MaxPayrollOffset:             decimal.Zero,
		CreditRateFirstTime:          decimal.NewFromFloat(0.06),
		CreditRateRepeat:             decimal.NewFromFloat(0.14),
		ContractorQualifyingFraction: decimal.NewFromFloat(0.65),
	}
	engine := NewCalculationEngineWithRegimes(NewRegimeSet("no_offset", offsetless))

	result, err := engine.Calculate(firstTimeFilerInput(), "")
	require.NoError(t, err)

	assert.True(t, result.IsQSBEligible, "Eligibility is still determined when the offset is disabled")
	assert.True(t, result.PayrollTaxOffset.IsZero(),
		"Expected zero offset under an offset-disabled regime, got %s", result.PayrollTaxOffset)
}

func TestEngineCalculateWithRegimeSkipsResolution(t *testing.T) {
	engine := NewCalculationEngine()
	regime, err := engine.Regimes.Resolve(RegimeCapitalization2022)
	require.NoError(t, err)

	result, err := engine.CalculateWithRegime(firstTimeFilerInput(), regime)
	require.NoError(t, err)
	assert.Equal(t, RegimeCapitalization2022, result.RegimeID)
}
