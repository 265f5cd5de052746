package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// EngineVersion identifies the calculation semantics; report envelopes carry
// it so stored reports can be traced to the rules that produced them.
const EngineVersion = "1.2.0"

// Warnings appended by the result composer. Order is fixed: regime warnings
// first, then input-shape warnings.
const (
	WarningCapitalization = "current law requires R&D costs to be capitalized and amortized rather than deducted immediately; credit amounts shown do not reflect amortization timing"

	WarningShortPriorHistory = "fewer than three prior-year QRE amounts were provided; missing years count as zero in the ASC base, which raises the computed credit"
)

// CalculationEngine orchestrates a full credit calculation: validation, law
// regime resolution, QRE aggregation, the federal credit, the QSB payroll
// offset determination, and pricing tier assignment. Engines are stateless
// between calls and safe for concurrent use; per-calculation calculators are
// built from the resolved regime on every call.
type CalculationEngine struct {
	Regimes *RegimeSet
	Pricing PricingTable
	Debug   bool // enable per-step debug output through the attached logger

	logger Logger
}

// NewCalculationEngine creates an engine with the builtin regime table and
// the standard pricing schedule.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Regimes: DefaultRegimeSet(),
		Pricing: DefaultPricingTable(),
	}
}

// NewCalculationEngineWithRegimes creates an engine over a custom regime
// table, typically one loaded from a regimes file at startup.
func NewCalculationEngineWithRegimes(regimes *RegimeSet) *CalculationEngine {
	return &CalculationEngine{
		Regimes: regimes,
		Pricing: DefaultPricingTable(),
	}
}

// SetLogger attaches a diagnostics logger. Call it during process setup,
// before the engine is shared across goroutines.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.logger = l
}

func (ce *CalculationEngine) log() Logger {
	if ce.logger == nil {
		return nopLogger{}
	}
	return ce.logger
}

// Calculate validates the input, resolves the regime id against the engine's
// regime table, and runs the calculation. An empty regime id selects the
// table's default regime.
func (ce *CalculationEngine) Calculate(input *domain.CalculationInput, regimeID string) (*domain.CalculationResult, error) {
	regime, err := ce.Regimes.Resolve(regimeID)
	if err != nil {
		return nil, err
	}
	return ce.CalculateWithRegime(input, regime)
}

// CalculateWithRegime runs the calculation under an already resolved regime.
// Callers that resolve a regime once at startup use this to skip table
// lookups on the hot path.
func (ce *CalculationEngine) CalculateWithRegime(input *domain.CalculationInput, regime domain.LawRegime) (*domain.CalculationResult, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	expenseCalc := NewQualifiedExpenseCalculatorWithRegime(regime)
	creditCalc := NewCreditCalculatorWithRegime(regime)
	qsbEval := NewQSBEvaluatorWithRegime(regime)

	expenses := expenseCalc.Calculate(input)
	credit := creditCalc.Calculate(input, expenses)
	qsb := qsbEval.Evaluate(input, credit)
	tier := ce.Pricing.Assign(credit)

	if ce.Debug {
		ce.log().Debugf("regime=%s qre_total=%s credit=%s offset=%s tier=%d",
			regime.ID, expenses.Total, credit, qsb.PayrollOffset, tier.Tier)
	}

	return ce.composeResult(input, regime, expenses, credit, qsb, tier), nil
}

// composeResult assembles the final record. Every call returns a fresh value;
// nothing references the engine's internals afterwards.
func (ce *CalculationEngine) composeResult(input *domain.CalculationInput, regime domain.LawRegime,
	expenses domain.QualifiedExpenses, credit decimal.Decimal, qsb QSBDetermination, tier PriceTier) *domain.CalculationResult {

	result := &domain.CalculationResult{
		QualifiedExpenses:       expenses,
		FederalCredit:           credit,
		IsQSBEligible:           qsb.Eligible,
		QSBIneligibilityReasons: append([]string(nil), qsb.Reasons...),
		PayrollTaxOffset:        qsb.PayrollOffset,
		PricingTier:             tier.Tier,
		PricingAmount:           tier.Fee,
		RegimeID:                regime.ID,
		BusinessType:            input.BusinessType,
		Section280CElection:     input.Section280CElection,
		TaxYear:                 input.TaxYear,
	}

	// Unspecified optional enums fall back to the documented defaults so the
	// metadata is always populated for downstream consumers.
	if result.BusinessType == "" {
		result.BusinessType = domain.BusinessTypeOther
	}
	if result.Section280CElection == "" {
		result.Section280CElection = domain.Election280CFull
	}

	if regime.CapitalizationRequired {
		result.Warnings = append(result.Warnings, WarningCapitalization)
	}
	if !input.IsFirstTimeFiler && len(input.PriorYearQREs) < MaxPriorYearEntries {
		result.Warnings = append(result.Warnings, WarningShortPriorHistory)
	}

	return result
}
