package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// SweepParameter defines a single-parameter sweep: which input field to vary
// and the inclusive range to vary it over.
type SweepParameter struct {
	Name     string          `json:"name"`
	MinValue decimal.Decimal `json:"min_value"`
	MaxValue decimal.Decimal `json:"max_value"`
	Steps    int             `json:"steps"`
}

// SensitivityResult captures one sweep step: the parameter value, the full
// calculation at that value, and the credit movement relative to the
// unmodified input.
type SensitivityResult struct {
	ParameterValue  decimal.Decimal           `json:"parameter_value"`
	Result          *domain.CalculationResult `json:"result"`
	CreditChange    decimal.Decimal           `json:"credit_change"`
	CreditChangePct decimal.Decimal           `json:"credit_change_pct"`
}

// SensitivityAnalysis is a completed sweep: the base (unmodified) result and
// one entry per parameter value, plus the credit range observed.
type SensitivityAnalysis struct {
	Parameter    SweepParameter            `json:"parameter"`
	BaseResult   *domain.CalculationResult `json:"base_result"`
	Results      []SensitivityResult       `json:"results"`
	MinCredit    decimal.Decimal           `json:"min_credit"`
	MaxCredit    decimal.Decimal           `json:"max_credit"`
	CreditSpread decimal.Decimal           `json:"credit_spread"`
}

// SensitivityAnalyzer sweeps one input parameter across a range and reruns
// the full calculation at each step. The base input is never mutated; every
// step works on a copy.
type SensitivityAnalyzer struct {
	engine *CalculationEngine
}

// NewSensitivityAnalyzer creates an analyzer with a default engine.
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: NewCalculationEngine()}
}

// NewSensitivityAnalyzerWithEngine creates an analyzer over an existing
// engine, keeping its regime table and pricing schedule.
func NewSensitivityAnalyzerWithEngine(engine *CalculationEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// SweepableParameters lists the input fields a sweep can vary.
func SweepableParameters() []string {
	return []string{
		"rd_allocation_percentage",
		"average_technical_salary",
		"technical_employee_count",
		"contractor_costs",
		"supplies_costs",
		"software_costs",
		"cloud_costs",
		"quarterly_payroll_tax",
		"current_year_revenue",
	}
}

// AnalyzeParameter runs the sweep under the given regime id. The base result
// is computed from the unmodified input; each step's deltas are relative to
// it.
func (sa *SensitivityAnalyzer) AnalyzeParameter(input *domain.CalculationInput, regimeID string, param SweepParameter) (*SensitivityAnalysis, error) {
	if param.Steps < 2 {
		return nil, fmt.Errorf("sweep requires at least 2 steps, got %d", param.Steps)
	}
	if param.MinValue.GreaterThan(param.MaxValue) {
		return nil, fmt.Errorf("sweep minimum %s exceeds maximum %s", param.MinValue, param.MaxValue)
	}

	baseResult, err := sa.engine.Calculate(input, regimeID)
	if err != nil {
		return nil, fmt.Errorf("base calculation failed: %w", err)
	}

	values := sa.generateParameterValues(param)
	results := make([]SensitivityResult, 0, len(values))

	minCredit := decimal.Zero
	maxCredit := decimal.Zero
	for i, value := range values {
		modified, err := sa.applyParameterValue(input, param.Name, value)
		if err != nil {
			return nil, err
		}

		result, err := sa.engine.Calculate(modified, regimeID)
		if err != nil {
			return nil, fmt.Errorf("calculation failed for %s=%s: %w", param.Name, value, err)
		}

		change := result.FederalCredit.Sub(baseResult.FederalCredit)
		changePct := decimal.Zero
		if !baseResult.FederalCredit.IsZero() {
			changePct = change.Div(baseResult.FederalCredit).Mul(decimal.NewFromInt(100))
		}

		results = append(results, SensitivityResult{
			ParameterValue:  value,
			Result:          result,
			CreditChange:    change,
			CreditChangePct: changePct,
		})

		if i == 0 || result.FederalCredit.LessThan(minCredit) {
			minCredit = result.FederalCredit
		}
		if i == 0 || result.FederalCredit.GreaterThan(maxCredit) {
			maxCredit = result.FederalCredit
		}
	}

	return &SensitivityAnalysis{
		Parameter:    param,
		BaseResult:   baseResult,
		Results:      results,
		MinCredit:    minCredit,
		MaxCredit:    maxCredit,
		CreditSpread: maxCredit.Sub(minCredit),
	}, nil
}

// generateParameterValues produces evenly spaced values across the inclusive
// [min, max] range.
func (sa *SensitivityAnalyzer) generateParameterValues(param SweepParameter) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// applyParameterValue returns a copy of the input with one field replaced.
// Integer fields truncate the swept value.
func (sa *SensitivityAnalyzer) applyParameterValue(input *domain.CalculationInput, paramName string, value decimal.Decimal) (*domain.CalculationInput, error) {
	modified := input.Clone()

	switch paramName {
	case "rd_allocation_percentage":
		modified.RDAllocationPercent = value
	case "average_technical_salary":
		modified.AverageTechnicalSalary = value
	case "technical_employee_count":
		modified.TechnicalEmployeeCount = int(value.IntPart())
	case "contractor_costs":
		modified.ContractorCosts = value
	case "supplies_costs":
		modified.SuppliesCosts = value
	case "software_costs":
		modified.SoftwareCosts = value
	case "cloud_costs":
		modified.CloudCosts = value
	case "quarterly_payroll_tax":
		modified.QuarterlyPayrollTax = value
	case "current_year_revenue":
		modified.CurrentYearRevenue = value
	default:
		return nil, fmt.Errorf("unknown sweep parameter %q (supported: %v)", paramName, SweepableParameters())
	}

	return modified, nil
}
