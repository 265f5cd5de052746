package compare

import (
	"fmt"

	"github.com/credstack/rdcalc/internal/calculation"
	"github.com/credstack/rdcalc/internal/domain"
)

// CompareEngine orchestrates running one input across several law regimes
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseRegimeID string   // Regime deltas are measured against; empty means the table default
	RegimeIDs    []string // Regimes to include; empty means every regime in the table
}

// Compare runs the input under the base regime and every alternative, in
// table order, and computes per-regime deltas against the base.
func (ce *CompareEngine) Compare(input *domain.CalculationInput, options CompareOptions) (*ComparisonSet, error) {
	baseID := options.BaseRegimeID
	if baseID == "" {
		baseID = ce.CalcEngine.Regimes.DefaultID()
	}

	baseRegime, err := ce.CalcEngine.Regimes.Resolve(baseID)
	if err != nil {
		return nil, err
	}

	baseCalc, err := ce.CalcEngine.CalculateWithRegime(input, baseRegime)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base regime %s: %w", baseID, err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRegime, baseCalc)

	regimeIDs := options.RegimeIDs
	if len(regimeIDs) == 0 {
		regimeIDs = ce.CalcEngine.Regimes.IDs()
	}

	alternatives := []ComparisonResult{}
	for _, regimeID := range regimeIDs {
		if regimeID == baseID {
			continue
		}

		regime, err := ce.CalcEngine.Regimes.Resolve(regimeID)
		if err != nil {
			return nil, err
		}

		altCalc, err := ce.CalcEngine.CalculateWithRegime(input, regime)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate regime %s: %w", regimeID, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(regime, altCalc)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseRegimeID:       baseID,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
