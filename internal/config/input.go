package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/credstack/rdcalc/internal/calculation"
	"github.com/credstack/rdcalc/internal/domain"
)

// InputParser handles parsing of calculation input and regime table files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculation input from a YAML or JSON file, applies
// the documented defaults for the optional enum fields, and validates the
// result against the engine's input contract.
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.CalculationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&input)

	if err := calculation.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ApplyDefaults fills the optional enum fields a file may omit: business type
// defaults to other, the 280C election to full.
func (ip *InputParser) ApplyDefaults(input *domain.CalculationInput) {
	if input.BusinessType == "" {
		input.BusinessType = domain.BusinessTypeOther
	}
	if input.Section280CElection == "" {
		input.Section280CElection = domain.Election280CFull
	}
}

// regimeFile is the on-disk shape of a custom law regime table.
type regimeFile struct {
	DefaultRegime string             `yaml:"default_regime"`
	Regimes       []domain.LawRegime `yaml:"regimes"`
}

// LoadRegimeFile loads a custom regime table from a YAML file. An empty
// default_regime selects the first regime in the file. File and shape
// problems are ordinary errors; they are deployment mistakes caught at
// startup, before any calculation runs.
func (ip *InputParser) LoadRegimeFile(filename string) (*calculation.RegimeSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file regimeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.validateRegimeFile(&file); err != nil {
		return nil, fmt.Errorf("regime file validation failed: %w", err)
	}

	defaultID := file.DefaultRegime
	if defaultID == "" {
		defaultID = file.Regimes[0].ID
	}

	return calculation.NewRegimeSet(defaultID, file.Regimes...), nil
}

// validateRegimeFile checks a regime table before it is handed to the engine.
func (ip *InputParser) validateRegimeFile(file *regimeFile) error {
	if len(file.Regimes) == 0 {
		return fmt.Errorf("no regimes defined")
	}

	one := decimal.NewFromInt(1)
	seen := make(map[string]bool, len(file.Regimes))
	for i, regime := range file.Regimes {
		if regime.ID == "" {
			return fmt.Errorf("regime %d: id is required", i)
		}
		if seen[regime.ID] {
			return fmt.Errorf("regime %d: duplicate id %q", i, regime.ID)
		}
		seen[regime.ID] = true

		if regime.CreditRateFirstTime.LessThanOrEqual(decimal.Zero) || regime.CreditRateFirstTime.GreaterThan(one) {
			return fmt.Errorf("regime %q: credit_rate_first_time must be between 0 and 1", regime.ID)
		}
		if regime.CreditRateRepeat.LessThanOrEqual(decimal.Zero) || regime.CreditRateRepeat.GreaterThan(one) {
			return fmt.Errorf("regime %q: credit_rate_repeat must be between 0 and 1", regime.ID)
		}
		if regime.ContractorQualifyingFraction.LessThanOrEqual(decimal.Zero) || regime.ContractorQualifyingFraction.GreaterThan(one) {
			return fmt.Errorf("regime %q: contractor_qualifying_fraction must be between 0 and 1", regime.ID)
		}
		if regime.PayrollOffsetEnabled && regime.MaxPayrollOffset.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("regime %q: max_payroll_offset must be positive when the payroll offset is enabled", regime.ID)
		}
		if regime.MaxPayrollOffset.LessThan(decimal.Zero) {
			return fmt.Errorf("regime %q: max_payroll_offset cannot be negative", regime.ID)
		}
	}

	if file.DefaultRegime != "" && !seen[file.DefaultRegime] {
		return fmt.Errorf("default_regime %q is not defined in the file", file.DefaultRegime)
	}

	return nil
}
