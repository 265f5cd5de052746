package domain

import (
	"github.com/shopspring/decimal"
)

// LawRegime contains the tax-law parameters that apply uniformly to every
// calculation run under it. Regimes are resolved once per calculation from a
// regime table; the engine treats the resolved value as read-only.
type LawRegime struct {
	ID                           string          `yaml:"id" json:"id"`
	Description                  string          `yaml:"description" json:"description"`
	CapitalizationRequired       bool            `yaml:"capitalization_required" json:"capitalization_required"`
	PayrollOffsetEnabled         bool            `yaml:"payroll_offset_enabled" json:"payroll_offset_enabled"`
	MaxPayrollOffset             decimal.Decimal `yaml:"max_payroll_offset" json:"max_payroll_offset"`
	CreditRateFirstTime          decimal.Decimal `yaml:"credit_rate_first_time" json:"credit_rate_first_time"`
	CreditRateRepeat             decimal.Decimal `yaml:"credit_rate_repeat" json:"credit_rate_repeat"`
	ContractorQualifyingFraction decimal.Decimal `yaml:"contractor_qualifying_fraction" json:"contractor_qualifying_fraction"`
}
