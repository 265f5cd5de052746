package domain

import (
	"github.com/shopspring/decimal"
)

// BusinessType categorizes the filing business. It has no effect on any
// computed amount; downstream report narratives are its only consumer.
type BusinessType string

const (
	BusinessTypeSoftware      BusinessType = "software"
	BusinessTypeBiotech       BusinessType = "biotech"
	BusinessTypeHardware      BusinessType = "hardware"
	BusinessTypeManufacturing BusinessType = "manufacturing"
	BusinessTypeServices      BusinessType = "services"
	BusinessTypeOther         BusinessType = "other"
)

// Valid reports whether bt is one of the recognized business categories.
func (bt BusinessType) Valid() bool {
	switch bt {
	case BusinessTypeSoftware, BusinessTypeBiotech, BusinessTypeHardware,
		BusinessTypeManufacturing, BusinessTypeServices, BusinessTypeOther:
		return true
	}
	return false
}

// Section280CElection selects how the taxpayer intends to coordinate the
// credit with the wage deduction. The election rides through the calculation
// untouched: downstream form preparation interprets it, the credit math never
// does.
type Section280CElection string

const (
	Election280CFull    Section280CElection = "full"
	Election280CReduced Section280CElection = "reduced"
)

// Valid reports whether e is a recognized election.
func (e Section280CElection) Valid() bool {
	return e == Election280CFull || e == Election280CReduced
}

// CalculationInput captures one business's activity and expense profile for a
// single tax year. All currency fields are annual USD amounts unless noted.
type CalculationInput struct {
	BusinessType           BusinessType        `yaml:"business_type" json:"business_type"`
	CurrentYearRevenue     decimal.Decimal     `yaml:"current_year_revenue" json:"current_year_revenue"`
	YearOfFirstRevenue     int                 `yaml:"year_of_first_revenue" json:"year_of_first_revenue"`
	HasIncomeTaxLiability  bool                `yaml:"has_income_tax_liability" json:"has_income_tax_liability"`
	QuarterlyPayrollTax    decimal.Decimal     `yaml:"quarterly_payroll_tax" json:"quarterly_payroll_tax"` // per-quarter employer payroll tax
	TechnicalEmployeeCount int                 `yaml:"technical_employee_count" json:"technical_employee_count"`
	AverageTechnicalSalary decimal.Decimal     `yaml:"average_technical_salary" json:"average_technical_salary"`
	RDAllocationPercent    decimal.Decimal     `yaml:"rd_allocation_percentage" json:"rd_allocation_percentage"` // 0-100
	ContractorCosts        decimal.Decimal     `yaml:"contractor_costs" json:"contractor_costs"`
	SuppliesCosts          decimal.Decimal     `yaml:"supplies_costs" json:"supplies_costs"`
	SoftwareCosts          decimal.Decimal     `yaml:"software_costs" json:"software_costs"`
	CloudCosts             decimal.Decimal     `yaml:"cloud_costs" json:"cloud_costs"`
	PriorYearQREs          []decimal.Decimal   `yaml:"prior_year_qres" json:"prior_year_qres"` // most recent first, max 3
	IsFirstTimeFiler       bool                `yaml:"is_first_time_filer" json:"is_first_time_filer"`
	Section280CElection    Section280CElection `yaml:"section_280c_election" json:"section_280c_election"`
	TaxYear                int                 `yaml:"tax_year" json:"tax_year"`
}

// AnnualizedPayrollTax returns the employer payroll tax projected over four
// quarters, the ceiling the payroll offset can be applied against.
func (ci *CalculationInput) AnnualizedPayrollTax() decimal.Decimal {
	return ci.QuarterlyPayrollTax.Mul(decimal.NewFromInt(4))
}

// YearsSinceFirstRevenue returns the company age in tax years, counting the
// first-revenue year as zero.
func (ci *CalculationInput) YearsSinceFirstRevenue() int {
	return ci.TaxYear - ci.YearOfFirstRevenue
}

// TotalDirectCosts sums the non-wage expense inputs before any qualifying
// fraction is applied.
func (ci *CalculationInput) TotalDirectCosts() decimal.Decimal {
	return ci.ContractorCosts.Add(ci.SuppliesCosts).Add(ci.SoftwareCosts).Add(ci.CloudCosts)
}

// Clone returns a deep copy of the input. Sweep and comparison code mutates
// copies, never the caller's value.
func (ci *CalculationInput) Clone() *CalculationInput {
	out := *ci
	if ci.PriorYearQREs != nil {
		out.PriorYearQREs = make([]decimal.Decimal, len(ci.PriorYearQREs))
		copy(out.PriorYearQREs, ci.PriorYearQREs)
	}
	return &out
}
