package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/credstack/rdcalc/internal/domain"
)

// Builtin regime ids.
const (
	RegimeImmediateExpensing = "immediate_expensing"
	RegimeCapitalization2022 = "capitalization_2022"

	// DefaultRegimeID is used when a caller passes an empty regime id.
	DefaultRegimeID = RegimeImmediateExpensing
)

// RegimeSet is an immutable table of law regimes keyed by id. The zero value
// is unusable; construct via NewRegimeSet or DefaultRegimeSet.
type RegimeSet struct {
	regimes   map[string]domain.LawRegime
	defaultID string
}

// DefaultRegimeSet returns the builtin regime table.
//
// REGIME ASSUMPTIONS:
//
// 1. immediate_expensing reflects current law: R&D expensing restored, payroll
//    offset available up to $500,000 per year.
// 2. capitalization_2022 reflects the 2022-2024 Section 174 era: R&D costs
//    must be capitalized and amortized; the payroll offset cap predates the
//    Inflation Reduction Act increase, so $250,000.
// 3. Credit rates (6% first-time, 14% repeat ASC) and the 65% contractor
//    qualifying fraction are identical across both eras.
func DefaultRegimeSet() *RegimeSet {
	return NewRegimeSet(DefaultRegimeID,
		domain.LawRegime{
			ID:                           RegimeImmediateExpensing,
			Description:                  "Current law: immediate R&D expensing, $500k payroll offset cap",
			CapitalizationRequired:       false,
			PayrollOffsetEnabled:         true,
			MaxPayrollOffset:             decimal.NewFromInt(500000),
			CreditRateFirstTime:          decimal.NewFromFloat(0.06),
			CreditRateRepeat:             decimal.NewFromFloat(0.14),
			ContractorQualifyingFraction: decimal.NewFromFloat(0.65),
		},
		domain.LawRegime{
			ID:                           RegimeCapitalization2022,
			Description:                  "2022-2024 law: Section 174 capitalization required, $250k payroll offset cap",
			CapitalizationRequired:       true,
			PayrollOffsetEnabled:         true,
			MaxPayrollOffset:             decimal.NewFromInt(250000),
			CreditRateFirstTime:          decimal.NewFromFloat(0.06),
			CreditRateRepeat:             decimal.NewFromFloat(0.14),
			ContractorQualifyingFraction: decimal.NewFromFloat(0.65),
		},
	)
}

// NewRegimeSet builds a set from explicit regimes. The defaultID names the
// regime an empty id resolves to; it must be present in the list.
func NewRegimeSet(defaultID string, regimes ...domain.LawRegime) *RegimeSet {
	m := make(map[string]domain.LawRegime, len(regimes))
	for _, r := range regimes {
		m[r.ID] = r
	}
	return &RegimeSet{regimes: m, defaultID: defaultID}
}

// DefaultID returns the id an empty regime id resolves to.
func (rs *RegimeSet) DefaultID() string {
	return rs.defaultID
}

// Resolve maps a regime id to its parameter set. An empty id resolves to the
// set's default regime; an unknown id is a ConfigurationError.
func (rs *RegimeSet) Resolve(id string) (domain.LawRegime, error) {
	if id == "" {
		id = rs.defaultID
	}
	regime, ok := rs.regimes[id]
	if !ok {
		return domain.LawRegime{}, NewConfigurationError(id, "unknown law regime")
	}
	return regime, nil
}

// IDs returns every regime id in the set: the default first, the rest sorted.
// Listing order is stable so reports and comparisons are deterministic.
func (rs *RegimeSet) IDs() []string {
	ids := make([]string, 0, len(rs.regimes))
	for id := range rs.regimes {
		if id != rs.defaultID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return append([]string{rs.defaultID}, ids...)
}

// Regimes returns the regimes in the same order as IDs.
func (rs *RegimeSet) Regimes() []domain.LawRegime {
	ids := rs.IDs()
	out := make([]domain.LawRegime, 0, len(ids))
	for _, id := range ids {
		out = append(out, rs.regimes[id])
	}
	return out
}

// Len returns the number of regimes in the set.
func (rs *RegimeSet) Len() int {
	return len(rs.regimes)
}
