package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credstack/rdcalc/internal/domain"
)

func TestResolveDefaultRegime(t *testing.T) {
	set := DefaultRegimeSet()

	regime, err := set.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, RegimeImmediateExpensing, regime.ID)
	assert.False(t, regime.CapitalizationRequired)
	assert.True(t, regime.PayrollOffsetEnabled)
	assert.True(t, regime.MaxPayrollOffset.Equal(decimal.NewFromInt(500000)))
	assert.True(t, regime.CreditRateFirstTime.Equal(decimal.NewFromFloat(0.06)))
	assert.True(t, regime.CreditRateRepeat.Equal(decimal.NewFromFloat(0.14)))
	assert.True(t, regime.ContractorQualifyingFraction.Equal(decimal.NewFromFloat(0.65)))
}

func TestResolveCapitalizationRegime(t *testing.T) {
	set := DefaultRegimeSet()

	regime, err := set.Resolve(RegimeCapitalization2022)
	require.NoError(t, err)
	assert.True(t, regime.CapitalizationRequired)
	assert.True(t, regime.MaxPayrollOffset.Equal(decimal.NewFromInt(250000)))
}

func TestResolveUnknownRegime(t *testing.T) {
	set := DefaultRegimeSet()

	_, err := set.Resolve("section_174_2099")
	require.Error(t, err)

	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr), "expected a ConfigurationError, got %T", err)
	assert.Equal(t, "section_174_2099", confErr.RegimeID)
}

func TestRegimeIDsListDefaultFirst(t *testing.T) {
	set := DefaultRegimeSet()

	ids := set.IDs()
	require.Len(t, ids, 2)
	assert.Equal(t, RegimeImmediateExpensing, ids[0])
	assert.Equal(t, RegimeCapitalization2022, ids[1])
}

func TestCustomRegimeSet(t *testing.T) {
	custom := NewRegimeSet("sandbox",
		domain.LawRegime{
			ID:                           "sandbox",
			PayrollOffsetEnabled:         false,
			CreditRateFirstTime:          decimal.NewFromFloat(0.05),
			CreditRateRepeat:             decimal.NewFromFloat(0.10),
			ContractorQualifyingFraction: decimal.NewFromFloat(0.50),
		})

	regime, err := custom.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "sandbox", regime.ID)
	assert.False(t, regime.PayrollOffsetEnabled)

	_, err = custom.Resolve(RegimeImmediateExpensing)
	assert.Error(t, err, "builtin ids must not leak into custom sets")
}

func TestRegimesListingMatchesIDs(t *testing.T) {
	set := DefaultRegimeSet()

	regimes := set.Regimes()
	ids := set.IDs()
	require.Equal(t, len(ids), len(regimes))
	for i, regime := range regimes {
		assert.Equal(t, ids[i], regime.ID)
	}
}
