package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/credstack/rdcalc/internal/domain"
)

func TestFirstTimeFilerCredit(t *testing.T) {
	calc := NewCreditCalculator()
	input := &domain.CalculationInput{IsFirstTimeFiler: true}
	expenses := domain.QualifiedExpenses{Total: decimal.NewFromInt(100000)}

	credit := calc.Calculate(input, expenses)

	assert.True(t, credit.Equal(decimal.NewFromInt(6000)),
		"Expected 6000 (6%% of 100000), got %s", credit)
}

func TestRepeatFilerASCCredit(t *testing.T) {
	tests := []struct {
		name     string
		priors   []decimal.Decimal
		total    decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name: "Three full prior years",
			priors: []decimal.Decimal{
				decimal.NewFromInt(40000),
				decimal.NewFromInt(40000),
				decimal.NewFromInt(40000),
			},
			// base = 40000 * 0.5 = 20000, excess = 80000, credit = 11200
			total:    decimal.NewFromInt(100000),
			expected: decimal.NewFromInt(11200),
		},
		{
			name:   "Single prior year still divides by three",
			priors: []decimal.Decimal{decimal.NewFromInt(30000)},
			// base = (30000/3) * 0.5 = 5000, excess = 95000, credit = 13300
			total:    decimal.NewFromInt(100000),
			expected: decimal.NewFromInt(13300),
		},
		{
			name: "Two prior years still divide by three",
			priors: []decimal.Decimal{
				decimal.NewFromInt(20000),
				decimal.NewFromInt(40000),
			},
			// base = (60000/3) * 0.5 = 10000, excess = 90000, credit = 12600
			total:    decimal.NewFromInt(100000),
			expected: decimal.NewFromInt(12600),
		},
		{
			name:   "No prior history behaves as zero base",
			priors: nil,
			// credit = 14% of the full total
			total:    decimal.NewFromInt(100000),
			expected: decimal.NewFromInt(14000),
		},
		{
			name: "Base above total floors the excess at zero",
			priors: []decimal.Decimal{
				decimal.NewFromInt(900000),
				decimal.NewFromInt(900000),
				decimal.NewFromInt(900000),
			},
			// base = 450000 > 100000 total
			total:    decimal.NewFromInt(100000),
			expected: decimal.Zero,
		},
		{
			name:     "Zero current QREs yield zero credit",
			priors:   []decimal.Decimal{decimal.NewFromInt(60000)},
			total:    decimal.Zero,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCreditCalculator()
			input := &domain.CalculationInput{PriorYearQREs: tt.priors}
			credit := calc.Calculate(input, domain.QualifiedExpenses{Total: tt.total})
			assert.True(t, credit.Equal(tt.expected),
				"Expected %s, got %s", tt.expected, credit)
		})
	}
}

func TestASCBase(t *testing.T) {
	calc := NewCreditCalculator()

	base := calc.ASCBase([]decimal.Decimal{
		decimal.NewFromInt(40000),
		decimal.NewFromInt(40000),
		decimal.NewFromInt(40000),
	})
	assert.True(t, base.Equal(decimal.NewFromInt(20000)),
		"Expected 20000, got %s", base)

	base = calc.ASCBase(nil)
	assert.True(t, base.IsZero(), "Expected zero base for empty history, got %s", base)
}

func TestCreditNeverNegative(t *testing.T) {
	calc := NewCreditCalculator()
	input := &domain.CalculationInput{
		PriorYearQREs: []decimal.Decimal{
			decimal.NewFromInt(5000000),
			decimal.NewFromInt(5000000),
			decimal.NewFromInt(5000000),
		},
	}

	credit := calc.Calculate(input, domain.QualifiedExpenses{Total: decimal.NewFromInt(1000)})

	assert.False(t, credit.IsNegative(), "Credit must never be negative, got %s", credit)
	assert.True(t, credit.IsZero(), "Expected zero credit when base dwarfs the total, got %s", credit)
}

func TestFirstTimeFlagSelectsBranch(t *testing.T) {
	// The flag alone picks the branch: a first-time filer with (spurious)
	// prior history still gets the 6% rate on the whole total.
	calc := NewCreditCalculator()
	input := &domain.CalculationInput{
		IsFirstTimeFiler: true,
		PriorYearQREs:    []decimal.Decimal{decimal.NewFromInt(40000)},
	}

	credit := calc.Calculate(input, domain.QualifiedExpenses{Total: decimal.NewFromInt(100000)})

	assert.True(t, credit.Equal(decimal.NewFromInt(6000)),
		"Expected the first-time branch, got %s", credit)
}

func TestCreditRatesFromRegime(t *testing.T) {
	regime := domain.LawRegime{
		CreditRateFirstTime: decimal.NewFromFloat(0.10),
		CreditRateRepeat:    decimal.NewFromFloat(0.20),
	}
	calc := NewCreditCalculatorWithRegime(regime)

	firstTime := calc.Calculate(&domain.CalculationInput{IsFirstTimeFiler: true},
		domain.QualifiedExpenses{Total: decimal.NewFromInt(100000)})
	assert.True(t, firstTime.Equal(decimal.NewFromInt(10000)),
		"Expected 10000 under a 10%% first-time rate, got %s", firstTime)

	repeat := calc.Calculate(&domain.CalculationInput{},
		domain.QualifiedExpenses{Total: decimal.NewFromInt(100000)})
	assert.True(t, repeat.Equal(decimal.NewFromInt(20000)),
		"Expected 20000 under a 20%% repeat rate, got %s", repeat)
}
