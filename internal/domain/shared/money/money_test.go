package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name        string
		numerator   decimal.Decimal
		denominator decimal.Decimal
		expected    decimal.Decimal
	}{
		{
			name:        "exact division",
			numerator:   decimal.NewFromInt(100),
			denominator: decimal.NewFromInt(4),
			expected:    decimal.NewFromInt(25),
		},
		{
			name:        "zero denominator returns zero",
			numerator:   decimal.NewFromInt(100),
			denominator: decimal.Zero,
			expected:    decimal.Zero,
		},
		{
			name:        "negative numerator",
			numerator:   decimal.NewFromInt(-50),
			denominator: decimal.NewFromInt(2),
			expected:    decimal.NewFromInt(-25),
		},
		{
			name:        "repeating fraction keeps ratio precision",
			numerator:   decimal.NewFromInt(1),
			denominator: decimal.NewFromInt(3),
			expected:    decimal.RequireFromString("0.3333333333333333"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDiv(tt.numerator, tt.denominator)
			assert.True(t, tt.expected.Equal(result), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestPercentage(t *testing.T) {
	t.Run("part of whole", func(t *testing.T) {
		result := Percentage(decimal.NewFromInt(25), decimal.NewFromInt(200))
		assert.True(t, result.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("zero whole returns zero", func(t *testing.T) {
		result := Percentage(decimal.NewFromInt(25), decimal.Zero)
		assert.True(t, result.IsZero())
	})
}

func TestPercentOf(t *testing.T) {
	result := PercentOf(decimal.NewFromInt(178000), decimal.NewFromInt(2))
	assert.True(t, result.Equal(decimal.NewFromInt(3560)))
}

func TestApplyPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		base     decimal.Decimal
		pct      decimal.Decimal
		expected decimal.Decimal
	}{
		{"increase", decimal.NewFromInt(1000), decimal.NewFromInt(10), decimal.NewFromInt(1100)},
		{"decrease", decimal.NewFromInt(1000), decimal.NewFromInt(-25), decimal.NewFromInt(750)},
		{"no change", decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(ApplyPercentChange(tt.base, tt.pct)))
		})
	}
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())

	// 0.1 added ten times is exactly 1 in decimal arithmetic
	values := make([]decimal.Decimal, 10)
	for i := range values {
		values[i] = decimal.RequireFromString("0.1")
	}
	assert.True(t, Sum(values...).Equal(decimal.NewFromInt(1)))
}

func TestMinMax(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(7)

	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, "10.13", RoundCurrency(decimal.RequireFromString("10.125")).String())
	assert.Equal(t, "-10.13", RoundCurrency(decimal.RequireFromString("-10.125")).String())
	assert.Equal(t, "0.3333", RoundRatio(decimal.RequireFromString("0.333333")).String())
}
