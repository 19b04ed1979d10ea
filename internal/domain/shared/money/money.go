// Package money holds the fixed-precision arithmetic shared by every planning
// calculator. All operations work on decimal.Decimal so that aggregation over
// many rows never accumulates binary floating-point error, and every division
// is guarded so that a zero denominator yields zero instead of a panic.
package money

import (
	"github.com/shopspring/decimal"
)

const (
	// CurrencyPlaces is the number of decimal places used when rounding money for display
	CurrencyPlaces int32 = 2
	// RatioPlaces is the number of decimal places used when rounding ratios for display
	RatioPlaces int32 = 4
	// RatioPrecision is the number of decimal places kept by guarded division
	RatioPrecision int32 = 16
)

var (
	// Zero is the additive identity
	Zero = decimal.Zero
	// One is the multiplicative identity
	One = decimal.NewFromInt(1)
	// Hundred converts between fractions and percentages
	Hundred = decimal.NewFromInt(100)
)

// SafeDiv returns numerator / denominator, or zero when the denominator is zero
func SafeDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.DivRound(denominator, RatioPrecision)
}

// Percentage returns part / whole * 100, or zero when whole is zero
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(Hundred).DivRound(whole, RatioPrecision)
}

// PercentOf returns pct percent of amount (amount * pct / 100)
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(Hundred)
}

// ApplyPercentChange returns base * (1 + pct/100)
func ApplyPercentChange(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(One.Add(pct.Div(Hundred)))
}

// NonNegative clamps negative values to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds all values; an empty call returns zero
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Min returns the smaller of a and b
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// RoundCurrency rounds to cents, half away from zero
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// RoundRatio rounds a ratio or percentage for display
func RoundRatio(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatioPlaces)
}
