package report

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// TrendDirection classifies the movement of a series
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendThresholdPct is the change (in percent) a series must exceed to leave
// the stable band. Decimal arithmetic is exact, so a strict sign comparison is used.
const TrendThresholdPct = 0

// TrendPoint is one (period, value) observation
type TrendPoint struct {
	Period string          `json:"period"` // e.g. "2026-01"
	Value  decimal.Decimal `json:"value"`
}

// TrendResult summarizes an ordered series
type TrendResult struct {
	Trend         TrendDirection  `json:"trend"`
	ChangePercent decimal.Decimal `json:"change_percent"` // (last - first) / first * 100
	AvgValue      decimal.Decimal `json:"avg_value"`
	MinValue      decimal.Decimal `json:"min_value"`
	MaxValue      decimal.Decimal `json:"max_value"`
	Points        int             `json:"points"`
}

// AnalyzeTrend classifies an ordered series by comparing its last value with
// its first. Aggregates cover every point regardless of the classification.
func AnalyzeTrend(series []TrendPoint) TrendResult {
	if len(series) == 0 {
		return TrendResult{Trend: TrendStable}
	}

	first := series[0].Value
	minValue, maxValue, total := first, first, decimal.Zero
	for _, p := range series {
		total = total.Add(p.Value)
		minValue = money.Min(minValue, p.Value)
		maxValue = money.Max(maxValue, p.Value)
	}

	result := TrendResult{
		Trend:    TrendStable,
		AvgValue: money.SafeDiv(total, decimal.NewFromInt(int64(len(series)))),
		MinValue: minValue,
		MaxValue: maxValue,
		Points:   len(series),
	}

	if len(series) == 1 {
		return result
	}

	last := series[len(series)-1].Value
	if first.IsZero() {
		return result
	}

	threshold := decimal.NewFromInt(TrendThresholdPct)
	result.ChangePercent = money.Percentage(last.Sub(first), first)
	switch {
	case result.ChangePercent.GreaterThan(threshold):
		result.Trend = TrendIncreasing
	case result.ChangePercent.LessThan(threshold.Neg()):
		result.Trend = TrendDecreasing
	}

	return result
}
