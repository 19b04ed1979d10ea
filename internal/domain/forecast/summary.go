package forecast

import (
	"github.com/shopspring/decimal"
)

// ForecastSummary condenses a forecast into headline figures
type ForecastSummary struct {
	Periods                int             `json:"periods"`
	OpeningCash            decimal.Decimal `json:"opening_cash"`
	EndingCash             decimal.Decimal `json:"ending_cash"`
	LowestCash             decimal.Decimal `json:"lowest_cash"`
	LowestCashPeriod       int             `json:"lowest_cash_period"` // First period reaching LowestCash, -1 when empty
	NegativeCashPeriods    int             `json:"negative_cash_periods"`
	TotalNetCashFlow       decimal.Decimal `json:"total_net_cash_flow"`
	TotalOperatingCashFlow decimal.Decimal `json:"total_operating_cash_flow"`
}

// SummarizeForecast reports the ending and lowest closing cash of a forecast
func SummarizeForecast(periods []ForecastPeriod) ForecastSummary {
	if len(periods) == 0 {
		return ForecastSummary{LowestCashPeriod: -1}
	}

	s := ForecastSummary{
		Periods:          len(periods),
		OpeningCash:      periods[0].OpeningCash,
		EndingCash:       periods[len(periods)-1].ClosingCash,
		LowestCash:       periods[0].ClosingCash,
		LowestCashPeriod: periods[0].Period,
	}

	for _, p := range periods {
		if p.ClosingCash.LessThan(s.LowestCash) {
			s.LowestCash = p.ClosingCash
			s.LowestCashPeriod = p.Period
		}
		if p.ClosingCash.IsNegative() {
			s.NegativeCashPeriods++
		}
		s.TotalNetCashFlow = s.TotalNetCashFlow.Add(p.CashFlow.NetCashFlow)
		s.TotalOperatingCashFlow = s.TotalOperatingCashFlow.Add(p.CashFlow.OperatingCashFlow)
	}

	return s
}
