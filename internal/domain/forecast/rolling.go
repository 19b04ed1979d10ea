package forecast

import (
	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// DefaultForecastPeriods is the horizon used when none is given
const DefaultForecastPeriods = 12

// RollingForecastInput describes a monthly run rate to project forward
type RollingForecastInput struct {
	BaseMonthly        report.CashFlowInputs `json:"base_monthly"` // OpeningCash is ignored
	OpeningCash        decimal.Decimal       `json:"opening_cash"`
	GrowthRate         decimal.Decimal       `json:"growth_rate"`         // Monthly, as a fraction: 0.02 is 2%
	SeasonalityFactors []decimal.Decimal     `json:"seasonality_factors"` // Missing entries default to 1
	Periods            int                   `json:"periods"`             // Defaults to DefaultForecastPeriods
}

// ForecastPeriod is one month of the forecast
type ForecastPeriod struct {
	Period            int                   `json:"period"` // Zero-based
	OpeningCash       decimal.Decimal       `json:"opening_cash"`
	ClosingCash       decimal.Decimal       `json:"closing_cash"`
	GrowthMultiplier  decimal.Decimal       `json:"growth_multiplier"`
	SeasonalityFactor decimal.Decimal       `json:"seasonality_factor"`
	Inputs            report.CashFlowInputs `json:"inputs"`
	CashFlow          report.CashFlowResult `json:"cash_flow"`
}

type periodMultipliers struct {
	growth      decimal.Decimal
	seasonality decimal.Decimal
}

// RollingForecast chains monthly cash flows: each period opens with the
// previous period's closing cash. AR and AP scale with growth and seasonality,
// payroll with growth only, capex with seasonality only. Financing flows and
// the working capital change repeat unscaled.
func RollingForecast(in RollingForecastInput) []ForecastPeriod {
	n := in.Periods
	if n <= 0 {
		n = DefaultForecastPeriods
	}

	mults := multipliers(in.GrowthRate, in.SeasonalityFactors, n)

	periods := make([]ForecastPeriod, 0, n)
	opening := in.OpeningCash
	for i, m := range mults {
		p := projectPeriod(i, opening, in.BaseMonthly, m)
		periods = append(periods, p)
		opening = p.ClosingCash
	}

	return periods
}

// multipliers are independent of the cash chain and computed up front
func multipliers(growthRate decimal.Decimal, seasonality []decimal.Decimal, n int) []periodMultipliers {
	step := money.One.Add(growthRate)
	growth := money.One

	mults := make([]periodMultipliers, n)
	for i := range mults {
		factor := money.One
		if i < len(seasonality) {
			factor = seasonality[i]
		}
		mults[i] = periodMultipliers{growth: growth, seasonality: factor}
		growth = growth.Mul(step)
	}
	return mults
}

func projectPeriod(i int, opening decimal.Decimal, base report.CashFlowInputs, m periodMultipliers) ForecastPeriod {
	inputs := base
	inputs.OpeningCash = opening
	inputs.ARCollections = base.ARCollections.Mul(m.growth).Mul(m.seasonality)
	inputs.APPayments = base.APPayments.Mul(m.growth).Mul(m.seasonality)
	inputs.Payroll = base.Payroll.Mul(m.growth)
	inputs.Capex = base.Capex.Mul(m.seasonality)

	cf := report.ComputeCashFlow(inputs)

	return ForecastPeriod{
		Period:            i,
		OpeningCash:       opening,
		ClosingCash:       cf.ClosingCash,
		GrowthMultiplier:  m.growth,
		SeasonalityFactor: m.seasonality,
		Inputs:            inputs,
		CashFlow:          cf,
	}
}
