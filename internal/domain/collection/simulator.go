package collection

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// AverageInvoiceSize is the assumed invoice value used to estimate invoice counts
const AverageInvoiceSize = 5000

// DaysPerYear annualizes daily cash flow for the payback period
const DaysPerYear = 365

// Migration model constants, all in percent
const (
	AdoptionPerDiscountPoint = 5  // adoption gained per discount point
	MaxDiscountAdoptionPct   = 40 // adoption cap
	MaxEffectivenessPct      = 30 // share of 90+ recovered at full intensity
	MovementShareNearPct     = 30 // share of recovered 90+ moved into 31-60
	MovementShareFarPct      = 30 // share of recovered 90+ moved into 61-90
)

// BaselineMetrics describes the receivables before the strategy applies
type BaselineMetrics struct {
	TotalAR        decimal.Decimal `json:"total_ar"`
	DSO            decimal.Decimal `json:"dso"`
	CollectionRate decimal.Decimal `json:"collection_rate"`
	Aging          AgingSnapshot   `json:"aging"`
}

// ProjectedMetrics describes the receivables after the strategy applies
type ProjectedMetrics struct {
	TotalAR             decimal.Decimal `json:"total_ar"`
	DSO                 decimal.Decimal `json:"dso"`
	CollectionRate      decimal.Decimal `json:"collection_rate"`
	Aging               AgingSnapshot   `json:"aging"`
	CashFlowImprovement decimal.Decimal `json:"cash_flow_improvement"`
	CollectionCosts     decimal.Decimal `json:"collection_costs"` // Per-invoice follow-up cost only
	NetBenefit          decimal.Decimal `json:"net_benefit"`
}

// StrategyImpact holds the deltas between baseline and projection
type StrategyImpact struct {
	DSODaysReduction       decimal.Decimal `json:"dso_days_reduction"`
	DSOPercentReduction    decimal.Decimal `json:"dso_percent_reduction"`
	CashFlowImprovement    decimal.Decimal `json:"cash_flow_improvement"`
	ARReduction            decimal.Decimal `json:"ar_reduction"`
	CollectionCostIncrease decimal.Decimal `json:"collection_cost_increase"` // Total strategy cost
	NetCashBenefit         decimal.Decimal `json:"net_cash_benefit"`
	PaybackPeriod          decimal.Decimal `json:"payback_period"` // Days
}

// Migration records how balances moved between buckets
type Migration struct {
	DiscountAdoptionRate    decimal.Decimal `json:"discount_adoption_rate"`   // Percent of 0-30 paying early
	CollectionEffectiveness decimal.Decimal `json:"collection_effectiveness"` // Fraction of 90+ recovered
	EarlyPaymentAmount      decimal.Decimal `json:"early_payment_amount"`
	CollectionMovement      decimal.Decimal `json:"collection_movement"`
	BadDebtAmount           decimal.Decimal `json:"bad_debt_amount"`
}

// CostBreakdown itemizes the cost of running the strategy
type CostBreakdown struct {
	TotalInvoices   int64           `json:"total_invoices"`
	CollectionCosts decimal.Decimal `json:"collection_costs"`
	DiscountCost    decimal.Decimal `json:"discount_cost"`
	BadDebtCost     decimal.Decimal `json:"bad_debt_cost"`
	Total           decimal.Decimal `json:"total"`
}

// SimulationResult is the full outcome of one strategy simulation
type SimulationResult struct {
	Params          StrategyParams   `json:"params"`
	Baseline        BaselineMetrics  `json:"baseline"`
	Projected       ProjectedMetrics `json:"projected"`
	Impact          StrategyImpact   `json:"impact"`
	Migration       Migration        `json:"migration"`
	Costs           CostBreakdown    `json:"costs"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SimulateStrategy projects the aging snapshot under params.
//
// Balances migrate in a fixed order: early payments leave the 0-30 bucket,
// then a share of the 90+ bucket is recovered (30% lands in 31-60, 30% in
// 61-90, the rest is collected), and finally bad debt is written off the
// remaining 90+ balance. Money only leaves the ledger, so the projected total
// never exceeds the baseline for non-negative rates.
func SimulateStrategy(params StrategyParams, aging AgingSnapshot) SimulationResult {
	baseline := BaselineMetrics{
		TotalAR:        aging.Total(),
		DSO:            aging.WeightedDSO(),
		CollectionRate: aging.CollectionRate(),
		Aging:          aging,
	}

	migration, projectedAging := migrate(params, aging)
	costs := strategyCosts(params, baseline.TotalAR, migration)

	projectedDSO := projectedAging.WeightedDSO()
	dsoReduction := baseline.DSO.Sub(projectedDSO)
	dailyCashFlow := money.SafeDiv(baseline.TotalAR, baseline.DSO)
	cashFlowImprovement := dsoReduction.Mul(dailyCashFlow)
	netCashBenefit := cashFlowImprovement.Sub(costs.Total)

	impact := StrategyImpact{
		DSODaysReduction:       dsoReduction,
		DSOPercentReduction:    money.Percentage(dsoReduction, baseline.DSO),
		CashFlowImprovement:    cashFlowImprovement,
		ARReduction:            baseline.TotalAR.Sub(projectedAging.Total()),
		CollectionCostIncrease: costs.Total,
		NetCashBenefit:         netCashBenefit,
		PaybackPeriod:          paybackPeriod(costs.Total, cashFlowImprovement),
	}

	result := SimulationResult{
		Params:   params,
		Baseline: baseline,
		Projected: ProjectedMetrics{
			TotalAR:             projectedAging.Total(),
			DSO:                 projectedDSO,
			CollectionRate:      projectedAging.CollectionRate(),
			Aging:               projectedAging,
			CashFlowImprovement: cashFlowImprovement,
			CollectionCosts:     costs.CollectionCosts,
			NetBenefit:          netCashBenefit,
		},
		Impact:    impact,
		Migration: migration,
		Costs:     costs,
	}
	result.Recommendations = Recommend(result)

	return result
}

// CompareStrategies simulates each parameter set against the same aging,
// returning results in input order
func CompareStrategies(aging AgingSnapshot, strategies []StrategyParams) []SimulationResult {
	results := make([]SimulationResult, len(strategies))
	for i, params := range strategies {
		results[i] = SimulateStrategy(params, aging)
	}
	return results
}

func migrate(params StrategyParams, aging AgingSnapshot) (Migration, AgingSnapshot) {
	adoption := money.Min(
		params.EarlyPaymentDiscountPct.Mul(decimal.NewFromInt(AdoptionPerDiscountPoint)),
		decimal.NewFromInt(MaxDiscountAdoptionPct),
	)
	effectiveness := money.PercentOf(params.CollectionIntensity.Div(money.Hundred), decimal.NewFromInt(MaxEffectivenessPct))

	projected := aging

	earlyPayment := money.PercentOf(aging.Days0To30, adoption)
	projected.Days0To30 = aging.Days0To30.Sub(earlyPayment)

	movement := aging.Days90Plus.Mul(effectiveness)
	projected.Days31To60 = aging.Days31To60.Add(money.PercentOf(movement, decimal.NewFromInt(MovementShareNearPct)))
	projected.Days61To90 = aging.Days61To90.Add(money.PercentOf(movement, decimal.NewFromInt(MovementShareFarPct)))
	projected.Days90Plus = aging.Days90Plus.Sub(movement)

	badDebt := money.PercentOf(projected.Days90Plus, params.BadDebtRatePct)
	projected.Days90Plus = projected.Days90Plus.Sub(badDebt)

	return Migration{
		DiscountAdoptionRate:    adoption,
		CollectionEffectiveness: effectiveness,
		EarlyPaymentAmount:      earlyPayment,
		CollectionMovement:      movement,
		BadDebtAmount:           badDebt,
	}, projected
}

func strategyCosts(params StrategyParams, baselineAR decimal.Decimal, m Migration) CostBreakdown {
	invoices := baselineAR.Div(decimal.NewFromInt(AverageInvoiceSize)).Round(0)
	collectionCosts := invoices.Mul(params.CollectionCostPerInvoice)
	discountCost := money.PercentOf(m.EarlyPaymentAmount, params.EarlyPaymentDiscountPct)

	return CostBreakdown{
		TotalInvoices:   invoices.IntPart(),
		CollectionCosts: collectionCosts,
		DiscountCost:    discountCost,
		BadDebtCost:     m.BadDebtAmount,
		Total:           money.Sum(collectionCosts, discountCost, m.BadDebtAmount),
	}
}

// paybackPeriod returns the days of improved cash flow needed to cover cost
func paybackPeriod(cost, cashFlowImprovement decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() {
		return decimal.Zero
	}
	daily := cashFlowImprovement.DivRound(decimal.NewFromInt(DaysPerYear), money.RatioPrecision)
	return money.SafeDiv(cost, daily)
}
