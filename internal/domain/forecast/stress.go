// Package forecast projects cash positions under stress scenarios and over a
// rolling multi-month horizon. Both build on report.ComputeCashFlow.
package forecast

import (
	"fmt"

	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// LiquidityStatus classifies closing cash against the minimum cash requirement
type LiquidityStatus string

const (
	LiquidityHealthy  LiquidityStatus = "healthy"
	LiquidityAdequate LiquidityStatus = "adequate"
	LiquidityStressed LiquidityStatus = "stressed"
	LiquidityCritical LiquidityStatus = "critical"
)

// String returns the string representation of the status
func (s LiquidityStatus) String() string {
	return string(s)
}

// MinimumCashPct is the share of payroll plus supplier payments held as a cash floor
const MinimumCashPct = 10

// ScenarioAdjustment shifts the baseline flows by a percentage each.
// -20 means the flow falls to 80% of its baseline.
type ScenarioAdjustment struct {
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	ARCollectionsPct decimal.Decimal `json:"ar_collections_pct"`
	APPaymentsPct    decimal.Decimal `json:"ap_payments_pct"`
	PayrollPct       decimal.Decimal `json:"payroll_pct"`
	CapexPct         decimal.Decimal `json:"capex_pct"`
}

// Apply returns base with the four adjustable flows scaled. Opening cash,
// financing flows and the working capital change are left untouched.
func (s ScenarioAdjustment) Apply(base report.CashFlowInputs) report.CashFlowInputs {
	adjusted := base
	adjusted.ARCollections = money.ApplyPercentChange(base.ARCollections, s.ARCollectionsPct)
	adjusted.APPayments = money.ApplyPercentChange(base.APPayments, s.APPaymentsPct)
	adjusted.Payroll = money.ApplyPercentChange(base.Payroll, s.PayrollPct)
	adjusted.Capex = money.ApplyPercentChange(base.Capex, s.CapexPct)
	return adjusted
}

// DefaultScenarios returns the standard scenario set, built fresh on each call
func DefaultScenarios() []ScenarioAdjustment {
	return []ScenarioAdjustment{
		{
			Name:        "base_case",
			Description: "Current run rate",
		},
		{
			Name:             "optimistic",
			Description:      "Faster collections and moderate supplier growth",
			ARCollectionsPct: decimal.NewFromInt(10),
			APPaymentsPct:    decimal.NewFromInt(5),
		},
		{
			Name:             "pessimistic",
			Description:      "Slower collections and wage inflation",
			ARCollectionsPct: decimal.NewFromInt(-15),
			PayrollPct:       decimal.NewFromInt(5),
		},
		{
			Name:             "severe_downturn",
			Description:      "Sharp revenue drop with purchasing and capex cut back",
			ARCollectionsPct: decimal.NewFromInt(-30),
			APPaymentsPct:    decimal.NewFromInt(-10),
			CapexPct:         decimal.NewFromInt(-50),
		},
	}
}

// StressTestResult is the outcome of one scenario
type StressTestResult struct {
	Scenario            ScenarioAdjustment    `json:"scenario"`
	AdjustedInputs      report.CashFlowInputs `json:"adjusted_inputs"`
	CashFlow            report.CashFlowResult `json:"cash_flow"`
	MinimumCashRequired decimal.Decimal       `json:"minimum_cash_required"`
	LiquidityRatio      decimal.Decimal       `json:"liquidity_ratio"` // Closing cash over minimum cash
	Status              LiquidityStatus       `json:"status"`
	IsLiquidityCritical bool                  `json:"is_liquidity_critical"` // Closing cash below minimum
}

// StressTestReport holds every scenario result plus notes drawn from the set as a whole
type StressTestReport struct {
	Results         []StressTestResult `json:"results"`
	Recommendations []string           `json:"recommendations"`
}

// StressTest runs the cash flow calculation once per scenario, in input order
func StressTest(base report.CashFlowInputs, scenarios []ScenarioAdjustment) StressTestReport {
	results := make([]StressTestResult, len(scenarios))
	for i, s := range scenarios {
		results[i] = runScenario(base, s)
	}

	return StressTestReport{
		Results:         results,
		Recommendations: stressRecommendations(results),
	}
}

func runScenario(base report.CashFlowInputs, s ScenarioAdjustment) StressTestResult {
	adjusted := s.Apply(base)
	cf := report.ComputeCashFlow(adjusted)

	minimum := money.PercentOf(adjusted.Payroll.Add(adjusted.APPayments), decimal.NewFromInt(MinimumCashPct))
	var ratio decimal.Decimal
	if minimum.IsPositive() {
		ratio = money.SafeDiv(cf.ClosingCash, minimum)
	}

	return StressTestResult{
		Scenario:            s,
		AdjustedInputs:      adjusted,
		CashFlow:            cf,
		MinimumCashRequired: minimum,
		LiquidityRatio:      ratio,
		Status:              ClassifyLiquidity(ratio),
		IsLiquidityCritical: cf.ClosingCash.LessThan(minimum),
	}
}

// ClassifyLiquidity maps a liquidity ratio to its status band
func ClassifyLiquidity(ratio decimal.Decimal) LiquidityStatus {
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(2)):
		return LiquidityHealthy
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return LiquidityAdequate
	case ratio.GreaterThanOrEqual(decimal.New(5, -1)):
		return LiquidityStressed
	default:
		return LiquidityCritical
	}
}

func stressRecommendations(results []StressTestResult) []string {
	recs := make([]string, 0)
	if len(results) == 0 {
		return recs
	}

	var critical, stressed, healthy int
	for _, r := range results {
		switch r.Status {
		case LiquidityCritical:
			critical++
			recs = append(recs, fmt.Sprintf("Scenario %q ends with %s cash against a %s minimum",
				r.Scenario.Name,
				r.CashFlow.ClosingCash.StringFixed(2),
				r.MinimumCashRequired.StringFixed(2)))
		case LiquidityStressed:
			stressed++
		case LiquidityHealthy:
			healthy++
		}
	}

	if critical > 0 {
		recs = append(recs, "Arrange a contingency credit line or defer capex to cover the critical scenarios")
	}
	if stressed > 0 {
		recs = append(recs, fmt.Sprintf("%d scenario(s) leave liquidity stressed; tighten collections and review payment timing", stressed))
	}
	if healthy == len(results) {
		recs = append(recs, "Liquidity remains healthy in every scenario")
	}

	return recs
}
