package main

import (
	"context"
	"fmt"
	"os"

	"github.com/finplan/backend/internal/application/planning"
	"github.com/finplan/backend/internal/domain/collection"
	"github.com/finplan/backend/internal/domain/forecast"
	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/risk"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Plan is the YAML plan file. Every section is optional; only the sections
// present are calculated.
type Plan struct {
	Name           string              `yaml:"name"`
	WorkingCapital *WorkingCapitalPlan `yaml:"working_capital"`
	CashFlow       *CashFlowPlan       `yaml:"cash_flow"`
	ProfitLoss     *ProfitLossPlan     `yaml:"profit_loss"`
	Variance       []VarianceLinePlan  `yaml:"variance"`
	Trend          []TrendPointPlan    `yaml:"trend"`
	Collection     *CollectionPlan     `yaml:"collection"`
	Risk           *RiskPlan           `yaml:"risk"`
	Forecast       *ForecastPlan       `yaml:"forecast"`
}

// WorkingCapitalPlan holds balance sheet and income statement figures
type WorkingCapitalPlan struct {
	AccountsReceivable decimal.Decimal `yaml:"accounts_receivable"`
	AccountsPayable    decimal.Decimal `yaml:"accounts_payable"`
	Inventory          decimal.Decimal `yaml:"inventory"`
	Revenue            decimal.Decimal `yaml:"revenue"`
	COGS               decimal.Decimal `yaml:"cogs"`
	CurrentAssets      decimal.Decimal `yaml:"current_assets"`
	CurrentLiabilities decimal.Decimal `yaml:"current_liabilities"`
	DaysInPeriod       int             `yaml:"days_in_period"`
}

// CashFlowPlan holds one period of cash flows
type CashFlowPlan struct {
	OpeningCash          decimal.Decimal `yaml:"opening_cash"`
	ARCollections        decimal.Decimal `yaml:"ar_collections"`
	APPayments           decimal.Decimal `yaml:"ap_payments"`
	Payroll              decimal.Decimal `yaml:"payroll"`
	Capex                decimal.Decimal `yaml:"capex"`
	DebtProceeds         decimal.Decimal `yaml:"debt_proceeds"`
	DebtRepayment        decimal.Decimal `yaml:"debt_repayment"`
	EquityProceeds       decimal.Decimal `yaml:"equity_proceeds"`
	WorkingCapitalChange decimal.Decimal `yaml:"working_capital_change"`
}

// ProfitLossPlan holds income statement lines
type ProfitLossPlan struct {
	Revenue           decimal.Decimal `yaml:"revenue"`
	COGS              decimal.Decimal `yaml:"cogs"`
	OperatingExpenses decimal.Decimal `yaml:"operating_expenses"`
	Depreciation      decimal.Decimal `yaml:"depreciation"`
	InterestExpense   decimal.Decimal `yaml:"interest_expense"`
	TaxRatePct        decimal.Decimal `yaml:"tax_rate_pct"`
}

// VarianceLinePlan is one budget line
type VarianceLinePlan struct {
	Name    string          `yaml:"name"`
	Actual  decimal.Decimal `yaml:"actual"`
	Budget  decimal.Decimal `yaml:"budget"`
	Expense bool            `yaml:"expense"`
}

// TrendPointPlan is one point of a series
type TrendPointPlan struct {
	Period string          `yaml:"period"`
	Value  decimal.Decimal `yaml:"value"`
}

// AgingPlan is an AR aging snapshot
type AgingPlan struct {
	Days0To30  decimal.Decimal `yaml:"days_0_30"`
	Days31To60 decimal.Decimal `yaml:"days_31_60"`
	Days61To90 decimal.Decimal `yaml:"days_61_90"`
	Days90Plus decimal.Decimal `yaml:"days_90_plus"`
}

// StrategyPlan names a template or spells out the parameters. Explicit
// parameters are used when Template is empty.
type StrategyPlan struct {
	Template                 string          `yaml:"template"`
	EarlyPaymentDiscountPct  decimal.Decimal `yaml:"early_payment_discount_pct"`
	EarlyPaymentDays         int             `yaml:"early_payment_days"`
	StandardTermsDays        int             `yaml:"standard_terms_days"`
	CollectionIntensity      decimal.Decimal `yaml:"collection_intensity"`
	BadDebtRatePct           decimal.Decimal `yaml:"bad_debt_rate_pct"`
	CollectionCostPerInvoice decimal.Decimal `yaml:"collection_cost_per_invoice"`
}

// CollectionPlan compares strategies against one aging snapshot and
// optionally ranks the templates
type CollectionPlan struct {
	Aging      AgingPlan      `yaml:"aging"`
	Strategies []StrategyPlan `yaml:"strategies"`
	Recommend  *struct {
		TargetDSO *decimal.Decimal `yaml:"target_dso"`
		MaxBudget *decimal.Decimal `yaml:"max_budget"`
	} `yaml:"recommend"`
}

// ExposurePlan is one customer's receivables position
type ExposurePlan struct {
	CustomerID   string          `yaml:"customer_id"`
	CustomerName string          `yaml:"customer_name"`
	Amount90Plus decimal.Decimal `yaml:"amount_90_plus"`
	TotalAR      decimal.Decimal `yaml:"total_ar"`
	CreditLimit  decimal.Decimal `yaml:"credit_limit"`
	DaysOverdue  int             `yaml:"days_overdue"`
}

// RiskPlan lists exposures to evaluate
type RiskPlan struct {
	MinSeverity string         `yaml:"min_severity"`
	Exposures   []ExposurePlan `yaml:"exposures"`
}

// ScenarioPlan adjusts the base flows by percentages
type ScenarioPlan struct {
	Name             string          `yaml:"name"`
	Description      string          `yaml:"description"`
	ARCollectionsPct decimal.Decimal `yaml:"ar_collections_pct"`
	APPaymentsPct    decimal.Decimal `yaml:"ap_payments_pct"`
	PayrollPct       decimal.Decimal `yaml:"payroll_pct"`
	CapexPct         decimal.Decimal `yaml:"capex_pct"`
}

// ForecastPlan drives the stress test and the rolling forecast from one base
type ForecastPlan struct {
	Base      CashFlowPlan   `yaml:"base"`
	Scenarios []ScenarioPlan `yaml:"scenarios"`
	Rolling   *struct {
		OpeningCash        decimal.Decimal   `yaml:"opening_cash"`
		GrowthRate         decimal.Decimal   `yaml:"growth_rate"`
		SeasonalityFactors []decimal.Decimal `yaml:"seasonality_factors"`
		Periods            int               `yaml:"periods"`
	} `yaml:"rolling"`
}

// Results collects the output of every section that ran
type Results struct {
	Name            string                          `json:"name,omitempty"`
	WorkingCapital  *report.WorkingCapitalResult    `json:"working_capital,omitempty"`
	CashFlow        *report.CashFlowResult          `json:"cash_flow,omitempty"`
	ProfitLoss      *report.PLResult                `json:"profit_loss,omitempty"`
	Variance        *report.VarianceReport          `json:"variance,omitempty"`
	Trend           *report.TrendResult             `json:"trend,omitempty"`
	Strategies      []collection.SimulationResult   `json:"strategies,omitempty"`
	Recommendations []collection.RankedStrategy     `json:"recommendations,omitempty"`
	RiskAlerts      []risk.Alert                    `json:"risk_alerts,omitempty"`
	StressTest      *forecast.StressTestReport      `json:"stress_test,omitempty"`
	RollingForecast *planning.RollingForecastResult `json:"rolling_forecast,omitempty"`
}

// LoadPlan reads and parses a YAML plan file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan parses YAML plan content
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &plan, nil
}

func (s CashFlowPlan) inputs() report.CashFlowInputs {
	return report.CashFlowInputs{
		OpeningCash:          s.OpeningCash,
		ARCollections:        s.ARCollections,
		APPayments:           s.APPayments,
		Payroll:              s.Payroll,
		Capex:                s.Capex,
		DebtProceeds:         s.DebtProceeds,
		DebtRepayment:        s.DebtRepayment,
		EquityProceeds:       s.EquityProceeds,
		WorkingCapitalChange: s.WorkingCapitalChange,
	}
}

func (s AgingPlan) snapshot() collection.AgingSnapshot {
	return collection.AgingSnapshot{
		Days0To30:  s.Days0To30,
		Days31To60: s.Days31To60,
		Days61To90: s.Days61To90,
		Days90Plus: s.Days90Plus,
	}
}

func (s StrategyPlan) params() (collection.StrategyParams, error) {
	if s.Template != "" {
		tmpl, ok := collection.TemplateByName(s.Template)
		if !ok {
			return collection.StrategyParams{}, fmt.Errorf("unknown strategy template %q", s.Template)
		}
		return tmpl.Params, nil
	}
	return collection.StrategyParams{
		EarlyPaymentDiscountPct:  s.EarlyPaymentDiscountPct,
		EarlyPaymentDays:         s.EarlyPaymentDays,
		StandardTermsDays:        s.StandardTermsDays,
		CollectionIntensity:      s.CollectionIntensity,
		BadDebtRatePct:           s.BadDebtRatePct,
		CollectionCostPerInvoice: s.CollectionCostPerInvoice,
	}, nil
}

// Run calculates every section present in the plan. The first failing
// section stops the run and is named in the error.
func Run(ctx context.Context, svc *planning.PlanningService, plan *Plan) (*Results, error) {
	out := &Results{Name: plan.Name}

	if s := plan.WorkingCapital; s != nil {
		r, err := svc.ComputeWorkingCapital(ctx, report.WorkingCapitalInputs{
			AccountsReceivable: s.AccountsReceivable,
			AccountsPayable:    s.AccountsPayable,
			Inventory:          s.Inventory,
			Revenue:            s.Revenue,
			COGS:               s.COGS,
			CurrentAssets:      s.CurrentAssets,
			CurrentLiabilities: s.CurrentLiabilities,
			DaysInPeriod:       s.DaysInPeriod,
		})
		if err != nil {
			return nil, fmt.Errorf("working_capital: %w", err)
		}
		out.WorkingCapital = &r
	}

	if s := plan.CashFlow; s != nil {
		r, err := svc.ComputeCashFlow(ctx, s.inputs())
		if err != nil {
			return nil, fmt.Errorf("cash_flow: %w", err)
		}
		out.CashFlow = &r
	}

	if s := plan.ProfitLoss; s != nil {
		r, err := svc.ComputePL(ctx, report.PLInputs{
			Revenue:           s.Revenue,
			COGS:              s.COGS,
			OperatingExpenses: s.OperatingExpenses,
			Depreciation:      s.Depreciation,
			InterestExpense:   s.InterestExpense,
			TaxRatePct:        s.TaxRatePct,
		})
		if err != nil {
			return nil, fmt.Errorf("profit_loss: %w", err)
		}
		out.ProfitLoss = &r
	}

	if len(plan.Variance) > 0 {
		lines := make([]report.VarianceLine, len(plan.Variance))
		for i, l := range plan.Variance {
			lines[i] = report.VarianceLine{Name: l.Name, Actual: l.Actual, Budget: l.Budget, IsExpenseLine: l.Expense}
		}
		r, err := svc.ComputeVarianceReport(ctx, lines)
		if err != nil {
			return nil, fmt.Errorf("variance: %w", err)
		}
		out.Variance = &r
	}

	if len(plan.Trend) > 0 {
		series := make([]report.TrendPoint, len(plan.Trend))
		for i, p := range plan.Trend {
			series[i] = report.TrendPoint{Period: p.Period, Value: p.Value}
		}
		r, err := svc.AnalyzeTrend(ctx, series)
		if err != nil {
			return nil, fmt.Errorf("trend: %w", err)
		}
		out.Trend = &r
	}

	if s := plan.Collection; s != nil {
		aging := s.Aging.snapshot()
		if len(s.Strategies) > 0 {
			strategies := make([]collection.StrategyParams, len(s.Strategies))
			for i, entry := range s.Strategies {
				p, err := entry.params()
				if err != nil {
					return nil, fmt.Errorf("collection.strategies[%d]: %w", i, err)
				}
				strategies[i] = p
			}
			r, err := svc.CompareStrategies(ctx, aging, strategies)
			if err != nil {
				return nil, fmt.Errorf("collection: %w", err)
			}
			out.Strategies = r
		}
		if s.Recommend != nil {
			r, err := svc.GetRecommendations(ctx, aging, collection.RecommendationCriteria{
				TargetDSO: s.Recommend.TargetDSO,
				MaxBudget: s.Recommend.MaxBudget,
			})
			if err != nil {
				return nil, fmt.Errorf("collection.recommend: %w", err)
			}
			out.Recommendations = r
		}
	}

	if s := plan.Risk; s != nil {
		exposures := make([]risk.Exposure, len(s.Exposures))
		for i, e := range s.Exposures {
			exposures[i] = risk.Exposure{
				CustomerID:   e.CustomerID,
				CustomerName: e.CustomerName,
				Amount90Plus: e.Amount90Plus,
				TotalAR:      e.TotalAR,
				CreditLimit:  e.CreditLimit,
				DaysOverdue:  e.DaysOverdue,
			}
		}
		r, err := svc.EvaluateExposures(ctx, exposures, risk.Severity(s.MinSeverity))
		if err != nil {
			return nil, fmt.Errorf("risk: %w", err)
		}
		out.RiskAlerts = r
	}

	if s := plan.Forecast; s != nil {
		base := s.Base.inputs()
		scenarios := make([]forecast.ScenarioAdjustment, len(s.Scenarios))
		for i, sc := range s.Scenarios {
			scenarios[i] = forecast.ScenarioAdjustment{
				Name:             sc.Name,
				Description:      sc.Description,
				ARCollectionsPct: sc.ARCollectionsPct,
				APPaymentsPct:    sc.APPaymentsPct,
				PayrollPct:       sc.PayrollPct,
				CapexPct:         sc.CapexPct,
			}
		}
		stress, err := svc.StressTest(ctx, base, scenarios)
		if err != nil {
			return nil, fmt.Errorf("forecast: %w", err)
		}
		out.StressTest = &stress

		if rs := s.Rolling; rs != nil {
			rolling, err := svc.RollingForecast(ctx, forecast.RollingForecastInput{
				BaseMonthly:        base,
				OpeningCash:        rs.OpeningCash,
				GrowthRate:         rs.GrowthRate,
				SeasonalityFactors: rs.SeasonalityFactors,
				Periods:            rs.Periods,
			})
			if err != nil {
				return nil, fmt.Errorf("forecast.rolling: %w", err)
			}
			out.RollingForecast = &rolling
		}
	}

	return out, nil
}
