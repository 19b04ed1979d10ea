package dto

import (
	"github.com/finplan/backend/internal/domain/collection"
	"github.com/finplan/backend/internal/domain/forecast"
	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/risk"
	"github.com/shopspring/decimal"
)

// Amounts may be sent as JSON numbers or strings. Strings keep full decimal
// precision and are what every response uses.

// WorkingCapitalRequest is the body of POST /planning/working-capital
type WorkingCapitalRequest struct {
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	Inventory          decimal.Decimal `json:"inventory"`
	Revenue            decimal.Decimal `json:"revenue"`
	COGS               decimal.Decimal `json:"cogs"`
	CurrentAssets      decimal.Decimal `json:"current_assets"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities"`
	DaysInPeriod       int             `json:"days_in_period" binding:"gte=0"` // 0 uses the configured default
}

// ToDomain converts the request to calculator inputs
func (r WorkingCapitalRequest) ToDomain() report.WorkingCapitalInputs {
	return report.WorkingCapitalInputs{
		AccountsReceivable: r.AccountsReceivable,
		AccountsPayable:    r.AccountsPayable,
		Inventory:          r.Inventory,
		Revenue:            r.Revenue,
		COGS:               r.COGS,
		CurrentAssets:      r.CurrentAssets,
		CurrentLiabilities: r.CurrentLiabilities,
		DaysInPeriod:       r.DaysInPeriod,
	}
}

// ProfitLossRequest is the body of POST /planning/profit-loss
type ProfitLossRequest struct {
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	Depreciation      decimal.Decimal `json:"depreciation"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	TaxRatePct        decimal.Decimal `json:"tax_rate_pct" binding:"gte=0,lte=100"`
}

// ToDomain converts the request to calculator inputs
func (r ProfitLossRequest) ToDomain() report.PLInputs {
	return report.PLInputs{
		Revenue:           r.Revenue,
		COGS:              r.COGS,
		OperatingExpenses: r.OperatingExpenses,
		Depreciation:      r.Depreciation,
		InterestExpense:   r.InterestExpense,
		TaxRatePct:        r.TaxRatePct,
	}
}

// VarianceRequest is the body of POST /planning/variance
type VarianceRequest struct {
	Name          string          `json:"name"`
	Actual        decimal.Decimal `json:"actual"`
	Budget        decimal.Decimal `json:"budget"`
	IsExpenseLine bool            `json:"is_expense_line"`
}

// ToDomain converts the request to a variance line
func (r VarianceRequest) ToDomain() report.VarianceLine {
	return report.VarianceLine{
		Name:          r.Name,
		Actual:        r.Actual,
		Budget:        r.Budget,
		IsExpenseLine: r.IsExpenseLine,
	}
}

// VarianceReportRequest is the body of POST /planning/variance/report
type VarianceReportRequest struct {
	Lines []VarianceRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToDomain converts the request to variance lines
func (r VarianceReportRequest) ToDomain() []report.VarianceLine {
	lines := make([]report.VarianceLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = l.ToDomain()
	}
	return lines
}

// TrendRequest is the body of POST /planning/trend
type TrendRequest struct {
	Series []report.TrendPoint `json:"series" binding:"required,min=1"`
}

// AgingRequest is an accounts receivable aging snapshot
type AgingRequest struct {
	Days0To30  decimal.Decimal `json:"days_0_30" binding:"gte=0"`
	Days31To60 decimal.Decimal `json:"days_31_60" binding:"gte=0"`
	Days61To90 decimal.Decimal `json:"days_61_90" binding:"gte=0"`
	Days90Plus decimal.Decimal `json:"days_90_plus" binding:"gte=0"`
}

// ToDomain converts the request to an aging snapshot
func (r AgingRequest) ToDomain() collection.AgingSnapshot {
	return collection.AgingSnapshot{
		Days0To30:  r.Days0To30,
		Days31To60: r.Days31To60,
		Days61To90: r.Days61To90,
		Days90Plus: r.Days90Plus,
	}
}

// StrategyParamsRequest is a collection policy. Bounds match collection.StrategyParams.
type StrategyParamsRequest struct {
	EarlyPaymentDiscountPct  decimal.Decimal `json:"early_payment_discount_pct" binding:"gte=0,lte=10"`
	EarlyPaymentDays         int             `json:"early_payment_days" binding:"gte=0,lte=30"`
	StandardTermsDays        int             `json:"standard_terms_days" binding:"gte=0,lte=90"`
	CollectionIntensity      decimal.Decimal `json:"collection_intensity" binding:"gte=0,lte=100"`
	BadDebtRatePct           decimal.Decimal `json:"bad_debt_rate_pct" binding:"gte=0,lte=10"`
	CollectionCostPerInvoice decimal.Decimal `json:"collection_cost_per_invoice" binding:"gte=0,lte=500"`
}

// ToDomain converts the request to strategy parameters
func (r StrategyParamsRequest) ToDomain() collection.StrategyParams {
	return collection.StrategyParams{
		EarlyPaymentDiscountPct:  r.EarlyPaymentDiscountPct,
		EarlyPaymentDays:         r.EarlyPaymentDays,
		StandardTermsDays:        r.StandardTermsDays,
		CollectionIntensity:      r.CollectionIntensity,
		BadDebtRatePct:           r.BadDebtRatePct,
		CollectionCostPerInvoice: r.CollectionCostPerInvoice,
	}
}

// SimulateStrategyRequest is the body of POST /planning/collection/simulate.
// Either params or the name of a built-in template must be given; params win
// when both are present.
type SimulateStrategyRequest struct {
	Aging    AgingRequest           `json:"aging"`
	Template string                 `json:"template,omitempty"`
	Params   *StrategyParamsRequest `json:"params,omitempty" binding:"required_without=Template"`
}

// CompareStrategiesRequest is the body of POST /planning/collection/compare
type CompareStrategiesRequest struct {
	Aging      AgingRequest            `json:"aging"`
	Strategies []StrategyParamsRequest `json:"strategies" binding:"required,min=1,dive"`
}

// ToDomain returns the strategies in request order
func (r CompareStrategiesRequest) ToDomain() []collection.StrategyParams {
	params := make([]collection.StrategyParams, len(r.Strategies))
	for i, s := range r.Strategies {
		params[i] = s.ToDomain()
	}
	return params
}

// RecommendationsRequest is the body of POST /planning/collection/recommendations
type RecommendationsRequest struct {
	Aging     AgingRequest     `json:"aging"`
	TargetDSO *decimal.Decimal `json:"target_dso,omitempty" binding:"omitempty,gte=0"`
	MaxBudget *decimal.Decimal `json:"max_budget,omitempty" binding:"omitempty,gte=0"`
}

// Criteria returns the recommendation filters
func (r RecommendationsRequest) Criteria() collection.RecommendationCriteria {
	return collection.RecommendationCriteria{
		TargetDSO: r.TargetDSO,
		MaxBudget: r.MaxBudget,
	}
}

// ExposureRequest is one customer's receivable position.
// It is also the body of POST /planning/risk/score.
type ExposureRequest struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Amount90Plus decimal.Decimal `json:"amount_90_plus" binding:"gte=0"`
	TotalAR      decimal.Decimal `json:"total_ar" binding:"gte=0"`
	CreditLimit  decimal.Decimal `json:"credit_limit" binding:"gte=0"`
	DaysOverdue  int             `json:"days_overdue" binding:"gte=0"`
}

// ToDomain converts the request to an exposure
func (r ExposureRequest) ToDomain() risk.Exposure {
	return risk.Exposure{
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Amount90Plus: r.Amount90Plus,
		TotalAR:      r.TotalAR,
		CreditLimit:  r.CreditLimit,
		DaysOverdue:  r.DaysOverdue,
	}
}

// RiskAlertsRequest is the body of POST /planning/risk/alerts
type RiskAlertsRequest struct {
	Exposures   []ExposureRequest `json:"exposures" binding:"required,min=1,dive"`
	MinSeverity string            `json:"min_severity,omitempty" binding:"omitempty,oneof=info warning critical"`
}

// ToDomain returns the exposures in request order
func (r RiskAlertsRequest) ToDomain() []risk.Exposure {
	exposures := make([]risk.Exposure, len(r.Exposures))
	for i, e := range r.Exposures {
		exposures[i] = e.ToDomain()
	}
	return exposures
}

// ScenarioRequest is one stress scenario. A percentage below -100 would turn
// a flow negative and is rejected.
type ScenarioRequest struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description,omitempty"`
	ARCollectionsPct decimal.Decimal `json:"ar_collections_pct" binding:"gte=-100"`
	APPaymentsPct    decimal.Decimal `json:"ap_payments_pct" binding:"gte=-100"`
	PayrollPct       decimal.Decimal `json:"payroll_pct" binding:"gte=-100"`
	CapexPct         decimal.Decimal `json:"capex_pct" binding:"gte=-100"`
}

// StressTestRequest is the body of POST /planning/forecast/stress-test.
// Omitting scenarios runs the built-in set.
type StressTestRequest struct {
	Base      report.CashFlowInputs `json:"base"`
	Scenarios []ScenarioRequest     `json:"scenarios,omitempty" binding:"omitempty,dive"`
}

// ToDomain returns the scenarios in request order
func (r StressTestRequest) ToDomain() []forecast.ScenarioAdjustment {
	scenarios := make([]forecast.ScenarioAdjustment, len(r.Scenarios))
	for i, s := range r.Scenarios {
		scenarios[i] = forecast.ScenarioAdjustment{
			Name:             s.Name,
			Description:      s.Description,
			ARCollectionsPct: s.ARCollectionsPct,
			APPaymentsPct:    s.APPaymentsPct,
			PayrollPct:       s.PayrollPct,
			CapexPct:         s.CapexPct,
		}
	}
	return scenarios
}

// RollingForecastRequest is the body of POST /planning/forecast/rolling
type RollingForecastRequest struct {
	BaseMonthly        report.CashFlowInputs `json:"base_monthly"`
	OpeningCash        decimal.Decimal       `json:"opening_cash"`
	GrowthRate         decimal.Decimal       `json:"growth_rate"`
	SeasonalityFactors []decimal.Decimal     `json:"seasonality_factors,omitempty" binding:"omitempty,dive,gte=0"`
	Periods            int                   `json:"periods" binding:"gte=0"`
}

// ToDomain converts the request to forecast inputs
func (r RollingForecastRequest) ToDomain() forecast.RollingForecastInput {
	return forecast.RollingForecastInput{
		BaseMonthly:        r.BaseMonthly,
		OpeningCash:        r.OpeningCash,
		GrowthRate:         r.GrowthRate,
		SeasonalityFactors: r.SeasonalityFactors,
		Periods:            r.Periods,
	}
}
