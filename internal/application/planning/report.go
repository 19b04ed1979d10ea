package planning

import (
	"context"
	"errors"

	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/shared"
	"github.com/finplan/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxTaxRatePct bounds the P&L tax rate
const MaxTaxRatePct = 100

// ComputeWorkingCapital derives DSO/DPO/DIO/CCC and liquidity ratios. A zero
// DaysInPeriod takes the configured default.
func (s *PlanningService) ComputeWorkingCapital(ctx context.Context, in report.WorkingCapitalInputs) (report.WorkingCapitalResult, error) {
	return instrument(ctx, s, OpWorkingCapital, nil, func(ctx context.Context) (report.WorkingCapitalResult, error) {
		if in.DaysInPeriod < 0 {
			return report.WorkingCapitalResult{}, shared.NewValidationError("days_in_period", "must be positive")
		}
		if in.DaysInPeriod == 0 {
			in.DaysInPeriod = s.limits.DaysInPeriod
		}

		result := report.ComputeWorkingCapital(in)
		logger.L(ctx).Info("Working capital computed",
			zap.Int("days_in_period", in.DaysInPeriod),
			logger.Decimal("dso", result.DSO),
			logger.Decimal("ccc", result.CCC),
			logger.Decimal("current_ratio", result.CurrentRatio),
		)
		return result, nil
	})
}

// ComputeCashFlow derives the operating, investing and financing cash flows
func (s *PlanningService) ComputeCashFlow(ctx context.Context, in report.CashFlowInputs) (report.CashFlowResult, error) {
	return instrument(ctx, s, OpCashFlow, nil, func(ctx context.Context) (report.CashFlowResult, error) {
		result := report.ComputeCashFlow(in)
		logger.L(ctx).Info("Cash flow computed",
			logger.Decimal("net_cash_flow", result.NetCashFlow),
			logger.Decimal("closing_cash", result.ClosingCash),
		)
		return result, nil
	})
}

// ComputePL runs the P&L waterfall after checking the tax rate is a percentage
func (s *PlanningService) ComputePL(ctx context.Context, in report.PLInputs) (report.PLResult, error) {
	return instrument(ctx, s, OpProfitLoss, nil, func(ctx context.Context) (report.PLResult, error) {
		if in.TaxRatePct.IsNegative() || in.TaxRatePct.GreaterThan(decimal.NewFromInt(MaxTaxRatePct)) {
			return report.PLResult{}, shared.NewValidationError("tax_rate_pct", "must be between 0 and 100")
		}

		result := report.ComputePL(in)
		logger.L(ctx).Info("Profit and loss computed",
			logger.Decimal("revenue", result.Revenue),
			logger.Decimal("net_profit", result.NetProfit),
			logger.Decimal("net_margin", result.NetMargin),
		)
		return result, nil
	})
}

// ComputeVariance compares one actual figure with its budget
func (s *PlanningService) ComputeVariance(ctx context.Context, line report.VarianceLine) (report.VarianceResult, error) {
	return instrument(ctx, s, OpVariance, nil, func(ctx context.Context) (report.VarianceResult, error) {
		result := report.ComputeVariance(line.Actual, line.Budget, line.IsExpenseLine)
		logger.L(ctx).Debug("Variance computed",
			zap.String("line", line.Name),
			zap.String("status", result.Status.String()),
		)
		return result, nil
	})
}

// ComputeVarianceReport runs variance analysis over a batch of budget lines
func (s *PlanningService) ComputeVarianceReport(ctx context.Context, lines []report.VarianceLine) (report.VarianceReport, error) {
	attrs := []any{"planning.line_count", len(lines)}
	return instrument(ctx, s, OpVarianceReport, attrs, func(ctx context.Context) (report.VarianceReport, error) {
		if err := maxCount("lines", len(lines), s.limits.MaxSeriesPoints); err != nil {
			return report.VarianceReport{}, err
		}

		result := report.ComputeVarianceReport(lines)
		logger.L(ctx).Info("Variance report computed",
			zap.Int("lines", len(lines)),
			zap.Int("favorable", result.FavorableCount),
			zap.Int("unfavorable", result.UnfavorableCount),
			logger.Decimal("net_impact", result.NetImpact),
		)
		return result, nil
	})
}

// AnalyzeTrend classifies an ordered series
func (s *PlanningService) AnalyzeTrend(ctx context.Context, series []report.TrendPoint) (report.TrendResult, error) {
	attrs := []any{"planning.point_count", len(series)}
	return instrument(ctx, s, OpTrend, attrs, func(ctx context.Context) (report.TrendResult, error) {
		var errs []error
		errs = append(errs, maxCount("series", len(series), s.limits.MaxSeriesPoints))
		if len(series) == 0 {
			errs = append(errs, shared.NewValidationError("series", "must contain at least one point"))
		}
		if err := errors.Join(errs...); err != nil {
			return report.TrendResult{}, err
		}

		result := report.AnalyzeTrend(series)
		logger.L(ctx).Info("Trend analyzed",
			zap.Int("points", result.Points),
			zap.String("trend", string(result.Trend)),
			logger.Decimal("change_percent", result.ChangePercent),
		)
		return result, nil
	})
}
