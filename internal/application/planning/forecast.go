package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/finplan/backend/internal/domain/forecast"
	"github.com/finplan/backend/internal/domain/report"
	"github.com/finplan/backend/internal/domain/shared"
	"github.com/finplan/backend/internal/infrastructure/logger"
	"github.com/finplan/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// RollingForecastResult pairs the forecast periods with their summary
type RollingForecastResult struct {
	Periods []forecast.ForecastPeriod `json:"periods"`
	Summary forecast.ForecastSummary  `json:"summary"`
}

// DefaultScenarios returns the built-in stress scenarios
func (s *PlanningService) DefaultScenarios() []forecast.ScenarioAdjustment {
	return forecast.DefaultScenarios()
}

// StressTest runs base through every scenario. An empty scenario list runs
// the built-in scenarios.
func (s *PlanningService) StressTest(
	ctx context.Context,
	base report.CashFlowInputs,
	scenarios []forecast.ScenarioAdjustment,
) (forecast.StressTestReport, error) {
	if len(scenarios) == 0 {
		scenarios = forecast.DefaultScenarios()
	}

	attrs := []any{telemetry.SpanAttrScenarioCount, len(scenarios)}
	return instrument(ctx, s, OpStressTest, attrs, func(ctx context.Context) (forecast.StressTestReport, error) {
		errs := []error{maxCount("scenarios", len(scenarios), s.limits.MaxScenarios)}
		for i, sc := range scenarios {
			if sc.Name == "" {
				errs = append(errs, shared.NewValidationError(fmt.Sprintf("scenarios[%d].name", i), "is required"))
			}
		}
		if err := errors.Join(errs...); err != nil {
			return forecast.StressTestReport{}, err
		}

		result := forecast.StressTest(base, scenarios)

		critical := 0
		for _, r := range result.Results {
			s.metrics.RecordLiquidityStatus(r.Status.String())
			if r.Status == forecast.LiquidityCritical {
				critical++
			}
		}

		l := logger.L(ctx)
		fields := []zap.Field{
			zap.Int("scenarios", len(result.Results)),
			zap.Int("critical", critical),
		}
		if critical > 0 {
			l.Warn("Stress test found critical liquidity", fields...)
		} else {
			l.Info("Stress test completed", fields...)
		}
		return result, nil
	})
}

// RollingForecast projects a monthly run rate forward. A zero period count
// takes the configured default horizon.
func (s *PlanningService) RollingForecast(ctx context.Context, in forecast.RollingForecastInput) (RollingForecastResult, error) {
	return instrument(ctx, s, OpRollingForecast, nil, func(ctx context.Context) (RollingForecastResult, error) {
		var errs []error
		switch {
		case in.Periods < 0:
			errs = append(errs, shared.NewValidationError("periods", "must not be negative"))
		case in.Periods == 0:
			in.Periods = s.limits.ForecastPeriods
		case in.Periods > s.limits.MaxForecastPeriods:
			errs = append(errs, shared.NewValidationError("periods",
				fmt.Sprintf("must be at most %d", s.limits.MaxForecastPeriods)))
		}
		if in.Periods >= 0 && len(in.SeasonalityFactors) > in.Periods {
			errs = append(errs, shared.NewValidationError("seasonality_factors",
				"must not be longer than the forecast horizon"))
		}
		for i, f := range in.SeasonalityFactors {
			errs = append(errs, nonNegative(fmt.Sprintf("seasonality_factors[%d]", i), f))
		}
		if err := errors.Join(errs...); err != nil {
			return RollingForecastResult{}, err
		}

		telemetry.SetAttributes(telemetry.SpanFromContext(ctx), telemetry.SpanAttrPeriodCount, in.Periods)

		periods := forecast.RollingForecast(in)
		summary := forecast.SummarizeForecast(periods)
		s.metrics.SetForecastLowestCash(summary.LowestCash.InexactFloat64())

		logger.L(ctx).Info("Rolling forecast generated",
			zap.Int("periods", summary.Periods),
			logger.Decimal("ending_cash", summary.EndingCash),
			logger.Decimal("lowest_cash", summary.LowestCash),
			zap.Int("lowest_cash_period", summary.LowestCashPeriod),
			zap.Int("negative_cash_periods", summary.NegativeCashPeriods),
		)
		return RollingForecastResult{Periods: periods, Summary: summary}, nil
	})
}
