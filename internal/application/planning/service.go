// Package planning is the application layer in front of the planning
// calculators. It validates requests against the configured limits, wraps
// every calculation in a span and records logs and metrics for it.
package planning

import (
	"context"
	"time"

	"github.com/finplan/backend/internal/infrastructure/config"
	"github.com/finplan/backend/internal/infrastructure/logger"
	"github.com/finplan/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Operation names used for spans, logs and metric labels
const (
	OpWorkingCapital     = "working_capital"
	OpCashFlow           = "cash_flow"
	OpProfitLoss         = "profit_loss"
	OpVariance           = "variance"
	OpVarianceReport     = "variance_report"
	OpTrend              = "trend"
	OpSimulateStrategy   = "simulate_strategy"
	OpCompareStrategies  = "compare_strategies"
	OpRecommendations    = "recommendations"
	OpScoreRisk          = "score_risk"
	OpEvaluateExposures  = "evaluate_exposures"
	OpStressTest         = "stress_test"
	OpRollingForecast    = "rolling_forecast"
	serviceSpanNamespace = "planning"
)

// PlanningService runs planning calculations. It holds only immutable
// collaborators and is safe for concurrent use.
type PlanningService struct {
	limits  config.PlanningConfig
	metrics *telemetry.PlanningMetrics
}

// NewPlanningService creates a PlanningService. Zero limits fall back to
// config.DefaultPlanningConfig; metrics may be nil.
func NewPlanningService(limits config.PlanningConfig, metrics *telemetry.PlanningMetrics) *PlanningService {
	def := config.DefaultPlanningConfig()
	if limits.DaysInPeriod <= 0 {
		limits.DaysInPeriod = def.DaysInPeriod
	}
	if limits.ForecastPeriods <= 0 {
		limits.ForecastPeriods = def.ForecastPeriods
	}
	if limits.MaxForecastPeriods <= 0 {
		limits.MaxForecastPeriods = def.MaxForecastPeriods
	}
	if limits.MaxScenarios <= 0 {
		limits.MaxScenarios = def.MaxScenarios
	}
	if limits.MaxStrategies <= 0 {
		limits.MaxStrategies = def.MaxStrategies
	}
	if limits.MaxExposures <= 0 {
		limits.MaxExposures = def.MaxExposures
	}
	if limits.MaxSeriesPoints <= 0 {
		limits.MaxSeriesPoints = def.MaxSeriesPoints
	}

	return &PlanningService{
		limits:  limits,
		metrics: metrics,
	}
}

// Limits returns the effective limits
func (s *PlanningService) Limits() config.PlanningConfig {
	return s.limits
}

// instrument runs fn inside a span tagged with a fresh calculation ID and
// records the outcome. fn receives the span context so its logs correlate.
func instrument[T any](
	ctx context.Context,
	s *PlanningService,
	operation string,
	attrs []any,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	start := time.Now()
	calculationID := uuid.NewString()

	ctx, span := telemetry.StartServiceSpan(ctx, serviceSpanNamespace, operation)
	defer span.End()
	ctx = logger.WithCalculationID(ctx, calculationID)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOperation, operation,
		telemetry.SpanAttrCalculationID, calculationID,
	)
	telemetry.SetAttributes(span, attrs...)

	result, err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.ObserveCalculation(operation, telemetry.OutcomeInvalidInput, elapsed)
		logger.L(ctx).Warn("Planning calculation rejected",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return result, err
	}

	telemetry.SetOK(span)
	s.metrics.ObserveCalculation(operation, telemetry.OutcomeSuccess, elapsed)
	return result, nil
}
