package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/finplan/backend/internal/domain/risk"
	"github.com/finplan/backend/internal/domain/shared"
	"github.com/finplan/backend/internal/infrastructure/logger"
	"github.com/finplan/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

func validateExposure(e risk.Exposure) error {
	var errs []error
	errs = append(errs,
		nonNegative("amount_90_plus", e.Amount90Plus),
		nonNegative("total_ar", e.TotalAR),
		nonNegative("credit_limit", e.CreditLimit),
	)
	if e.DaysOverdue < 0 {
		errs = append(errs, shared.NewValidationError("days_overdue", "must not be negative"))
	}
	return errors.Join(errs...)
}

// ScoreRisk scores one customer exposure
func (s *PlanningService) ScoreRisk(ctx context.Context, exposure risk.Exposure) (risk.RiskScore, error) {
	return instrument(ctx, s, OpScoreRisk, nil, func(ctx context.Context) (risk.RiskScore, error) {
		if err := validateExposure(exposure); err != nil {
			return risk.RiskScore{}, err
		}

		score := risk.ScoreRisk(exposure.Amount90Plus, exposure.TotalAR, exposure.CreditLimit, exposure.DaysOverdue)
		logger.L(ctx).Info("Risk scored",
			zap.String("customer_id", exposure.CustomerID),
			zap.Int("score", score.Score),
			zap.String("severity", score.Severity.String()),
		)
		return score, nil
	})
}

// EvaluateExposures scores a batch of exposures and returns the alerts at or
// above minSeverity. An empty minSeverity includes every exposure.
func (s *PlanningService) EvaluateExposures(
	ctx context.Context,
	exposures []risk.Exposure,
	minSeverity risk.Severity,
) ([]risk.Alert, error) {
	attrs := []any{telemetry.SpanAttrExposureCount, len(exposures)}
	return instrument(ctx, s, OpEvaluateExposures, attrs, func(ctx context.Context) ([]risk.Alert, error) {
		if minSeverity == "" {
			minSeverity = risk.SeverityInfo
		}

		errs := []error{maxCount("exposures", len(exposures), s.limits.MaxExposures)}
		if !minSeverity.IsValid() {
			errs = append(errs, shared.NewValidationError("min_severity", "must be one of: critical warning info"))
		}
		for i, e := range exposures {
			errs = append(errs, prefixed(fmt.Sprintf("exposures[%d]", i), validateExposure(e)))
		}
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}

		alerts := risk.EvaluateExposures(exposures, minSeverity)
		bySeverity := make(map[risk.Severity]int)
		for _, a := range alerts {
			bySeverity[a.Risk.Severity]++
			s.metrics.RecordRiskAlert(a.Risk.Severity.String())
		}
		if len(alerts) > 0 {
			// alerts are ordered by score, so the first carries the worst severity
			telemetry.SetAttributes(telemetry.SpanFromContext(ctx), telemetry.SpanAttrSeverity, alerts[0].Risk.Severity.String())
		}

		logger.L(ctx).Info("Exposures evaluated",
			zap.Int("exposures", len(exposures)),
			zap.Int("alerts", len(alerts)),
			zap.Int("critical", bySeverity[risk.SeverityCritical]),
			zap.Int("warning", bySeverity[risk.SeverityWarning]),
		)
		return alerts, nil
	})
}
