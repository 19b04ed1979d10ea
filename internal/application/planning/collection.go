package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/finplan/backend/internal/domain/collection"
	"github.com/finplan/backend/internal/domain/shared"
	"github.com/finplan/backend/internal/infrastructure/logger"
	"github.com/finplan/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StrategyLabelCustom tags metrics for parameter sets that match no template
const StrategyLabelCustom = "custom"

// StrategyTemplates returns the built-in strategy presets
func (s *PlanningService) StrategyTemplates() []collection.Template {
	return collection.Templates()
}

// SimulateStrategy validates params and aging, then projects the aging snapshot
func (s *PlanningService) SimulateStrategy(
	ctx context.Context,
	params collection.StrategyParams,
	aging collection.AgingSnapshot,
) (collection.SimulationResult, error) {
	attrs := []any{telemetry.SpanAttrTotalAR, aging.Total()}
	return instrument(ctx, s, OpSimulateStrategy, attrs, func(ctx context.Context) (collection.SimulationResult, error) {
		if err := errors.Join(params.Validate(), validateAging(aging)); err != nil {
			return collection.SimulationResult{}, err
		}

		result := collection.SimulateStrategy(params, aging)
		label := strategyLabel(params)
		s.metrics.SetStrategyNetBenefit(label, result.Impact.NetCashBenefit.InexactFloat64())
		telemetry.SetAttributes(telemetry.SpanFromContext(ctx), telemetry.SpanAttrNetCashBenefit, result.Impact.NetCashBenefit)

		logger.L(ctx).Info("Collection strategy simulated",
			zap.String("strategy", label),
			logger.Decimal("baseline_dso", result.Baseline.DSO),
			logger.Decimal("projected_dso", result.Projected.DSO),
			logger.Decimal("net_cash_benefit", result.Impact.NetCashBenefit),
			zap.Int("recommendations", len(result.Recommendations)),
		)
		return result, nil
	})
}

// CompareStrategies simulates each parameter set against the same aging
// snapshot. Results keep input order.
func (s *PlanningService) CompareStrategies(
	ctx context.Context,
	aging collection.AgingSnapshot,
	strategies []collection.StrategyParams,
) ([]collection.SimulationResult, error) {
	attrs := []any{telemetry.SpanAttrStrategyCount, len(strategies), telemetry.SpanAttrTotalAR, aging.Total()}
	return instrument(ctx, s, OpCompareStrategies, attrs, func(ctx context.Context) ([]collection.SimulationResult, error) {
		errs := []error{validateAging(aging)}
		if len(strategies) == 0 {
			errs = append(errs, shared.NewValidationError("strategies", "must contain at least one strategy"))
		}
		errs = append(errs, maxCount("strategies", len(strategies), s.limits.MaxStrategies))
		for i, p := range strategies {
			errs = append(errs, prefixed(fmt.Sprintf("strategies[%d]", i), p.Validate()))
		}
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}

		results := collection.CompareStrategies(aging, strategies)
		for _, r := range results {
			s.metrics.SetStrategyNetBenefit(strategyLabel(r.Params), r.Impact.NetCashBenefit.InexactFloat64())
		}

		logger.L(ctx).Info("Collection strategies compared",
			zap.Int("strategies", len(results)),
			logger.Decimal("total_ar", aging.Total()),
		)
		return results, nil
	})
}

// GetRecommendations ranks the built-in templates against the criteria
func (s *PlanningService) GetRecommendations(
	ctx context.Context,
	aging collection.AgingSnapshot,
	criteria collection.RecommendationCriteria,
) ([]collection.RankedStrategy, error) {
	attrs := []any{telemetry.SpanAttrTotalAR, aging.Total()}
	return instrument(ctx, s, OpRecommendations, attrs, func(ctx context.Context) ([]collection.RankedStrategy, error) {
		errs := []error{validateAging(aging)}
		if criteria.TargetDSO != nil {
			errs = append(errs, nonNegative("target_dso", *criteria.TargetDSO))
		}
		if criteria.MaxBudget != nil {
			errs = append(errs, nonNegative("max_budget", *criteria.MaxBudget))
		}
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}

		ranked := collection.GetRecommendations(aging, criteria)

		fields := []zap.Field{zap.Int("eligible", len(ranked))}
		if len(ranked) > 0 {
			fields = append(fields, zap.String("top_strategy", ranked[0].Template.Name))
		}
		logger.L(ctx).Info("Collection strategies ranked", fields...)
		return ranked, nil
	})
}

// strategyLabel names params after the template they match, keeping metric
// label cardinality bounded
func strategyLabel(params collection.StrategyParams) string {
	for _, t := range collection.Templates() {
		if sameParams(t.Params, params) {
			return t.Name
		}
	}
	return StrategyLabelCustom
}

func sameParams(a, b collection.StrategyParams) bool {
	return a.EarlyPaymentDiscountPct.Equal(b.EarlyPaymentDiscountPct) &&
		a.EarlyPaymentDays == b.EarlyPaymentDays &&
		a.StandardTermsDays == b.StandardTermsDays &&
		a.CollectionIntensity.Equal(b.CollectionIntensity) &&
		a.BadDebtRatePct.Equal(b.BadDebtRatePct) &&
		a.CollectionCostPerInvoice.Equal(b.CollectionCostPerInvoice)
}
