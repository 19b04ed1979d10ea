package collection

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RecommendationCode identifies a recommendation rule
type RecommendationCode string

const (
	RecEffectiveStrategy  RecommendationCode = "effective_strategy"
	RecHighlyRecommended  RecommendationCode = "highly_recommended"
	RecIncreaseDiscount   RecommendationCode = "increase_discount"
	RecRelationshipStrain RecommendationCode = "relationship_strain"
	RecReconsiderStrategy RecommendationCode = "reconsider_strategy"
)

// Rule thresholds
const (
	EffectiveDSOReductionDays = 5
	HighlyRecommendedBenefit  = 100000
	LowAdoptionPct            = 20
	HighIntensity             = 70
	MaxPaybackDays            = 180
)

// Recommendation is a natural-language note about a simulated strategy
type Recommendation struct {
	Code    RecommendationCode `json:"code"`
	Message string             `json:"message"`
}

// Recommend evaluates every rule against a simulation result. All matching
// rules are emitted in a fixed order.
func Recommend(r SimulationResult) []Recommendation {
	recs := make([]Recommendation, 0, 5)

	if r.Impact.DSODaysReduction.GreaterThan(decimal.NewFromInt(EffectiveDSOReductionDays)) {
		recs = append(recs, Recommendation{
			Code:    RecEffectiveStrategy,
			Message: fmt.Sprintf("Effective strategy: DSO drops by %s days", r.Impact.DSODaysReduction.StringFixed(1)),
		})
	}

	if r.Impact.NetCashBenefit.GreaterThan(decimal.NewFromInt(HighlyRecommendedBenefit)) {
		recs = append(recs, Recommendation{
			Code:    RecHighlyRecommended,
			Message: fmt.Sprintf("Highly recommended: net cash benefit of %s", r.Impact.NetCashBenefit.StringFixed(2)),
		})
	}

	if r.Params.EarlyPaymentDiscountPct.IsPositive() &&
		r.Migration.DiscountAdoptionRate.LessThan(decimal.NewFromInt(LowAdoptionPct)) {
		recs = append(recs, Recommendation{
			Code: RecIncreaseDiscount,
			Message: fmt.Sprintf("Consider a larger early payment discount: only %s%% of current invoices are expected to pay early",
				r.Migration.DiscountAdoptionRate.StringFixed(0)),
		})
	}

	if r.Params.CollectionIntensity.GreaterThan(decimal.NewFromInt(HighIntensity)) {
		recs = append(recs, Recommendation{
			Code:    RecRelationshipStrain,
			Message: "High collection intensity may strain customer relationships",
		})
	}

	if r.Impact.PaybackPeriod.GreaterThan(decimal.NewFromInt(MaxPaybackDays)) {
		recs = append(recs, Recommendation{
			Code:    RecReconsiderStrategy,
			Message: fmt.Sprintf("Payback period of %s days is too long; reconsider this strategy", r.Impact.PaybackPeriod.StringFixed(0)),
		})
	}

	return recs
}

// RecommendationCriteria limits which templates are recommended.
// Nil fields are not applied.
type RecommendationCriteria struct {
	TargetDSO *decimal.Decimal `json:"target_dso,omitempty"`
	MaxBudget *decimal.Decimal `json:"max_budget,omitempty"`
}

// RankedStrategy is a template together with its simulation
type RankedStrategy struct {
	Rank     int              `json:"rank"`
	Template Template         `json:"template"`
	Result   SimulationResult `json:"result"`
}

// GetRecommendations simulates every built-in template, drops those whose
// projected DSO exceeds the target or whose collection costs exceed the
// budget, and ranks the rest by net cash benefit, highest first.
func GetRecommendations(aging AgingSnapshot, criteria RecommendationCriteria) []RankedStrategy {
	ranked := make([]RankedStrategy, 0, 3)
	for _, tmpl := range Templates() {
		result := SimulateStrategy(tmpl.Params, aging)

		if criteria.TargetDSO != nil && result.Projected.DSO.GreaterThan(*criteria.TargetDSO) {
			continue
		}
		if criteria.MaxBudget != nil && result.Projected.CollectionCosts.GreaterThan(*criteria.MaxBudget) {
			continue
		}

		ranked = append(ranked, RankedStrategy{Template: tmpl, Result: result})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Impact.NetCashBenefit.GreaterThan(ranked[j].Result.Impact.NetCashBenefit)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
