package collection

import (
	"errors"
	"fmt"

	"github.com/finplan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StrategyParams describes a collection policy. Values are copied into each
// simulation and never modified by it.
type StrategyParams struct {
	EarlyPaymentDiscountPct  decimal.Decimal `json:"early_payment_discount_pct"`  // [0,10]
	EarlyPaymentDays         int             `json:"early_payment_days"`          // [0,30]
	StandardTermsDays        int             `json:"standard_terms_days"`         // [0,90]
	CollectionIntensity      decimal.Decimal `json:"collection_intensity"`        // [0,100]
	BadDebtRatePct           decimal.Decimal `json:"bad_debt_rate_pct"`           // [0,10]
	CollectionCostPerInvoice decimal.Decimal `json:"collection_cost_per_invoice"` // [0,500]
}

// Parameter bounds
const (
	MaxEarlyPaymentDiscountPct  = 10
	MaxEarlyPaymentDays         = 30
	MaxStandardTermsDays        = 90
	MaxCollectionIntensity      = 100
	MaxBadDebtRatePct           = 10
	MaxCollectionCostPerInvoice = 500
)

// Validate reports every parameter outside its allowed range.
// The returned error matches shared.ErrInvalidInput.
func (p StrategyParams) Validate() error {
	var errs []error
	check := func(field string, v decimal.Decimal, max int64) {
		if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(max)) {
			errs = append(errs, shared.NewValidationError(field, fmt.Sprintf("must be between 0 and %d", max)))
		}
	}

	check("early_payment_discount_pct", p.EarlyPaymentDiscountPct, MaxEarlyPaymentDiscountPct)
	check("early_payment_days", decimal.NewFromInt(int64(p.EarlyPaymentDays)), MaxEarlyPaymentDays)
	check("standard_terms_days", decimal.NewFromInt(int64(p.StandardTermsDays)), MaxStandardTermsDays)
	check("collection_intensity", p.CollectionIntensity, MaxCollectionIntensity)
	check("bad_debt_rate_pct", p.BadDebtRatePct, MaxBadDebtRatePct)
	check("collection_cost_per_invoice", p.CollectionCostPerInvoice, MaxCollectionCostPerInvoice)

	return errors.Join(errs...)
}

// Template names
const (
	TemplateConservative = "conservative"
	TemplateBalanced     = "balanced"
	TemplateAggressive   = "aggressive"
)

// Template is a named parameter preset
type Template struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Params      StrategyParams `json:"params"`
}

// Templates returns the built-in presets, ordered from least to most aggressive.
// A fresh slice is built on every call.
func Templates() []Template {
	return []Template{
		{
			Name:        TemplateConservative,
			Description: "Small discount, light follow-up, relationship-friendly terms",
			Params: StrategyParams{
				EarlyPaymentDiscountPct:  decimal.NewFromInt(1),
				EarlyPaymentDays:         10,
				StandardTermsDays:        45,
				CollectionIntensity:      decimal.NewFromInt(25),
				BadDebtRatePct:           decimal.NewFromInt(1),
				CollectionCostPerInvoice: decimal.NewFromInt(25),
			},
		},
		{
			Name:        TemplateBalanced,
			Description: "Moderate discount and regular follow-up on overdue accounts",
			Params: StrategyParams{
				EarlyPaymentDiscountPct:  decimal.NewFromInt(2),
				EarlyPaymentDays:         10,
				StandardTermsDays:        30,
				CollectionIntensity:      decimal.NewFromInt(50),
				BadDebtRatePct:           decimal.NewFromInt(2),
				CollectionCostPerInvoice: decimal.NewFromInt(50),
			},
		},
		{
			Name:        TemplateAggressive,
			Description: "Higher discount and intensive collection on every overdue account",
			Params: StrategyParams{
				EarlyPaymentDiscountPct:  decimal.NewFromInt(3),
				EarlyPaymentDays:         10,
				StandardTermsDays:        30,
				CollectionIntensity:      decimal.NewFromInt(80),
				BadDebtRatePct:           decimal.NewFromInt(3),
				CollectionCostPerInvoice: decimal.NewFromInt(100),
			},
		},
	}
}

// TemplateByName looks up a preset
func TemplateByName(name string) (Template, bool) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
