package report

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// WorkingCapitalInputs holds the balances used for working capital analysis.
// Revenue and COGS must cover the same DaysInPeriod window.
type WorkingCapitalInputs struct {
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	Inventory          decimal.Decimal `json:"inventory"`
	Revenue            decimal.Decimal `json:"revenue"`
	COGS               decimal.Decimal `json:"cogs"`
	CurrentAssets      decimal.Decimal `json:"current_assets"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities"`
	DaysInPeriod       int             `json:"days_in_period"`
}

// WorkingCapitalResult holds the derived efficiency and liquidity metrics
type WorkingCapitalResult struct {
	DSO                            decimal.Decimal `json:"dso"` // Days sales outstanding
	DPO                            decimal.Decimal `json:"dpo"` // Days payable outstanding
	DIO                            decimal.Decimal `json:"dio"` // Days inventory outstanding
	CCC                            decimal.Decimal `json:"ccc"` // DSO + DIO - DPO, negative is favorable
	CurrentRatio                   decimal.Decimal `json:"current_ratio"`
	QuickRatio                     decimal.Decimal `json:"quick_ratio"`
	NetWorkingCapital              decimal.Decimal `json:"net_working_capital"`
	WorkingCapitalPercentOfRevenue decimal.Decimal `json:"working_capital_percent_of_revenue"` // Fraction, not x100
}

// ComputeWorkingCapital derives DSO/DPO/DIO/CCC and liquidity ratios.
// Non-positive revenue, COGS or current liabilities zero the dependent fields.
func ComputeWorkingCapital(in WorkingCapitalInputs) WorkingCapitalResult {
	days := decimal.NewFromInt(int64(in.DaysInPeriod))

	var dso, dpo, dio decimal.Decimal
	if in.Revenue.IsPositive() {
		dso = money.SafeDiv(in.AccountsReceivable.Mul(days), in.Revenue)
	}
	if in.COGS.IsPositive() {
		dpo = money.SafeDiv(in.AccountsPayable.Mul(days), in.COGS)
		dio = money.SafeDiv(in.Inventory.Mul(days), in.COGS)
	}

	var currentRatio, quickRatio decimal.Decimal
	if in.CurrentLiabilities.IsPositive() {
		currentRatio = money.SafeDiv(in.CurrentAssets, in.CurrentLiabilities)
		quickRatio = money.SafeDiv(in.CurrentAssets.Sub(in.Inventory), in.CurrentLiabilities)
	}

	nwc := in.CurrentAssets.Sub(in.CurrentLiabilities)
	var nwcPct decimal.Decimal
	if in.Revenue.IsPositive() {
		nwcPct = money.SafeDiv(nwc, in.Revenue)
	}

	return WorkingCapitalResult{
		DSO:                            dso,
		DPO:                            dpo,
		DIO:                            dio,
		CCC:                            dso.Add(dio).Sub(dpo),
		CurrentRatio:                   currentRatio,
		QuickRatio:                     quickRatio,
		NetWorkingCapital:              nwc,
		WorkingCapitalPercentOfRevenue: nwcPct,
	}
}
