package report

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// CashFlowInputs holds one period's opening cash and cash movements
type CashFlowInputs struct {
	OpeningCash          decimal.Decimal `json:"opening_cash"`
	ARCollections        decimal.Decimal `json:"ar_collections"`         // Receipts from customers
	APPayments           decimal.Decimal `json:"ap_payments"`            // Payments to suppliers
	Payroll              decimal.Decimal `json:"payroll"`                // Salaries and wages paid
	Capex                decimal.Decimal `json:"capex"`                  // Capital expenditure
	DebtProceeds         decimal.Decimal `json:"debt_proceeds"`          // New borrowing
	DebtRepayment        decimal.Decimal `json:"debt_repayment"`         // Principal repaid
	EquityProceeds       decimal.Decimal `json:"equity_proceeds"`        // Equity raised
	WorkingCapitalChange decimal.Decimal `json:"working_capital_change"` // Positive releases cash
}

// CashFlowResult is the derived cash flow statement for one period
type CashFlowResult struct {
	OpeningCash       decimal.Decimal `json:"opening_cash"`
	OperatingCashFlow decimal.Decimal `json:"operating_cash_flow"` // ARCollections - APPayments - Payroll + WorkingCapitalChange
	InvestingCashFlow decimal.Decimal `json:"investing_cash_flow"` // -Capex
	FinancingCashFlow decimal.Decimal `json:"financing_cash_flow"` // DebtProceeds - DebtRepayment + EquityProceeds
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`       // Operating + Investing + Financing
	ClosingCash       decimal.Decimal `json:"closing_cash"`        // OpeningCash + NetCashFlow
}

// ComputeCashFlow derives the cash flow statement. Every input is accepted,
// negative values included, and closing cash always equals opening cash plus
// the three activity totals.
func ComputeCashFlow(in CashFlowInputs) CashFlowResult {
	operating := in.ARCollections.
		Sub(in.APPayments).
		Sub(in.Payroll).
		Add(in.WorkingCapitalChange)
	investing := in.Capex.Neg()
	financing := in.DebtProceeds.
		Sub(in.DebtRepayment).
		Add(in.EquityProceeds)
	net := operating.Add(investing).Add(financing)

	return CashFlowResult{
		OpeningCash:       in.OpeningCash,
		OperatingCashFlow: operating,
		InvestingCashFlow: investing,
		FinancingCashFlow: financing,
		NetCashFlow:       net,
		ClosingCash:       in.OpeningCash.Add(net),
	}
}

// PLInputs holds the P&L line items for one period
type PLInputs struct {
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	Depreciation      decimal.Decimal `json:"depreciation"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	TaxRatePct        decimal.Decimal `json:"tax_rate_pct"` // e.g. 25 for 25%
}

// PLResult is the profit and loss waterfall. Margins are percentages of revenue.
type PLResult struct {
	Revenue      decimal.Decimal `json:"revenue"`
	GrossProfit  decimal.Decimal `json:"gross_profit"` // Revenue - COGS
	GrossMargin  decimal.Decimal `json:"gross_margin"`
	EBITDA       decimal.Decimal `json:"ebitda"` // GrossProfit - OperatingExpenses
	EBITDAMargin decimal.Decimal `json:"ebitda_margin"`
	EBIT         decimal.Decimal `json:"ebit"` // EBITDA - Depreciation
	EBITMargin   decimal.Decimal `json:"ebit_margin"`
	EBT          decimal.Decimal `json:"ebt"` // EBIT - InterestExpense
	EBTMargin    decimal.Decimal `json:"ebt_margin"`
	Taxes        decimal.Decimal `json:"taxes"`      // Never negative
	NetProfit    decimal.Decimal `json:"net_profit"` // EBT - Taxes
	NetMargin    decimal.Decimal `json:"net_margin"`
}

// ComputePL runs the P&L waterfall. Losses produce no tax credit: taxes are
// clamped at zero when EBT is zero or negative.
func ComputePL(in PLInputs) PLResult {
	gross := in.Revenue.Sub(in.COGS)
	ebitda := gross.Sub(in.OperatingExpenses)
	ebit := ebitda.Sub(in.Depreciation)
	ebt := ebit.Sub(in.InterestExpense)
	taxes := money.NonNegative(money.PercentOf(ebt, in.TaxRatePct))
	net := ebt.Sub(taxes)

	return PLResult{
		Revenue:      in.Revenue,
		GrossProfit:  gross,
		GrossMargin:  margin(gross, in.Revenue),
		EBITDA:       ebitda,
		EBITDAMargin: margin(ebitda, in.Revenue),
		EBIT:         ebit,
		EBITMargin:   margin(ebit, in.Revenue),
		EBT:          ebt,
		EBTMargin:    margin(ebt, in.Revenue),
		Taxes:        taxes,
		NetProfit:    net,
		NetMargin:    margin(net, in.Revenue),
	}
}

// margin returns value as a percentage of revenue, zero when revenue is not positive
func margin(value, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return money.Percentage(value, revenue)
}
