package report

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// VarianceStatus describes whether an actual figure beat its budget
type VarianceStatus string

const (
	VarianceFavorable   VarianceStatus = "favorable"
	VarianceUnfavorable VarianceStatus = "unfavorable"
)

// String returns the string representation of the status
func (s VarianceStatus) String() string {
	return string(s)
}

// VarianceResult compares one actual figure with its budget
type VarianceResult struct {
	Variance        decimal.Decimal `json:"variance"`         // Actual - Budget
	VariancePercent decimal.Decimal `json:"variance_percent"` // Variance / Budget * 100
	Status          VarianceStatus  `json:"status"`
}

// ComputeVariance compares actual with budget. Revenue-like lines are
// favorable when actual >= budget; expense lines (isExpenseLine) are
// favorable when actual <= budget.
func ComputeVariance(actual, budget decimal.Decimal, isExpenseLine bool) VarianceResult {
	variance := actual.Sub(budget)

	favorable := !variance.IsNegative()
	if isExpenseLine {
		favorable = !variance.IsPositive()
	}

	status := VarianceUnfavorable
	if favorable {
		status = VarianceFavorable
	}

	return VarianceResult{
		Variance:        variance,
		VariancePercent: money.Percentage(variance, budget),
		Status:          status,
	}
}

// VarianceLine is a named budget line for batch variance analysis
type VarianceLine struct {
	Name          string          `json:"name"`
	Actual        decimal.Decimal `json:"actual"`
	Budget        decimal.Decimal `json:"budget"`
	IsExpenseLine bool            `json:"is_expense_line"`
}

// VarianceLineResult pairs a line with its computed variance
type VarianceLineResult struct {
	VarianceLine
	VarianceResult
}

// VarianceReport summarizes variances across many budget lines
type VarianceReport struct {
	Lines            []VarianceLineResult `json:"lines"`
	FavorableCount   int                  `json:"favorable_count"`
	UnfavorableCount int                  `json:"unfavorable_count"`
	RevenueVariance  decimal.Decimal      `json:"revenue_variance"` // Sum of variances on revenue lines
	ExpenseVariance  decimal.Decimal      `json:"expense_variance"` // Sum of variances on expense lines
	NetImpact        decimal.Decimal      `json:"net_impact"`       // RevenueVariance - ExpenseVariance
}

// ComputeVarianceReport runs ComputeVariance over every line, preserving input order
func ComputeVarianceReport(lines []VarianceLine) VarianceReport {
	report := VarianceReport{
		Lines: make([]VarianceLineResult, 0, len(lines)),
	}

	for _, line := range lines {
		result := ComputeVariance(line.Actual, line.Budget, line.IsExpenseLine)
		report.Lines = append(report.Lines, VarianceLineResult{
			VarianceLine:   line,
			VarianceResult: result,
		})

		if result.Status == VarianceFavorable {
			report.FavorableCount++
		} else {
			report.UnfavorableCount++
		}

		if line.IsExpenseLine {
			report.ExpenseVariance = report.ExpenseVariance.Add(result.Variance)
		} else {
			report.RevenueVariance = report.RevenueVariance.Add(result.Variance)
		}
	}

	report.NetImpact = report.RevenueVariance.Sub(report.ExpenseVariance)
	return report
}
