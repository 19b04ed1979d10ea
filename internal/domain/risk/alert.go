package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Exposure is one customer's receivable position
type Exposure struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Amount90Plus decimal.Decimal `json:"amount_90_plus"`
	TotalAR      decimal.Decimal `json:"total_ar"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	DaysOverdue  int             `json:"days_overdue"`
}

// Alert is a scored exposure with a readable summary
type Alert struct {
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Risk         RiskScore `json:"risk"`
	Message      string    `json:"message"`
}

// EvaluateExposures scores every exposure, keeps those at or above
// minSeverity and orders them by score, highest first. Ties keep input order.
func EvaluateExposures(exposures []Exposure, minSeverity Severity) []Alert {
	alerts := make([]Alert, 0, len(exposures))
	for _, e := range exposures {
		score := ScoreRisk(e.Amount90Plus, e.TotalAR, e.CreditLimit, e.DaysOverdue)
		if !score.Severity.AtLeast(minSeverity) {
			continue
		}
		alerts = append(alerts, Alert{
			CustomerID:   e.CustomerID,
			CustomerName: e.CustomerName,
			Risk:         score,
			Message:      alertMessage(e, score),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Risk.Score > alerts[j].Risk.Score
	})
	return alerts
}

func alertMessage(e Exposure, score RiskScore) string {
	name := e.CustomerName
	if name == "" {
		name = e.CustomerID
	}

	var reasons []string
	if score.DaysOverduePoints > 0 {
		reasons = append(reasons, fmt.Sprintf("%d days overdue", e.DaysOverdue))
	}
	if score.OverduePoints > 0 {
		reasons = append(reasons, fmt.Sprintf("%s%% of AR past 90 days", score.OverduePercent.StringFixed(1)))
	}
	if score.UtilizationPoints > 0 {
		reasons = append(reasons, fmt.Sprintf("%s%% of credit limit used", score.CreditUtilization.StringFixed(1)))
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("%s: %s risk (score %d)", name, score.Severity, score.Score)
	}

	return fmt.Sprintf("%s: %s risk (score %d): %s", name, score.Severity, score.Score, strings.Join(reasons, ", "))
}
