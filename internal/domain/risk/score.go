// Package risk scores customer receivable exposure and raises alerts.
package risk

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// Severity classifies a risk score
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is one of the known values
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// rank orders severities from info (0) to critical (2)
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

// Score bands
const (
	MaxScore = 100

	CriticalThreshold = 70
	WarningThreshold  = 40
)

type band struct {
	threshold int64
	points    int
}

// Each table is ordered from the highest threshold down; the first match wins.
func daysOverdueBands() []band {
	return []band{{120, 40}, {90, 30}, {60, 20}, {30, 10}}
}

func overduePercentBands() []band {
	return []band{{50, 40}, {30, 30}, {15, 20}, {5, 10}}
}

func utilizationBands() []band {
	return []band{{120, 20}, {100, 15}, {80, 10}}
}

func points(value decimal.Decimal, bands []band) int {
	for _, b := range bands {
		if value.GreaterThanOrEqual(decimal.NewFromInt(b.threshold)) {
			return b.points
		}
	}
	return 0
}

// RiskScore is a composite 0-100 score with its contributing factors
type RiskScore struct {
	Score             int             `json:"score"`
	Severity          Severity        `json:"severity"`
	DaysOverduePoints int             `json:"days_overdue_points"`
	OverduePoints     int             `json:"overdue_points"`
	UtilizationPoints int             `json:"utilization_points"`
	OverduePercent    decimal.Decimal `json:"overdue_percent"`    // 90+ share of total AR
	CreditUtilization decimal.Decimal `json:"credit_utilization"` // Total AR over credit limit, percent
}

// ScoreRisk combines overdue age, the 90+ share of AR and credit utilization
// into a score capped at MaxScore. A zero total AR or credit limit zeroes the
// factor that divides by it.
func ScoreRisk(amount90Plus, totalAR, creditLimit decimal.Decimal, daysOverdue int) RiskScore {
	overduePct := money.Percentage(amount90Plus, totalAR)
	utilization := money.Percentage(totalAR, creditLimit)

	rs := RiskScore{
		DaysOverduePoints: points(decimal.NewFromInt(int64(daysOverdue)), daysOverdueBands()),
		OverduePoints:     points(overduePct, overduePercentBands()),
		UtilizationPoints: points(utilization, utilizationBands()),
		OverduePercent:    overduePct,
		CreditUtilization: utilization,
	}

	rs.Score = min(rs.DaysOverduePoints+rs.OverduePoints+rs.UtilizationPoints, MaxScore)
	rs.Severity = SeverityForScore(rs.Score)
	return rs
}

// SeverityForScore maps a score to its alert severity
func SeverityForScore(score int) Severity {
	switch {
	case score >= CriticalThreshold:
		return SeverityCritical
	case score >= WarningThreshold:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
