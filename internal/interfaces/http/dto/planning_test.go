package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgingRequest_AcceptsNumbersAndStrings(t *testing.T) {
	var req AgingRequest
	err := json.Unmarshal([]byte(`{"days_0_30": 1000.5, "days_31_60": "250.25", "days_61_90": 0, "days_90_plus": "0.01"}`), &req)
	require.NoError(t, err)

	aging := req.ToDomain()
	assert.Equal(t, "1000.5", aging.Days0To30.String())
	assert.Equal(t, "250.25", aging.Days31To60.String())
	assert.True(t, aging.Days61To90.IsZero())
	assert.Equal(t, "1250.76", aging.Total().String())
}

func TestCompareStrategiesRequest_ToDomainKeepsOrder(t *testing.T) {
	req := CompareStrategiesRequest{
		Strategies: []StrategyParamsRequest{
			{EarlyPaymentDays: 10, StandardTermsDays: 30, CollectionIntensity: decimal.NewFromInt(40)},
			{EarlyPaymentDays: 0, StandardTermsDays: 60, CollectionIntensity: decimal.NewFromInt(90)},
		},
	}

	params := req.ToDomain()
	require.Len(t, params, 2)
	assert.Equal(t, 10, params[0].EarlyPaymentDays)
	assert.Equal(t, 60, params[1].StandardTermsDays)
	assert.True(t, params[1].CollectionIntensity.Equal(decimal.NewFromInt(90)))
}

func TestRecommendationsRequest_Criteria(t *testing.T) {
	var req RecommendationsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"aging": {}, "target_dso": "35"}`), &req))

	criteria := req.Criteria()
	require.NotNil(t, criteria.TargetDSO)
	assert.Equal(t, "35", criteria.TargetDSO.String())
	assert.Nil(t, criteria.MaxBudget)
}

func TestStressTestRequest_ToDomain(t *testing.T) {
	req := StressTestRequest{
		Scenarios: []ScenarioRequest{
			{Name: "rate_shock", ARCollectionsPct: decimal.NewFromInt(-25), CapexPct: decimal.NewFromInt(-100)},
		},
	}

	scenarios := req.ToDomain()
	require.Len(t, scenarios, 1)
	assert.Equal(t, "rate_shock", scenarios[0].Name)
	assert.Equal(t, "-25", scenarios[0].ARCollectionsPct.String())
	assert.True(t, scenarios[0].PayrollPct.IsZero())

	assert.Empty(t, StressTestRequest{}.ToDomain())
}

func TestRiskAlertsRequest_ToDomain(t *testing.T) {
	var req RiskAlertsRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"exposures": [{"customer_id": "C-1", "customer_name": "Acme", "amount_90_plus": 600, "total_ar": 1000, "credit_limit": "800", "days_overdue": 130}],
		"min_severity": "warning"
	}`), &req))

	exposures := req.ToDomain()
	require.Len(t, exposures, 1)
	assert.Equal(t, "Acme", exposures[0].CustomerName)
	assert.Equal(t, 130, exposures[0].DaysOverdue)
	assert.Equal(t, "800", exposures[0].CreditLimit.String())
}
