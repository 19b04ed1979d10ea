package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeWorkingCapital(t *testing.T) {
	result := ComputeWorkingCapital(WorkingCapitalInputs{
		AccountsReceivable: d("300000"),
		AccountsPayable:    d("150000"),
		Inventory:          d("200000"),
		Revenue:            d("3650000"),
		COGS:               d("1825000"),
		CurrentAssets:      d("900000"),
		CurrentLiabilities: d("450000"),
		DaysInPeriod:       365,
	})

	assert.True(t, result.DSO.Equal(d("30")), "dso: %s", result.DSO)
	assert.True(t, result.DPO.Equal(d("30")), "dpo: %s", result.DPO)
	assert.True(t, result.DIO.Equal(d("40")), "dio: %s", result.DIO)
	assert.True(t, result.CCC.Equal(d("40")), "ccc: %s", result.CCC)
	assert.True(t, result.CurrentRatio.Equal(d("2")))
	assert.True(t, result.QuickRatio.Equal(d("1.5555555555555556")), "quick: %s", result.QuickRatio)
	assert.True(t, result.NetWorkingCapital.Equal(d("450000")))
	assert.InDelta(t, 0.1233, result.WorkingCapitalPercentOfRevenue.InexactFloat64(), 0.0001)
}

func TestComputeWorkingCapital_NegativeCCC(t *testing.T) {
	// Supplier terms longer than collection plus holding period
	result := ComputeWorkingCapital(WorkingCapitalInputs{
		AccountsReceivable: d("10000"),
		AccountsPayable:    d("90000"),
		Inventory:          d("5000"),
		Revenue:            d("365000"),
		COGS:               d("365000"),
		CurrentAssets:      d("100000"),
		CurrentLiabilities: d("120000"),
		DaysInPeriod:       365,
	})

	assert.True(t, result.CCC.IsNegative(), "ccc: %s", result.CCC)
	assert.True(t, result.CCC.Equal(d("-75")))
	assert.True(t, result.NetWorkingCapital.Equal(d("-20000")))
}

func TestComputeWorkingCapital_ZeroDenominators(t *testing.T) {
	result := ComputeWorkingCapital(WorkingCapitalInputs{
		AccountsReceivable: d("300000"),
		AccountsPayable:    d("150000"),
		Inventory:          d("200000"),
		CurrentAssets:      d("900000"),
		DaysInPeriod:       365,
	})

	assert.True(t, result.DSO.IsZero())
	assert.True(t, result.DPO.IsZero())
	assert.True(t, result.DIO.IsZero())
	assert.True(t, result.CCC.IsZero())
	assert.True(t, result.CurrentRatio.IsZero())
	assert.True(t, result.QuickRatio.IsZero())
	assert.True(t, result.WorkingCapitalPercentOfRevenue.IsZero())
	assert.True(t, result.NetWorkingCapital.Equal(d("900000")))
}
