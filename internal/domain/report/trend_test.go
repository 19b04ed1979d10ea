package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func points(values ...string) []TrendPoint {
	series := make([]TrendPoint, len(values))
	for i, v := range values {
		series[i] = TrendPoint{Period: string(rune('A' + i)), Value: d(v)}
	}
	return series
}

func TestAnalyzeTrend(t *testing.T) {
	tests := []struct {
		name       string
		series     []TrendPoint
		wantTrend  TrendDirection
		wantChange string
		wantAvg    string
		wantMin    string
		wantMax    string
	}{
		{"increasing", points("100", "80", "150"), TrendIncreasing, "50", "110", "80", "150"},
		{"decreasing", points("200", "250", "150"), TrendDecreasing, "-25", "200", "150", "250"},
		{"flat endpoints", points("100", "300", "100"), TrendStable, "0", "166.6666666666666667", "100", "300"},
		{"zero first value", points("0", "50", "100"), TrendStable, "0", "50", "0", "100"},
		{"negative to less negative", points("-200", "-100"), TrendDecreasing, "-50", "-150", "-200", "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalyzeTrend(tt.series)

			assert.Equal(t, tt.wantTrend, result.Trend)
			assert.True(t, result.ChangePercent.Equal(d(tt.wantChange)), "change: %s", result.ChangePercent)
			assert.True(t, result.AvgValue.Equal(d(tt.wantAvg)), "avg: %s", result.AvgValue)
			assert.True(t, result.MinValue.Equal(d(tt.wantMin)), "min: %s", result.MinValue)
			assert.True(t, result.MaxValue.Equal(d(tt.wantMax)), "max: %s", result.MaxValue)
			assert.Equal(t, len(tt.series), result.Points)
		})
	}
}

func TestAnalyzeTrend_Empty(t *testing.T) {
	result := AnalyzeTrend(nil)

	assert.Equal(t, TrendStable, result.Trend)
	assert.True(t, result.ChangePercent.IsZero())
	assert.True(t, result.AvgValue.IsZero())
	assert.True(t, result.MinValue.IsZero())
	assert.True(t, result.MaxValue.IsZero())
	assert.Zero(t, result.Points)
}

func TestAnalyzeTrend_SinglePoint(t *testing.T) {
	result := AnalyzeTrend(points("4200.50"))

	assert.Equal(t, TrendStable, result.Trend)
	assert.True(t, result.ChangePercent.IsZero())
	assert.True(t, result.AvgValue.Equal(d("4200.50")))
	assert.True(t, result.MinValue.Equal(d("4200.50")))
	assert.True(t, result.MaxValue.Equal(d("4200.50")))
}
