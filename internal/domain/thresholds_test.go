package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyWaterScarcity(t *testing.T) {
	tests := []struct {
		rain     float64
		expected RiskLevel
	}{
		{51, RiskLow},
		{50, RiskModerate},
		{26, RiskModerate},
		{25, RiskHigh},
		{10, RiskHigh},
		{0, RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyWaterScarcity(tt.rain), "rain=%v", tt.rain)
	}
}

func TestClassifyHeatIsland(t *testing.T) {
	tests := []struct {
		temp     float64
		expected RiskLevel
	}{
		{18, RiskLow},
		{24.99, RiskLow},
		{25, RiskModerate},
		{29.9, RiskModerate},
		{30, RiskHigh},
		{41, RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyHeatIsland(tt.temp), "temp=%v", tt.temp)
	}
}

func TestClassifyForecastFloodRisk(t *testing.T) {
	assert.Equal(t, RiskHigh, ClassifyForecastFloodRisk(100.5))
	assert.Equal(t, RiskModerate, ClassifyForecastFloodRisk(100))
	assert.Equal(t, RiskModerate, ClassifyForecastFloodRisk(51))
	assert.Equal(t, RiskLow, ClassifyForecastFloodRisk(50))
	assert.Equal(t, RiskLow, ClassifyForecastFloodRisk(0))
}

func TestClassifyAirPollution(t *testing.T) {
	assert.Equal(t, RiskLow, ClassifyAirPollution(1))
	assert.Equal(t, RiskModerate, ClassifyAirPollution(2))
	assert.Equal(t, RiskModerate, ClassifyAirPollution(3.9))
	assert.Equal(t, RiskHigh, ClassifyAirPollution(4))
	assert.Equal(t, RiskHigh, ClassifyAirPollution(5))
}

func TestClassifyFloodTime(t *testing.T) {
	assert.Equal(t, RiskLow, ClassifyFloodTime(7.9))
	assert.Equal(t, RiskModerate, ClassifyFloodTime(8))
	assert.Equal(t, RiskHigh, ClassifyFloodTime(16))
}

func TestClassifySDGAlignment(t *testing.T) {
	assert.Equal(t, RiskLow, ClassifySDGAlignment(49))
	assert.Equal(t, RiskModerate, ClassifySDGAlignment(50))
	assert.Equal(t, RiskHigh, ClassifySDGAlignment(75))
}

func TestDescribeAQI(t *testing.T) {
	assert.Equal(t, "Good", DescribeAQI(1))
	assert.Equal(t, "Fair", DescribeAQI(2))
	assert.Equal(t, "Moderate", DescribeAQI(3))
	assert.Equal(t, "Poor", DescribeAQI(4))
	assert.Equal(t, "Very Poor", DescribeAQI(5))
	assert.Equal(t, "Very Poor", DescribeAQI(9))
}

func TestRiskLevel_JSON(t *testing.T) {
	data, err := json.Marshal(Assessment{Category: RiskModerate, Score: 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"Moderate","score":0.5}`, string(data))

	var a Assessment
	require.NoError(t, json.Unmarshal([]byte(`{"category":"Medium","score":9}`), &a))
	assert.Equal(t, RiskModerate, a.Category)

	require.Error(t, json.Unmarshal([]byte(`{"category":"Severe"}`), &a))

	_, err = json.Marshal(RiskLevel(0))
	require.Error(t, err)
}

func TestParseRiskLevel(t *testing.T) {
	for _, l := range []RiskLevel{RiskLow, RiskModerate, RiskHigh} {
		got, err := ParseRiskLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := ParseRiskLevel("low")
	require.ErrorIs(t, err, ErrInvalidInput)
}
