package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleForecast = `{
  "city": {"name": "Lahore", "country": "PK", "coord": {"lat": 31.5497, "lon": 74.3436}},
  "list": [
    {"dt": 1718420400, "main": {"temp": 28, "humidity": 40}, "weather": [{"main": "Rain", "description": "light rain"}], "wind": {"speed": 3.1}, "rain": {"3h": 20}},
    {"dt_txt": "2024-06-15 06:00:00", "main": {"temp": 30, "humidity": 50}, "weather": [{"main": "Clouds", "description": "overcast"}], "wind": {"speed": 2}, "rain": {"3h": 20}},
    {"dt": 1718452800, "main": {"temp": 32, "humidity": 60}, "weather": [], "wind": {"speed": 1}, "rain": {"3h": 20}}
  ]
}`

func TestSummarizeForecast(t *testing.T) {
	points := []ForecastPoint{
		{TempC: 28, HumidityPercent: 40, RainfallMM: 20},
		{TempC: 30, HumidityPercent: 50, RainfallMM: 20},
		{TempC: 32, HumidityPercent: 60, RainfallMM: 20},
	}

	got, err := SummarizeForecast(points)
	require.NoError(t, err)

	want := ForecastSummary{
		Points:             3,
		RainfallSumMM:      60,
		AvgTempC:           30,
		AvgHumidityPercent: 50,
		WaterScarcity:      RiskLow,
		HeatIsland:         RiskHigh,
		FloodRisk:          RiskModerate,
		EnergyKWh:          120,
		PredictedAQI:       85,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeForecast_Invalid(t *testing.T) {
	_, err := SummarizeForecast(nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SummarizeForecast([]ForecastPoint{{RainfallMM: -1}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SummarizeForecast([]ForecastPoint{{HumidityPercent: 101}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseForecast(t *testing.T) {
	rec, err := ParseForecast(RawEvent{Value: []byte(sampleForecast)})
	require.NoError(t, err)
	assert.Equal(t, "Lahore", rec.City.Name)
	assert.Len(t, rec.List, 3)
	assert.InDelta(t, 20.0, rec.List[0].Rain.ThreeHour, 1e-12)
}

func TestParseForecast_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"invalid json", `{not json`},
		{"missing city", `{"list": [{"dt": 1}]}`},
		{"empty list", `{"city": {"name": "Lahore"}, "list": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForecast(RawEvent{Value: []byte(tt.value)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse raw forecast")
		})
	}
}

func TestForecastPoints(t *testing.T) {
	rec, err := ParseForecast(RawEvent{Value: []byte(sampleForecast)})
	require.NoError(t, err)

	points := ForecastPoints(rec.List)
	require.Len(t, points, 3)
	assert.Equal(t, time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC), points[0].Time)
	assert.Equal(t, time.Date(2024, 6, 15, 6, 0, 0, 0, time.UTC), points[1].Time)
	assert.Equal(t, "light rain", points[0].Description)
	assert.Empty(t, points[2].Description)

	bad := ForecastPoints([]RawForecastItem{{DtTxt: "yesterday"}})
	assert.True(t, bad[0].Time.IsZero())
}

func TestAssessForecast(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 30, 0, 0, time.UTC)
	rec, err := ParseForecast(RawEvent{Value: []byte(sampleForecast)})
	require.NoError(t, err)

	a, err := AssessForecast(rec, now)
	require.NoError(t, err)

	assert.Equal(t, "Lahore", a.Location)
	assert.Equal(t, "PK", a.Country)
	assert.Equal(t, Point{Lat: 31.5497, Lon: 74.3436}, a.Geo)
	assert.Equal(t, time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC), a.PeriodFrom)
	assert.Equal(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), a.PeriodTo)
	assert.Equal(t, "2024-06-15T03:00:00Z", a.TimeBucket)
	assert.Equal(t, now, a.AssessedAt)
	assert.Equal(t, RiskModerate, a.Summary.FloodRisk)
	assert.Regexp(t, `^forecast-[0-9a-f]{16}$`, a.ID)

	again, err := AssessForecast(rec, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID, "ID must not depend on assessment time")
}

func TestAssessForecast_InvalidItem(t *testing.T) {
	var rec RawForecast
	rec.City.Name = "Lahore"
	item := RawForecastItem{Dt: 1718420400}
	item.Main.Humidity = 140
	rec.List = []RawForecastItem{item}

	_, err := AssessForecast(rec, time.Now())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeriveTimeBucket(t *testing.T) {
	assert.Empty(t, deriveTimeBucket(time.Time{}))
	loc := time.FixedZone("PKT", 5*3600)
	assert.Equal(t, "2024-06-15T03:00:00Z", deriveTimeBucket(time.Date(2024, 6, 15, 8, 45, 0, 0, loc)))
}

func TestSerializeAssessment(t *testing.T) {
	a := ForecastAssessment{
		ID:         "forecast-0011223344556677",
		Location:   "Lahore",
		Summary:    ForecastSummary{FloodRisk: RiskHigh, WaterScarcity: RiskLow, HeatIsland: RiskLow},
		AssessedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		RawPayload: []byte("ignored"),
	}

	out, err := SerializeAssessment(a)
	require.NoError(t, err)
	assert.Equal(t, []byte(a.ID), out.Key)
	assert.Equal(t, map[string]string{
		"location":    "Lahore",
		"flood_risk":  "High",
		"assessed_at": "2024-06-15T00:00:00Z",
	}, out.Headers)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Value, &decoded))
	assert.NotContains(t, decoded, "RawPayload")
	assert.Equal(t, "High", decoded["summary"].(map[string]any)["flood_risk"])
}

func TestSerializeAssessment_UnknownLevel(t *testing.T) {
	_, err := SerializeAssessment(ForecastAssessment{ID: "x"})
	require.Error(t, err)
}
