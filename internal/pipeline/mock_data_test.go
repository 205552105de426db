package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/mockdata"
	"github.com/couchcryptid/urban-risk-service/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastTransformer_WithMockForecasts(t *testing.T) {
	assessedAt := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	transformer := pipeline.NewTransformer(clockwork.NewFakeClockAt(assessedAt), discardLogger())
	start := time.Date(2024, time.June, 15, 3, 0, 0, 0, time.UTC)

	for seed, city := range mockdata.SampleCities {
		t.Run(city.Name, func(t *testing.T) {
			forecast := mockdata.New(int64(seed)).Forecast(city.Name, city.Country, city.At, start, 40)
			payload, err := json.Marshal(forecast)
			require.NoError(t, err)

			out, err := transformer.Transform(context.Background(), domain.RawEvent{Key: []byte(city.Name), Value: payload})
			require.NoError(t, err)

			var got domain.ForecastAssessment
			require.NoError(t, json.Unmarshal(out.Value, &got))

			want, err := domain.SummarizeForecast(domain.ForecastPoints(forecast.List))
			require.NoError(t, err)

			assert.Equal(t, city.Name, got.Location)
			assert.Equal(t, city.Country, got.Country)
			assert.Equal(t, city.At, got.Geo)
			assert.Equal(t, want, got.Summary)
			assert.Equal(t, start, got.PeriodFrom)
			assert.Equal(t, start.Add(39*mockdata.ForecastStep), got.PeriodTo)
			assert.Equal(t, assessedAt, got.AssessedAt)
			assert.Equal(t, got.Summary.FloodRisk.String(), out.Headers["flood_risk"])
		})
	}
}

func TestForecastTransformer_StableIDs(t *testing.T) {
	start := time.Date(2024, time.June, 15, 3, 0, 0, 0, time.UTC)
	forecast := mockdata.New(1).Forecast("Lahore", "PK", mockdata.SampleCities[0].At, start, 8)
	payload, err := json.Marshal(forecast)
	require.NoError(t, err)

	first := pipeline.NewTransformer(clockwork.NewFakeClockAt(start), discardLogger())
	later := pipeline.NewTransformer(clockwork.NewFakeClockAt(start.Add(6*time.Hour)), discardLogger())

	a, err := first.Transform(context.Background(), domain.RawEvent{Value: payload})
	require.NoError(t, err)
	b, err := later.Transform(context.Background(), domain.RawEvent{Value: payload})
	require.NoError(t, err)

	assert.Equal(t, a.Key, b.Key, "replayed forecasts keep their assessment ID")
	assert.NotEqual(t, a.Headers["assessed_at"], b.Headers["assessed_at"])
}
