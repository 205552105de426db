package mockdata

import (
	"testing"
	"time"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Deterministic(t *testing.T) {
	a, b := New(42), New(42)

	ba, err := a.Biodiversity()
	require.NoError(t, err)
	bb, err := b.Biodiversity()
	require.NoError(t, err)
	assert.Equal(t, ba, bb)

	assert.Equal(t, a.Projects(5), b.Projects(5))

	end := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, a.AirQualityHistory(end, 2), b.AirQualityHistory(end, 2))
}

func TestGenerator_SeedsDiffer(t *testing.T) {
	assert.NotEqual(t, New(1).Projects(10), New(2).Projects(10))
}

func TestBiodiversity_Ranges(t *testing.T) {
	g := New(7)
	for range 200 {
		b, err := g.Biodiversity()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.SpeciesObserved, 50)
		assert.Less(t, b.SpeciesObserved, 100)
		assert.GreaterOrEqual(t, b.WasteRecycledPercent, 20)
		assert.Less(t, b.WasteRecycledPercent, 80)
		assert.InDelta(t, float64(b.SpeciesObserved), b.Index, 1e-9)
	}
}

func TestProjects(t *testing.T) {
	projects := New(3).Projects(50)
	require.Len(t, projects, 50)
	assert.Equal(t, "Project 0", projects[0].Name)

	for _, p := range projects {
		assert.True(t, p.Location.Lat >= 22.9 && p.Location.Lat < 23.1, "lat %v", p.Location.Lat)
		assert.True(t, p.Location.Lon >= 72.4 && p.Location.Lon < 72.7, "lon %v", p.Location.Lon)
		assert.True(t, p.GreenScore >= 1 && p.GreenScore < 100)
		assert.True(t, p.ImpactScore >= 1 && p.ImpactScore < 100)
	}
}

func TestAirQualityHistory(t *testing.T) {
	end := time.Date(2024, 6, 15, 12, 34, 0, 0, time.UTC)
	series := New(5).AirQualityHistory(end, 1)

	require.Len(t, series, 25)
	assert.Equal(t, time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC), series[0].Time)
	assert.Equal(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), series[24].Time)
	for _, s := range series {
		assert.True(t, s.Value >= 10 && s.Value < 100)
	}

	assert.Nil(t, New(5).AirQualityHistory(end, 0))
}

func TestFloodPrediction(t *testing.T) {
	center := domain.Point{Lat: 31.5, Lon: 74.3}
	g := New(11)
	for range 100 {
		p := g.FloodPrediction(center)
		assert.InDelta(t, center.Lat, p.Location.Lat, 0.01)
		assert.InDelta(t, center.Lon, p.Location.Lon, 0.01)
		assert.True(t, p.FloodHours >= 0 && p.FloodHours < 24)
		assert.True(t, p.DrainHours >= 0 && p.DrainHours < 24)
		assert.Equal(t, domain.ClassifyFloodTime(p.FloodHours), p.Category)
	}
}

func TestForecast(t *testing.T) {
	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	f := New(9).Forecast("Lahore", "PK", domain.Point{Lat: 31.5, Lon: 74.3}, start, 40)

	assert.Equal(t, "Lahore", f.City.Name)
	assert.Equal(t, "PK", f.City.Country)
	require.Len(t, f.List, 40)

	points := domain.ForecastPoints(f.List)
	for i, p := range points {
		assert.Equal(t, start.Add(time.Duration(i)*ForecastStep), p.Time)
		assert.True(t, p.TempC >= 15 && p.TempC <= 40)
		assert.True(t, p.HumidityPercent >= 20 && p.HumidityPercent < 96)
		assert.GreaterOrEqual(t, p.RainfallMM, 0.0)
		require.Len(t, f.List[i].Weather, 1)
		if p.RainfallMM > 0 {
			assert.Equal(t, "Rain", f.List[i].Weather[0].Main)
		}
	}

	_, err := domain.SummarizeForecast(points)
	require.NoError(t, err)

	assert.Equal(t, f, New(9).Forecast("Lahore", "PK", domain.Point{Lat: 31.5, Lon: 74.3}, start, 40))
}
