package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathLengthKm(t *testing.T) {
	assert.Zero(t, PathLengthKm(nil))
	assert.Zero(t, PathLengthKm([]Point{{Lat: 10, Lon: 10}}))

	// One degree of longitude on the equator.
	km := PathLengthKm([]Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}})
	assert.InDelta(t, 111.19, km, 0.1)
}

func TestEcoScore(t *testing.T) {
	tests := []struct {
		name     string
		route    Route
		weather  string
		expected float64
	}{
		{"slow car clear", Route{DistanceM: 30000, DurationS: 3600, Vehicle: "car"}, "Clear", 100},
		{"fast car", Route{DistanceM: 120000, DurationS: 3600, Vehicle: "car"}, "Clear", 80},
		{"fast car in rain", Route{DistanceM: 120000, DurationS: 3600, Vehicle: "car"}, "Rain", 70},
		{"walk in snow is capped", Route{DistanceM: 4000, DurationS: 3600, Vehicle: "walk"}, "Snow", 100},
		{"no duration", Route{DistanceM: 1000, Vehicle: "car"}, "Thunderstorm", 90},
		{"very fast floors at zero", Route{DistanceM: 400000, DurationS: 3600, Vehicle: "car"}, "Clear", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EcoScore(tt.route, tt.weather)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestEcoScore_PolylineFallback(t *testing.T) {
	r := Route{
		DurationS: 3600,
		Vehicle:   "car",
		Points:    []Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}},
	}
	got, err := EcoScore(r, "Clear")
	require.NoError(t, err)
	assert.InDelta(t, 100-(111.19-80)*0.5, got, 0.1)
}

func TestEcoScore_Invalid(t *testing.T) {
	_, err := EcoScore(Route{DistanceM: -5}, "Clear")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRoute_DistanceKm(t *testing.T) {
	polyline := []Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}

	assert.InDelta(t, 12.5, Route{DistanceM: 12500, Points: polyline}.DistanceKm(), 1e-9)
	assert.InDelta(t, PathLengthKm(polyline), Route{Points: polyline}.DistanceKm(), 1e-9)
	assert.Zero(t, Route{}.DistanceKm())
}
