package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyComposite(t *testing.T) {
	tests := []struct {
		name     string
		factors  map[string]float64
		score    float64
		expected RiskLevel
	}{
		{"all zero", map[string]float64{"a": 0, "b": 0}, 0, RiskLow},
		{"all max", map[string]float64{"a": 10, "b": 10}, 1, RiskHigh},
		{"moderate", map[string]float64{"a": 3, "b": 4}, 0.35, RiskModerate},
		{"single high factor", map[string]float64{"monsoon": 7}, 0.7, RiskHigh},
		{"twenty sliders at midpoint", sliders(20, 5), 0.5, RiskModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ClassifyComposite(tt.factors)
			require.NoError(t, err)
			assert.InDelta(t, tt.score, a.Score, 1e-12)
			assert.Equal(t, tt.expected, a.Category)
			assert.Nil(t, a.DerivedHours)
		})
	}
}

func TestClassifyComposite_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		factors map[string]float64
	}{
		{"empty", map[string]float64{}},
		{"nil", nil},
		{"above range", map[string]float64{"a": 11}},
		{"negative", map[string]float64{"a": -1}},
		{"NaN", map[string]float64{"a": math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifyComposite(tt.factors)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestClassifyComposite_Deterministic(t *testing.T) {
	factors := map[string]float64{"a": 0.1, "b": 0.2, "c": 0.3, "d": 9.7, "e": 3.3}

	first, err := ClassifyComposite(factors)
	require.NoError(t, err)
	for range 50 {
		next, err := ClassifyComposite(factors)
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(first.Score), math.Float64bits(next.Score))
	}
}

func sliders(n int, v float64) map[string]float64 {
	m := make(map[string]float64, n)
	for i := range n {
		m[string(rune('a'+i))] = v
	}
	return m
}
