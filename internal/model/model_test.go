package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearModel_Predict(t *testing.T) {
	m := LinearModel{Intercept: 1, Coefficients: []float64{2, 3}}

	y, err := m.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, y, 1e-12)

	_, err = m.Predict([]float64{1})
	require.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	adapter, err := Load(filepath.Join("testdata", "linear.yaml"))
	require.NoError(t, err)

	got, err := adapter.Predict(domain.RegressionFeatures{
		RainfallIntensityMmPerHour: 50,
		RoadLengthM:                100,
		RoadWidthM:                 10,
		RoadDepthM:                 0.3,
		DrainageCapacityM3PerHour:  2,
		HumidityPercent:            80,
		PressureHPa:                1010,
	})
	require.NoError(t, err)

	// flood = 2 + 0.1*50 + 10*0.3; drainage = 1 + 0.001*1000 - 0.5*2
	assert.InDelta(t, 10.0, got.Score, 1e-9)
	assert.Equal(t, domain.RiskModerate, got.Category)
	require.NotNil(t, got.DerivedHours)
	assert.InDelta(t, 1.0, got.DerivedHours.Drainage, 1e-9)
}

func TestLoad_JSON(t *testing.T) {
	artifact := map[string]any{
		"version":       1,
		"feature_order": domain.FeatureOrder,
		"scaler":        map[string]any{"mean": make([]float64, 8), "scale": []float64{1, 1, 1, 1, 1, 1, 1, 1}},
		"flood":         map[string]any{"intercept": 20, "coefficients": make([]float64, 8)},
		"drainage":      map[string]any{"intercept": 3, "coefficients": make([]float64, 8)},
	}
	data, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	adapter, err := Load(path)
	require.NoError(t, err)

	got, err := adapter.Predict(domain.RegressionFeatures{})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, got.Category)
}

func TestLoad_Unavailable(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"corrupt", write("corrupt.yaml", "version: [1\n")},
		{"wrong version", write("v2.yaml", "version: 2\n")},
		{"reordered features", write("order.yaml", `
version: 1
feature_order: [road_area, rainfall_intensity, road_depth, drainage_capacity, evaporation_rate, humidity, pressure, elevation]
`)},
		{"short scaler", write("scaler.yaml", `
version: 1
feature_order: [rainfall_intensity, road_area, road_depth, drainage_capacity, evaporation_rate, humidity, pressure, elevation]
scaler: {mean: [0], scale: [1]}
`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := Load(tt.path)
			require.ErrorIs(t, err, domain.ErrModelUnavailable)
			assert.Nil(t, adapter)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}
