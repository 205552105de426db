package domain

import (
	"errors"
	"fmt"
)

// FeatureOrder is the column order serialized regression artifacts were
// fitted on. Artifacts with any other order are not interchangeable.
var FeatureOrder = []string{
	"rainfall_intensity", // mm/hour
	"road_area",          // m²
	"road_depth",         // m
	"drainage_capacity",  // m³/hour
	"evaporation_rate",   // m³/hour/m²
	"humidity",           // %
	"pressure",           // hPa
	"elevation",          // m
}

// RegressionFeatures are the raw inputs of the flood/drainage regression.
// Road area is derived from length and width.
type RegressionFeatures struct {
	RainfallIntensityMmPerHour float64 `json:"rainfall_intensity"`
	RoadLengthM                float64 `json:"road_length"`
	RoadWidthM                 float64 `json:"road_width"`
	RoadDepthM                 float64 `json:"road_depth"`
	DrainageCapacityM3PerHour  float64 `json:"drainage_capacity"`
	EvaporationRate            float64 `json:"evaporation_rate"`
	HumidityPercent            float64 `json:"humidity"`
	PressureHPa                float64 `json:"pressure"`
	ElevationM                 float64 `json:"elevation"`
}

// RoadAreaM2 is length times width.
func (f RegressionFeatures) RoadAreaM2() float64 {
	return f.RoadLengthM * f.RoadWidthM
}

// Validate checks physical domains: rates, areas, and depth are
// non-negative, humidity is a percentage.
func (f RegressionFeatures) Validate() error {
	checks := []struct {
		field string
		v     float64
	}{
		{"rainfall_intensity", f.RainfallIntensityMmPerHour},
		{"road_length", f.RoadLengthM},
		{"road_width", f.RoadWidthM},
		{"road_depth", f.RoadDepthM},
		{"drainage_capacity", f.DrainageCapacityM3PerHour},
		{"evaporation_rate", f.EvaporationRate},
		{"pressure", f.PressureHPa},
	}
	for _, c := range checks {
		if err := checkNonNegative(c.field, c.v); err != nil {
			return err
		}
	}
	if err := checkRange("humidity", f.HumidityPercent, 0, 100); err != nil {
		return err
	}
	return checkFinite("elevation", f.ElevationM)
}

// Vector lays the features out in FeatureOrder.
func (f RegressionFeatures) Vector() []float64 {
	return []float64{
		f.RainfallIntensityMmPerHour,
		f.RoadAreaM2(),
		f.RoadDepthM,
		f.DrainageCapacityM3PerHour,
		f.EvaporationRate,
		f.HumidityPercent,
		f.PressureHPa,
		f.ElevationM,
	}
}

// Scaler is a pre-fitted standard scaling transform: (x - mean) / scale.
// A zero scale leaves the centered value unscaled.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// Validate checks the scaler matches the feature vector width.
func (s Scaler) Validate() error {
	if len(s.Mean) != len(FeatureOrder) || len(s.Scale) != len(FeatureOrder) {
		return fmt.Errorf("scaler expects %d features, has mean=%d scale=%d",
			len(FeatureOrder), len(s.Mean), len(s.Scale))
	}
	return nil
}

// Transform scales x into a new slice.
func (s Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) || len(x) != len(s.Scale) {
		return nil, fmt.Errorf("scale features: got %d values, scaler has %d", len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

// Regressor predicts one scalar from a scaled feature vector.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// RegressionAdapter scales features and feeds two externally trained
// regressors, one for flood time and one for drainage time.
type RegressionAdapter struct {
	Scaler   Scaler
	Flood    Regressor
	Drainage Regressor
}

// Predict returns flood and drainage hour estimates. The category is banded
// on flood time like the analytic estimator.
func (a *RegressionAdapter) Predict(f RegressionFeatures) (Assessment, error) {
	if a == nil || a.Flood == nil || a.Drainage == nil {
		return Assessment{}, &ModelUnavailableError{Err: errors.New("no regression models loaded")}
	}
	if err := f.Validate(); err != nil {
		return Assessment{}, err
	}

	scaled, err := a.Scaler.Transform(f.Vector())
	if err != nil {
		return Assessment{}, &ModelUnavailableError{Err: err}
	}

	flood, err := a.Flood.Predict(scaled)
	if err != nil {
		return Assessment{}, fmt.Errorf("predict flood time: %w", err)
	}
	drain, err := a.Drainage.Predict(scaled)
	if err != nil {
		return Assessment{}, fmt.Errorf("predict drainage time: %w", err)
	}

	return Assessment{
		Category:     ClassifyFloodTime(flood),
		Score:        flood,
		DerivedHours: &DerivedHours{Flood: flood, Drainage: drain},
	}, nil
}
