// Package model loads externally trained regression artifacts for the
// flood/drainage regression adapter. Training is out of scope; artifacts are
// produced offline and shipped as YAML (or JSON, which YAML accepts).
package model

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// ArtifactVersion is the only artifact layout this loader understands.
const ArtifactVersion = 1

// Artifact is the serialized form of a pair of fitted linear regressors and
// their shared scaler.
type Artifact struct {
	Version      int           `yaml:"version"`
	FeatureOrder []string      `yaml:"feature_order"`
	Scaler       domain.Scaler `yaml:"scaler"`
	Flood        LinearModel   `yaml:"flood"`
	Drainage     LinearModel   `yaml:"drainage"`
}

// LinearModel is y = intercept + Σ coefficients[i]*x[i].
type LinearModel struct {
	Intercept    float64   `yaml:"intercept" json:"intercept"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
}

// Predict implements domain.Regressor.
func (m LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("linear model expects %d features, got %d", len(m.Coefficients), len(x))
	}
	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * x[i]
	}
	return y, nil
}

// Load reads an artifact from disk and builds a regression adapter. Every
// failure is a *domain.ModelUnavailableError carrying the path.
func Load(path string) (*domain.RegressionAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ModelUnavailableError{Path: path, Err: err}
	}
	adapter, err := Parse(data)
	if err != nil {
		return nil, &domain.ModelUnavailableError{Path: path, Err: err}
	}
	return adapter, nil
}

// Parse decodes and validates artifact bytes.
func Parse(data []byte) (*domain.RegressionAdapter, error) {
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &domain.RegressionAdapter{
		Scaler:   a.Scaler,
		Flood:    a.Flood,
		Drainage: a.Drainage,
	}, nil
}

// Validate rejects artifacts fitted on a different feature layout.
func (a Artifact) Validate() error {
	if a.Version != ArtifactVersion {
		return fmt.Errorf("unsupported artifact version %d", a.Version)
	}
	if !slices.Equal(a.FeatureOrder, domain.FeatureOrder) {
		return fmt.Errorf("feature order %v does not match %v", a.FeatureOrder, domain.FeatureOrder)
	}
	if err := a.Scaler.Validate(); err != nil {
		return err
	}
	n := len(domain.FeatureOrder)
	if len(a.Flood.Coefficients) != n {
		return errors.New("flood model coefficient count does not match feature order")
	}
	if len(a.Drainage.Coefficients) != n {
		return errors.New("drainage model coefficient count does not match feature order")
	}
	return nil
}
