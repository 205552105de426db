package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// RiskLevel is a three-way ordered risk category.
type RiskLevel int

const (
	RiskLow RiskLevel = iota + 1
	RiskModerate
	RiskHigh
)

func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	default:
		return ""
	}
}

// ParseRiskLevel accepts the labels produced by String. "Medium" is accepted
// as an alias for Moderate.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "Low":
		return RiskLow, nil
	case "Moderate", "Medium":
		return RiskModerate, nil
	case "High":
		return RiskHigh, nil
	default:
		return 0, invalid("category", "unknown risk level %q", s)
	}
}

func (l RiskLevel) MarshalJSON() ([]byte, error) {
	if l.String() == "" {
		return nil, fmt.Errorf("marshal risk level: unknown value %d", int(l))
	}
	return json.Marshal(l.String())
}

func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// DerivedHours holds the physical time-to-event estimates of a flood assessment.
type DerivedHours struct {
	Flood    float64 `json:"flood"`
	Drainage float64 `json:"drainage"`
}

// Assessment is the common result shape of every scoring function.
type Assessment struct {
	Category     RiskLevel     `json:"category"`
	Score        float64       `json:"score"`
	DerivedHours *DerivedHours `json:"derived_hours,omitempty"`
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must be non-negative, got %g", v)
	}
	return nil
}

func checkRange(field string, v, lo, hi float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return invalid(field, "must be within [%g, %g], got %g", lo, hi, v)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
