package domain

import (
	"math"
	"sort"
)

const (
	baseEnergyKWh          = 100.0
	energyKWhPerDegree     = 2.0
	energyComfortC         = 20.0
	carbonKgPerKWh         = 0.5
	carbonKgPerKm          = 0.2
	maxPredictedAQI        = 300
	aqiPerDegree           = 2.0
	aqiPerHumidityPercent  = 0.5
	sustainabilityIndexMax = 100.0
)

// EstimateEnergyConsumption is a simple cooling-load model: 100 kWh plus
// 2 kWh for every degree above 20°C.
func EstimateEnergyConsumption(tempC float64) float64 {
	return baseEnergyKWh + energyKWhPerDegree*math.Max(0, tempC-energyComfortC)
}

// PredictAQI approximates an AQI from temperature and humidity, truncated
// to an integer and clamped to [0,300].
func PredictAQI(tempC, humidityPercent float64) int {
	v := int(tempC*aqiPerDegree + humidityPercent*aqiPerHumidityPercent)
	if v < 0 {
		return 0
	}
	if v > maxPredictedAQI {
		return maxPredictedAQI
	}
	return v
}

// CarbonFootprint estimates monthly kg CO2 from energy use and travel.
func CarbonFootprint(energyKWh, travelKm float64) (float64, error) {
	if err := checkNonNegative("energy_kwh", energyKWh); err != nil {
		return 0, err
	}
	if err := checkNonNegative("travel_km", travelKm); err != nil {
		return 0, err
	}
	return energyKWh*carbonKgPerKWh + travelKm*carbonKgPerKm, nil
}

// SDGScore is one goal's normalized alignment.
type SDGScore struct {
	Goal     string    `json:"goal"`
	Score    float64   `json:"score"`
	Category RiskLevel `json:"category"`
}

// NormalizeSDGScores scales raw per-goal contributions so the strongest goal
// is 100, classifies each, and returns them sorted by goal name.
func NormalizeSDGScores(raw map[string]float64) ([]SDGScore, error) {
	if len(raw) == 0 {
		return nil, invalid("goals", "at least one goal is required")
	}
	goals := make([]string, 0, len(raw))
	var maxScore float64
	for goal, v := range raw {
		if err := checkNonNegative(goal, v); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
		maxScore = math.Max(maxScore, v)
	}
	if maxScore == 0 {
		return nil, &UndefinedRiskError{Quantity: "sdg normalization"}
	}
	sort.Strings(goals)

	out := make([]SDGScore, 0, len(goals))
	for _, goal := range goals {
		score := raw[goal] / maxScore * 100
		out = append(out, SDGScore{Goal: goal, Score: score, Category: ClassifySDGAlignment(score)})
	}
	return out, nil
}

// SustainabilityIndex is the mean project green score, clamped to [0,100].
func SustainabilityIndex(greenScores []float64) (float64, error) {
	if len(greenScores) == 0 {
		return 0, invalid("green_scores", "at least one score is required")
	}
	var sum float64
	for _, s := range greenScores {
		if err := checkFinite("green_scores", s); err != nil {
			return 0, err
		}
		sum += s
	}
	return clamp(sum/float64(len(greenScores)), 0, sustainabilityIndexMax), nil
}

// BiodiversityIndex scores species richness against a reference count,
// scaled to [0,100].
func BiodiversityIndex(speciesObserved, speciesReference int) (float64, error) {
	if speciesObserved < 0 {
		return 0, invalid("species_observed", "must be non-negative, got %d", speciesObserved)
	}
	if speciesReference <= 0 {
		return 0, &UndefinedRiskError{Quantity: "biodiversity reference"}
	}
	return clamp(float64(speciesObserved)/float64(speciesReference)*100, 0, 100), nil
}
