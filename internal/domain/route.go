package domain

import (
	"math"

	"github.com/umahmood/haversine"
)

// Eco score tuning.
const (
	ecoScoreMax           = 100.0
	ecoSpeedLimitKmh      = 80.0
	ecoSpeedPenaltyPerKmh = 0.5
	ecoBadWeatherPenalty  = 10.0
	ecoActiveTravelBonus  = 20.0
)

// Point is a WGS-84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Route is a travel leg as returned by a routing provider.
type Route struct {
	DistanceM float64 `json:"distance_m"`
	DurationS float64 `json:"duration_s"`
	Vehicle   string  `json:"vehicle"`
	Points    []Point `json:"points,omitempty"`
}

// PathLengthKm sums great-circle distances between consecutive points.
func PathLengthKm(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		a := haversine.Coord{Lat: points[i-1].Lat, Lon: points[i-1].Lon}
		b := haversine.Coord{Lat: points[i].Lat, Lon: points[i].Lon}
		_, km := haversine.Distance(a, b)
		total += km
	}
	return total
}

// DistanceKm prefers the provider's distance and falls back to the polyline.
func (r Route) DistanceKm() float64 {
	if r.DistanceM > 0 {
		return r.DistanceM / 1000
	}
	return PathLengthKm(r.Points)
}

// AverageSpeedKmh is distance over duration, or zero with no duration.
func (r Route) AverageSpeedKmh() float64 {
	hours := r.DurationS / 3600
	if hours <= 0 {
		return 0
	}
	return r.DistanceKm() / hours
}

func isBadWeather(condition string) bool {
	switch condition {
	case "Rain", "Snow", "Thunderstorm":
		return true
	}
	return false
}

func isActiveTravel(vehicle string) bool {
	return vehicle == "walk" || vehicle == "bike"
}

// EcoScore rates a route from 0 to 100. Speeds above 80 km/h lose half a
// point per km/h, bad weather costs 10, walking or biking earns 20.
func EcoScore(r Route, weatherCondition string) (float64, error) {
	if err := checkNonNegative("distance_m", r.DistanceM); err != nil {
		return 0, err
	}
	if err := checkNonNegative("duration_s", r.DurationS); err != nil {
		return 0, err
	}

	score := ecoScoreMax
	if speed := r.AverageSpeedKmh(); speed > ecoSpeedLimitKmh {
		score -= (speed - ecoSpeedLimitKmh) * ecoSpeedPenaltyPerKmh
	}
	if isBadWeather(weatherCondition) {
		score -= ecoBadWeatherPenalty
	}
	if isActiveTravel(r.Vehicle) {
		score += ecoActiveTravelBonus
	}
	return math.Max(0, math.Min(ecoScoreMax, score)), nil
}
