package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// forecastTimeLayout is the layout of dt_txt, always UTC.
const forecastTimeLayout = "2006-01-02 15:04:05"

// ParseForecast decodes a RawEvent's value into a RawForecast.
func ParseForecast(raw RawEvent) (RawForecast, error) {
	var rec RawForecast
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return RawForecast{}, fmt.Errorf("parse raw forecast: %w", err)
	}
	if strings.TrimSpace(rec.City.Name) == "" {
		return RawForecast{}, fmt.Errorf("parse raw forecast: %w", invalid("city.name", "is required"))
	}
	if len(rec.List) == 0 {
		return RawForecast{}, fmt.Errorf("parse raw forecast: %w", invalid("list", "is empty"))
	}
	return rec, nil
}

// ForecastPoints converts provider items into domain forecast points.
// Items with neither dt nor a parseable dt_txt get a zero time.
func ForecastPoints(items []RawForecastItem) []ForecastPoint {
	points := make([]ForecastPoint, 0, len(items))
	for _, it := range items {
		p := ForecastPoint{
			Time:            itemTime(it),
			TempC:           it.Main.Temp,
			HumidityPercent: it.Main.Humidity,
			WindSpeedMS:     it.Wind.Speed,
			RainfallMM:      it.Rain.ThreeHour,
		}
		if len(it.Weather) > 0 {
			p.Description = it.Weather[0].Description
		}
		points = append(points, p)
	}
	return points
}

func itemTime(it RawForecastItem) time.Time {
	if it.Dt > 0 {
		return time.Unix(it.Dt, 0).UTC()
	}
	t, err := time.Parse(forecastTimeLayout, strings.TrimSpace(it.DtTxt))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AssessForecast summarizes a parsed forecast and stamps it with an ID and
// the assessment time.
func AssessForecast(rec RawForecast, now time.Time) (ForecastAssessment, error) {
	points := ForecastPoints(rec.List)
	summary, err := SummarizeForecast(points)
	if err != nil {
		return ForecastAssessment{}, fmt.Errorf("assess forecast for %s: %w", rec.City.Name, err)
	}

	from, to := forecastPeriod(points)
	return ForecastAssessment{
		ID:         generateID(rec.City.Name, rec.City.Country, rec.City.Coord.Lat, rec.City.Coord.Lon, from),
		Location:   rec.City.Name,
		Country:    rec.City.Country,
		Geo:        Point{Lat: rec.City.Coord.Lat, Lon: rec.City.Coord.Lon},
		Summary:    summary,
		PeriodFrom: from,
		PeriodTo:   to,
		TimeBucket: deriveTimeBucket(from),
		AssessedAt: now,
	}, nil
}

func forecastPeriod(points []ForecastPoint) (time.Time, time.Time) {
	var from, to time.Time
	for _, p := range points {
		if p.Time.IsZero() {
			continue
		}
		if from.IsZero() || p.Time.Before(from) {
			from = p.Time
		}
		if p.Time.After(to) {
			to = p.Time
		}
	}
	return from, to
}

// generateID produces a deterministic ID from the location and forecast
// start, so replaying a forecast yields the same assessment ID.
func generateID(location, country string, lat, lon float64, from time.Time) string {
	input := fmt.Sprintf("%s|%s|%.4f|%.4f|%d", location, country, lat, lon, from.Unix())
	hash := sha256.Sum256([]byte(input))
	return "forecast-" + hex.EncodeToString(hash[:8])
}

// deriveTimeBucket truncates to the hour in UTC. Returns "" for zero time.
func deriveTimeBucket(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Truncate(time.Hour).Format(time.RFC3339)
}

// SerializeAssessment marshals an assessment into a sink message keyed by ID.
func SerializeAssessment(a ForecastAssessment) (OutputEvent, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize forecast assessment: %w", err)
	}
	return OutputEvent{
		Key:   []byte(a.ID),
		Value: data,
		Headers: map[string]string{
			"location":    a.Location,
			"flood_risk":  a.Summary.FloodRisk.String(),
			"assessed_at": a.AssessedAt.Format(time.RFC3339),
		},
	}, nil
}
