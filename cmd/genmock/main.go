// Command genmock generates forecast fixtures for the pipeline and API test
// suites. Raw forecasts come from the seeded mock generator; assessments are
// produced by the real pipeline transformer under a fixed clock so the
// output matches pipeline behavior byte for byte.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/raw_forecasts.json \
//	  -assessed-out data/mock/forecast_assessments.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/mockdata"
	"github.com/couchcryptid/urban-risk-service/internal/pipeline"
)

var (
	baseDate   = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	assessedAt = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for raw forecast JSON fixture")
	assessedOut := flag.String("assessed-out", "", "output path for assessed forecast JSON fixture")
	seed := flag.Int64("seed", 42, "base seed; city i uses seed+i")
	steps := flag.Int("steps", 40, "forecast steps per city (3 hours each)")
	flag.Parse()

	if *rawOut == "" || *assessedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -assessed-out")
	}
	if *steps < 1 {
		return fmt.Errorf("-steps must be positive, got %d", *steps)
	}

	transformer := pipeline.NewTransformer(
		clockwork.NewFakeClockAt(assessedAt),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	raws := make([]domain.RawForecast, 0, len(mockdata.SampleCities))
	assessed := make([]domain.ForecastAssessment, 0, len(mockdata.SampleCities))
	for i, city := range mockdata.SampleCities {
		forecast := mockdata.New(*seed+int64(i)).Forecast(city.Name, city.Country, city.At, baseDate, *steps)
		a, err := assess(transformer, forecast)
		if err != nil {
			return fmt.Errorf("assessing %s: %w", city.Name, err)
		}
		raws = append(raws, forecast)
		assessed = append(assessed, a)
		log.Printf("%s: %d steps, flood risk %s", city.Name, len(forecast.List), a.Summary.FloodRisk)
	}

	if err := writeJSON(*rawOut, raws); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*assessedOut, assessed); err != nil {
		return fmt.Errorf("writing assessed fixture: %w", err)
	}
	log.Printf("wrote assessed fixture: %s", *assessedOut)

	printStats(assessed)
	return nil
}

func assess(t *pipeline.ForecastTransformer, forecast domain.RawForecast) (domain.ForecastAssessment, error) {
	payload, err := json.Marshal(forecast)
	if err != nil {
		return domain.ForecastAssessment{}, fmt.Errorf("marshal forecast: %w", err)
	}
	out, err := t.Transform(context.Background(), domain.RawEvent{
		Key:       []byte(forecast.City.Name),
		Value:     payload,
		Timestamp: baseDate,
	})
	if err != nil {
		return domain.ForecastAssessment{}, err
	}
	var a domain.ForecastAssessment
	if err := json.Unmarshal(out.Value, &a); err != nil {
		return domain.ForecastAssessment{}, fmt.Errorf("decode assessment: %w", err)
	}
	return a, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(assessed []domain.ForecastAssessment) {
	counts := map[string]map[string]int{
		"flood_risk":     {},
		"water_scarcity": {},
		"heat_island":    {},
	}
	for i := range assessed {
		s := assessed[i].Summary
		counts["flood_risk"][s.FloodRisk.String()]++
		counts["water_scarcity"][s.WaterScarcity.String()]++
		counts["heat_island"][s.HeatIsland.String()]++
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(assessed))
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := counts[name]
		fmt.Printf("%s: Low=%d Moderate=%d High=%d\n", name, c["Low"], c["Moderate"], c["High"])
	}
	for i := range assessed {
		a := &assessed[i]
		fmt.Printf("  %s: rain=%.2fmm temp=%.2fC id=%s\n", a.Location, a.Summary.RainfallSumMM, a.Summary.AvgTempC, a.ID)
	}
}
