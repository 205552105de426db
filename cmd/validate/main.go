// Command validate performs integrity checks on the forecast fixtures
// written by genmock: raw forecast shape, assessment parity with the live
// domain code, and internal consistency of every summary.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/raw_forecasts.json \
//	  -assessed-json data/mock/forecast_assessments.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/mockdata"
)

var timeBucketPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:00:00Z$`)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw forecast JSON fixture")
	assessedJSON := flag.String("assessed-json", "", "path to assessed forecast JSON fixture")
	flag.Parse()

	if *rawJSON == "" || *assessedJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *assessedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, assessedPath string) int {
	fmt.Println("=== Forecast Fixture Validation ===")
	fmt.Println()

	raws, err := loadJSON[domain.RawForecast](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}
	assessed, err := loadJSON[domain.ForecastAssessment](assessedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load assessed JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRawForecasts(raws),
		validateAssessmentParity(raws, assessed),
		validateSummaryConsistency(assessed),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw forecasts, %d assessments\n", len(raws), len(assessed))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Phase 1: raw forecast shape ──

func validateRawForecasts(raws []domain.RawForecast) *phase {
	p := &phase{name: "Raw forecast shape"}
	if len(raws) == 0 {
		p.errorf("no raw forecasts")
		return p
	}
	for _, rec := range raws {
		name := rec.City.Name
		if name == "" {
			p.errorf("forecast with empty city name")
		}
		if len(rec.List) == 0 {
			p.errorf("%s: no forecast items", name)
			continue
		}
		var prev int64
		for i, it := range rec.List {
			if i > 0 && time.Duration(it.Dt-prev)*time.Second != mockdata.ForecastStep {
				p.errorf("%s[%d]: step of %ds, want %s", name, i, it.Dt-prev, mockdata.ForecastStep)
			}
			prev = it.Dt
			if it.Rain.ThreeHour < 0 {
				p.errorf("%s[%d]: negative rainfall %g", name, i, it.Rain.ThreeHour)
			}
			if it.Main.Humidity < 0 || it.Main.Humidity > 100 {
				p.errorf("%s[%d]: humidity %g outside [0,100]", name, i, it.Main.Humidity)
			}
			if len(it.Weather) == 0 {
				p.errorf("%s[%d]: missing weather condition", name, i)
			}
		}
	}
	return p
}

// ── Phase 2: assessments match the live domain code ──

func validateAssessmentParity(raws []domain.RawForecast, assessed []domain.ForecastAssessment) *phase {
	p := &phase{name: "Assessment parity"}
	if len(raws) != len(assessed) {
		p.errorf("raw count %d != assessed count %d", len(raws), len(assessed))
		return p
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.ForecastAssessment{}, "AssessedAt", "RawPayload"),
		cmpopts.EquateApprox(0, 1e-9),
	}
	for i, rec := range raws {
		got := assessed[i]
		want, err := domain.AssessForecast(rec, got.AssessedAt)
		if err != nil {
			p.errorf("%s: re-assess: %v", rec.City.Name, err)
			continue
		}
		if diff := cmp.Diff(want, got, opts); diff != "" {
			p.errorf("%s: assessment mismatch (-want +got):\n%s", rec.City.Name, diff)
		}
	}
	return p
}

// ── Phase 3: summaries are internally consistent ──

func validateSummaryConsistency(assessed []domain.ForecastAssessment) *phase {
	p := &phase{name: "Summary consistency"}
	seen := make(map[string]string, len(assessed))
	for i := range assessed {
		a := &assessed[i]
		s := a.Summary

		if prev, dup := seen[a.ID]; dup {
			p.errorf("%s: duplicate id %s (also %s)", a.Location, a.ID, prev)
		}
		seen[a.ID] = a.Location

		if got := domain.ClassifyWaterScarcity(s.RainfallSumMM); got != s.WaterScarcity {
			p.errorf("%s: water scarcity %s, rainfall %.2f implies %s", a.Location, s.WaterScarcity, s.RainfallSumMM, got)
		}
		if got := domain.ClassifyForecastFloodRisk(s.RainfallSumMM); got != s.FloodRisk {
			p.errorf("%s: flood risk %s, rainfall %.2f implies %s", a.Location, s.FloodRisk, s.RainfallSumMM, got)
		}
		if got := domain.ClassifyHeatIsland(s.AvgTempC); got != s.HeatIsland {
			p.errorf("%s: heat island %s, mean temp %.2f implies %s", a.Location, s.HeatIsland, s.AvgTempC, got)
		}
		if got := domain.EstimateEnergyConsumption(s.AvgTempC); got != s.EnergyKWh {
			p.errorf("%s: energy %.2f, mean temp implies %.2f", a.Location, s.EnergyKWh, got)
		}
		if a.PeriodTo.Before(a.PeriodFrom) {
			p.errorf("%s: period ends %s before it starts %s", a.Location, a.PeriodTo, a.PeriodFrom)
		}
		if !timeBucketPattern.MatchString(a.TimeBucket) {
			p.errorf("%s: malformed time bucket %q", a.Location, a.TimeBucket)
		}
	}
	return p
}
