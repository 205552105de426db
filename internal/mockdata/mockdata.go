// Package mockdata generates the placeholder datasets the dashboards show
// where no real source exists yet: species counts, project scores, and
// historical air quality. Output is fully determined by the seed.
package mockdata

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
)

// SpeciesReference is the species count treated as a fully healthy habitat.
const SpeciesReference = 100

// Bounding box of the sample city used for generated coordinates.
var (
	minLat, maxLat = 22.9, 23.1
	minLon, maxLon = 72.4, 72.7
)

// Generator produces mock datasets. It is not safe for concurrent use;
// create one per request.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed int64) *Generator {
	s := uint64(seed)
	return &Generator{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Biodiversity is a mock local biodiversity reading.
type Biodiversity struct {
	SpeciesObserved      int     `json:"species_observed"`
	SpeciesReference     int     `json:"species_reference"`
	Index                float64 `json:"index"`
	WasteRecycledPercent int     `json:"waste_recycled_percent"`
}

// Biodiversity draws a species count in [50,100) and a recycling share in
// [20,80), and scores the species count.
func (g *Generator) Biodiversity() (Biodiversity, error) {
	observed := g.intRange(50, 100)
	index, err := domain.BiodiversityIndex(observed, SpeciesReference)
	if err != nil {
		return Biodiversity{}, err
	}
	return Biodiversity{
		SpeciesObserved:      observed,
		SpeciesReference:     SpeciesReference,
		Index:                index,
		WasteRecycledPercent: g.intRange(20, 80),
	}, nil
}

// Project is a mock infrastructure project.
type Project struct {
	Name        string       `json:"name"`
	Location    domain.Point `json:"location"`
	ImpactScore int          `json:"impact_score"`
	GreenScore  int          `json:"green_score"`
}

// Projects generates n projects with scores in [1,100).
func (g *Generator) Projects(n int) []Project {
	out := make([]Project, n)
	for i := range out {
		out[i] = Project{
			Name:        fmt.Sprintf("Project %d", i),
			Location:    g.point(),
			ImpactScore: g.intRange(1, 100),
			GreenScore:  g.intRange(1, 100),
		}
	}
	return out
}

// Sample is one point of a historical series.
type Sample struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// AirQualityHistory returns hourly AQI-like values in [10,100) covering the
// days before end, oldest first.
func (g *Generator) AirQualityHistory(end time.Time, days int) []Sample {
	if days <= 0 {
		return nil
	}
	end = end.UTC().Truncate(time.Hour)
	start := end.Add(-time.Duration(days) * 24 * time.Hour)

	n := days*24 + 1
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Value: g.floatRange(10, 100),
		}
	}
	return out
}

// FloodPrediction is a simulated flood/drainage estimate near a location.
type FloodPrediction struct {
	Location   domain.Point     `json:"location"`
	FloodHours float64          `json:"flood_hours"`
	DrainHours float64          `json:"drain_hours"`
	Category   domain.RiskLevel `json:"category"`
}

// FloodPrediction jitters center by up to 0.01° and draws flood and drain
// times in [0,24), banded on flood time.
func (g *Generator) FloodPrediction(center domain.Point) FloodPrediction {
	p := domain.Point{
		Lat: center.Lat + g.floatRange(-0.01, 0.01),
		Lon: center.Lon + g.floatRange(-0.01, 0.01),
	}
	flood := g.floatRange(0, 24)
	return FloodPrediction{
		Location:   p,
		FloodHours: flood,
		DrainHours: g.floatRange(0, 24),
		Category:   domain.ClassifyFloodTime(flood),
	}
}

// City is a named forecast location.
type City struct {
	Name    string
	Country string
	At      domain.Point
}

// SampleCities are the locations used for generated forecast fixtures.
var SampleCities = []City{
	{"Lahore", "PK", domain.Point{Lat: 31.5497, Lon: 74.3436}},
	{"Ahmedabad", "IN", domain.Point{Lat: 23.0225, Lon: 72.5714}},
	{"Karachi", "PK", domain.Point{Lat: 24.8607, Lon: 67.0011}},
}

// ForecastStep is the spacing of provider forecast items.
const ForecastStep = 3 * time.Hour

// Forecast generates a provider-shaped forecast with steps items spaced
// ForecastStep apart, starting at start. Roughly 60% of steps are dry.
func (g *Generator) Forecast(city, country string, at domain.Point, start time.Time, steps int) domain.RawForecast {
	var f domain.RawForecast
	f.City.Name = city
	f.City.Country = country
	f.City.Coord.Lat = at.Lat
	f.City.Coord.Lon = at.Lon

	start = start.UTC()
	f.List = make([]domain.RawForecastItem, steps)
	for i := range f.List {
		t := start.Add(time.Duration(i) * ForecastStep)
		item := &f.List[i]
		item.Dt = t.Unix()
		item.DtTxt = t.Format("2006-01-02 15:04:05")
		item.Main.Temp = round2(g.floatRange(15, 40))
		item.Main.Humidity = float64(g.intRange(20, 96))
		item.Wind.Speed = round2(g.floatRange(0, 10))

		main, desc := "Clear", "clear sky"
		if g.rng.Float64() >= 0.6 {
			item.Rain.ThreeHour = round2(g.floatRange(0.1, 15))
			main, desc = "Rain", "moderate rain"
		}
		item.Weather = []domain.WeatherCondition{{Main: main, Description: desc}}
	}
	return f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (g *Generator) point() domain.Point {
	return domain.Point{Lat: g.floatRange(minLat, maxLat), Lon: g.floatRange(minLon, maxLon)}
}

// intRange returns an int in [lo,hi).
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo)
}

// floatRange returns a float64 in [lo,hi).
func (g *Generator) floatRange(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
