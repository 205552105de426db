package http

import (
	"net/http"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/mockdata"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 30
	defaultProjects    = 5
	maxProjects        = 100
)

// generator builds a per-request generator, honouring a ?seed= override.
func (s *Server) generator(r *http.Request) (*mockdata.Generator, error) {
	seed, err := queryInt(r, "seed", s.deps.MockSeed)
	if err != nil {
		return nil, err
	}
	return mockdata.New(seed), nil
}

func boundedQuery(r *http.Request, key string, fallback, maxValue int64) (int, error) {
	v, err := queryInt(r, key, fallback)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > maxValue {
		return 0, &domain.InvalidInputError{Field: key, Reason: "out of range"}
	}
	return int(v), nil
}

func (s *Server) handleMockBiodiversity(w http.ResponseWriter, r *http.Request) {
	g, err := s.generator(r)
	if err != nil {
		s.fail(w, "mock_biodiversity", err)
		return
	}
	b, err := g.Biodiversity()
	if err != nil {
		s.fail(w, "mock_biodiversity", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleMockHistory(w http.ResponseWriter, r *http.Request) {
	g, err := s.generator(r)
	if err != nil {
		s.fail(w, "mock_history", err)
		return
	}
	days, err := boundedQuery(r, "days", defaultHistoryDays, maxHistoryDays)
	if err != nil {
		s.fail(w, "mock_history", err)
		return
	}
	writeJSON(w, http.StatusOK, g.AirQualityHistory(s.deps.Clock.Now(), days))
}

func (s *Server) handleMockProjects(w http.ResponseWriter, r *http.Request) {
	g, err := s.generator(r)
	if err != nil {
		s.fail(w, "mock_projects", err)
		return
	}
	n, err := boundedQuery(r, "n", defaultProjects, maxProjects)
	if err != nil {
		s.fail(w, "mock_projects", err)
		return
	}
	writeJSON(w, http.StatusOK, g.Projects(n))
}

func (s *Server) handleMockFloodPrediction(w http.ResponseWriter, r *http.Request) {
	g, err := s.generator(r)
	if err != nil {
		s.fail(w, "mock_flood_prediction", err)
		return
	}
	lat, err := queryCoord(r, "lat", 90)
	if err != nil {
		s.fail(w, "mock_flood_prediction", err)
		return
	}
	lon, err := queryCoord(r, "lon", 180)
	if err != nil {
		s.fail(w, "mock_flood_prediction", err)
		return
	}
	writeJSON(w, http.StatusOK, g.FloodPrediction(domain.Point{Lat: lat, Lon: lon}))
}
