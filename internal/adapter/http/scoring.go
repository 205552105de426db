package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
)

type floodDrainageRequest struct {
	Scenario  *domain.FloodScenario   `json:"scenario,omitempty"`
	LandCover *domain.LandCover       `json:"land_cover,omitempty"`
	Params    *domain.HydraulicParams `json:"params,omitempty"`
	// ForecastHours, when positive, adds an hourly drain-down series.
	ForecastHours int `json:"forecast_hours,omitempty"`
}

type floodDrainageResponse struct {
	domain.FloodEstimate
	Assessment domain.Assessment `json:"assessment"`
	Series     []float64         `json:"series,omitempty"`
}

type compositeRequest struct {
	Factors map[string]float64 `json:"factors"`
}

type thresholdRequest struct {
	Value float64 `json:"value"`
}

type ecoScoreRequest struct {
	Route     domain.Route `json:"route"`
	Condition string       `json:"condition"`
}

type ecoScoreResponse struct {
	EcoScore        float64 `json:"eco_score"`
	DistanceKm      float64 `json:"distance_km"`
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
}

type footprintRequest struct {
	EnergyKWh *float64 `json:"energy_kwh,omitempty"`
	TempC     *float64 `json:"temp_c,omitempty"`
	TravelKm  float64  `json:"travel_km"`
}

type footprintResponse struct {
	EnergyKWh   float64 `json:"energy_kwh"`
	CarbonKgCO2 float64 `json:"carbon_kg_co2"`
}

type sdgRequest struct {
	Goals map[string]float64 `json:"goals"`
}

type sustainabilityRequest struct {
	GreenScores []float64 `json:"green_scores"`
}

func (s *Server) handleHydraulics(w http.ResponseWriter, r *http.Request) {
	var cover domain.LandCover
	if err := decodeJSON(w, r, &cover); err != nil {
		s.badRequest(w, err)
		return
	}
	if err := cover.Validate(); err != nil {
		s.fail(w, "hydraulics", err)
		return
	}
	writeJSON(w, http.StatusOK, domain.EstimateHydraulics(cover))
}

func (s *Server) handleFloodDrainage(w http.ResponseWriter, r *http.Request) {
	const op = "flood_drainage"

	var req floodDrainageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	scenario := domain.DefaultFloodScenario
	if req.Scenario != nil {
		scenario = *req.Scenario
	}

	var (
		est domain.FloodEstimate
		err error
	)
	switch {
	case req.LandCover != nil && req.Params != nil:
		err = &domain.InvalidInputError{Field: "land_cover", Reason: "give either land_cover or params, not both"}
	case req.LandCover != nil:
		est, err = domain.SimulateLandCover(scenario, *req.LandCover)
	case req.Params != nil:
		est, err = domain.EstimateFloodDrainage(scenario, *req.Params)
	default:
		err = &domain.InvalidInputError{Field: "land_cover", Reason: "land_cover or params is required"}
	}
	if err != nil {
		s.fail(w, op, err)
		return
	}

	resp := floodDrainageResponse{FloodEstimate: est, Assessment: est.Assessment()}
	if req.ForecastHours > 0 {
		resp.Series, err = domain.FloodDrainForecast(est.FloodTimeHours, est.DrainageTimeHours, req.ForecastHours)
		if err != nil {
			s.fail(w, op, err)
			return
		}
	}
	s.recordAssessment(op, resp.Assessment.Category)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComposite(w http.ResponseWriter, r *http.Request) {
	var req compositeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	a, err := domain.ClassifyComposite(req.Factors)
	if err != nil {
		s.fail(w, "composite", err)
		return
	}
	s.recordAssessment("composite", a.Category)
	writeJSON(w, http.StatusOK, a)
}

var thresholdClassifiers = map[string]func(float64) domain.RiskLevel{
	"water-scarcity": domain.ClassifyWaterScarcity,
	"heat-island":    domain.ClassifyHeatIsland,
	"flood-forecast": domain.ClassifyForecastFloodRisk,
	"air-pollution":  domain.ClassifyAirPollution,
	"flood-time":     domain.ClassifyFloodTime,
	"sdg-alignment":  domain.ClassifySDGAlignment,
}

func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	classify, ok := thresholdClassifiers[kind]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("unknown classifier %q", kind), Kind: "not_found"})
		return
	}

	var req thresholdRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	a := domain.Assessment{Category: classify(req.Value), Score: req.Value}
	s.recordAssessment(kind, a.Category)
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleRegression(w http.ResponseWriter, r *http.Request) {
	const op = "regression"

	var f domain.RegressionFeatures
	if err := decodeJSON(w, r, &f); err != nil {
		s.badRequest(w, err)
		return
	}
	if s.deps.Model == nil {
		s.fail(w, op, &domain.ModelUnavailableError{Err: fmt.Errorf("no regression artifact configured")})
		return
	}
	a, err := s.deps.Model.Predict(f)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	s.recordAssessment(op, a.Category)
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleEcoScore(w http.ResponseWriter, r *http.Request) {
	var req ecoScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	score, err := domain.EcoScore(req.Route, req.Condition)
	if err != nil {
		s.fail(w, "eco_score", err)
		return
	}
	writeJSON(w, http.StatusOK, ecoScoreResponse{
		EcoScore:        score,
		DistanceKm:      req.Route.DistanceKm(),
		AverageSpeedKmh: req.Route.AverageSpeedKmh(),
	})
}

func (s *Server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	var req footprintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}

	var energy float64
	switch {
	case req.EnergyKWh != nil:
		energy = *req.EnergyKWh
	case req.TempC != nil:
		energy = domain.EstimateEnergyConsumption(*req.TempC)
	default:
		s.fail(w, "footprint", &domain.InvalidInputError{Field: "energy_kwh", Reason: "energy_kwh or temp_c is required"})
		return
	}

	carbon, err := domain.CarbonFootprint(energy, req.TravelKm)
	if err != nil {
		s.fail(w, "footprint", err)
		return
	}
	writeJSON(w, http.StatusOK, footprintResponse{EnergyKWh: energy, CarbonKgCO2: carbon})
}

func (s *Server) handleSDGAlignment(w http.ResponseWriter, r *http.Request) {
	var req sdgRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	scores, err := domain.NormalizeSDGScores(req.Goals)
	if err != nil {
		s.fail(w, "sdg_alignment", err)
		return
	}
	for _, sc := range scores {
		s.recordAssessment("sdg_alignment", sc.Category)
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleSustainabilityIndex(w http.ResponseWriter, r *http.Request) {
	var req sustainabilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	index, err := domain.SustainabilityIndex(req.GreenScores)
	if err != nil {
		s.fail(w, "sustainability_index", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"sustainability_index": index})
}
