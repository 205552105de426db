package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/urban-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/urban-risk-service/internal/domain"
)

type weatherResponse struct {
	openweather.Weather
	HeatIsland   domain.RiskLevel `json:"heat_island"`
	EnergyKWh    float64          `json:"energy_kwh"`
	PredictedAQI int              `json:"predicted_aqi"`
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if s.deps.Provider == nil {
		s.fail(w, "weather", errProviderDisabled)
		return
	}
	cur, err := s.deps.Provider.CurrentWeather(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "weather", upstream(err))
		return
	}
	resp := weatherResponse{
		Weather:      cur,
		HeatIsland:   domain.ClassifyHeatIsland(cur.TempC),
		EnergyKWh:    domain.EstimateEnergyConsumption(cur.TempC),
		PredictedAQI: domain.PredictAQI(cur.TempC, cur.HumidityPercent),
	}
	s.recordAssessment("heat-island", resp.HeatIsland)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleForecastAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "forecast_assessment"

	if s.deps.Provider == nil {
		s.fail(w, op, errProviderDisabled)
		return
	}
	rec, err := s.deps.Provider.Forecast(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, op, upstream(err))
		return
	}
	a, err := domain.AssessForecast(rec, s.deps.Clock.Now().UTC())
	if err != nil {
		s.fail(w, op, err)
		return
	}
	s.recordAssessment(op, a.Summary.FloodRisk)
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleAirQuality(w http.ResponseWriter, r *http.Request) {
	const op = "air_quality"

	if s.deps.Provider == nil {
		s.fail(w, op, errProviderDisabled)
		return
	}
	cur, err := s.deps.Provider.CurrentWeather(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, op, upstream(err))
		return
	}
	aq, err := s.deps.Provider.AirPollution(r.Context(), cur.Geo.Lat, cur.Geo.Lon)
	if err != nil {
		s.fail(w, op, upstream(err))
		return
	}
	s.recordAssessment(op, aq.Category)
	writeJSON(w, http.StatusOK, aq)
}
