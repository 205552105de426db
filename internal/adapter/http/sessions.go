package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/urban-risk-service/internal/store"
)

type reportRequest struct {
	Location string `json:"location"`
	Kind     string `json:"kind"`
	Details  string `json:"details"`
}

type ecoPointsRequest struct {
	Points int64 `json:"points"`
}

func (s *Server) handleAddReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	rep, err := s.deps.Sessions.AddReport(r.Context(), store.Report{
		SessionID: chi.URLParam(r, "id"),
		Location:  req.Location,
		Kind:      req.Kind,
		Details:   req.Details,
	})
	if err != nil {
		s.fail(w, "add_report", err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.deps.Sessions.ListReports(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "list_reports", err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleAddEcoPoints(w http.ResponseWriter, r *http.Request) {
	var req ecoPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	p, err := s.deps.Sessions.AddEcoPoints(r.Context(), chi.URLParam(r, "id"), req.Points)
	if err != nil {
		s.fail(w, "add_eco_points", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetEcoPoints(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Sessions.GetEcoPoints(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "get_eco_points", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
