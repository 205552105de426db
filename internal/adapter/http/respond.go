package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/couchcryptid/urban-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/urban-risk-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every non-2xx API response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

var (
	errProviderDisabled = errors.New("weather provider is disabled")
	errUpstream         = errors.New("weather provider failed")
)

// upstream marks provider failures other than unknown locations as 502s.
func upstream(err error) error {
	if errors.Is(err, openweather.ErrLocationNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", errUpstream, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// errorKind maps an error onto its metric label and HTTP status.
func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input", http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUndefinedRisk):
		return "undefined_risk", http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrModelUnavailable):
		return "model_unavailable", http.StatusServiceUnavailable
	case errors.Is(err, errProviderDisabled):
		return "provider_disabled", http.StatusServiceUnavailable
	case errors.Is(err, openweather.ErrLocationNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, errUpstream):
		return "upstream", http.StatusBadGateway
	default:
		return "internal", http.StatusInternalServerError
	}
}

// fail records the failure against operation and writes the error response.
func (s *Server) fail(w http.ResponseWriter, operation string, err error) {
	kind, status := errorKind(err)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ScoringErrors.WithLabelValues(operation, kind).Inc()
	}

	body := errorBody{Error: err.Error(), Kind: kind}
	var inv *domain.InvalidInputError
	if errors.As(err, &inv) {
		body.Field = inv.Field
	}
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request failed", "operation", operation, "kind", kind, "error", err)
	}
	writeJSON(w, status, body)
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: "bad_request"})
}

func (s *Server) recordAssessment(operation string, category domain.RiskLevel) {
	if s.deps.Metrics == nil {
		return
	}
	s.deps.Metrics.Assessments.WithLabelValues(operation, category.String()).Inc()
}

// queryInt reads an integer query parameter, returning fallback when absent.
func queryInt(r *http.Request, key string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.InvalidInputError{Field: key, Reason: fmt.Sprintf("not an integer: %q", raw)}
	}
	return v, nil
}

// queryCoord parses a required coordinate query parameter within ±limit.
func queryCoord(r *http.Request, key string, limit float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, &domain.InvalidInputError{Field: key, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, &domain.InvalidInputError{Field: key, Reason: fmt.Sprintf("must be a number in [-%g, %g], got %q", limit, limit, raw)}
	}
	return v, nil
}
