package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/urban-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/observability"
	"github.com/couchcryptid/urban-risk-service/internal/store"
)

const requestTimeout = 30 * time.Second

// Predictor runs the externally trained flood/drainage regressors.
type Predictor interface {
	Predict(f domain.RegressionFeatures) (domain.Assessment, error)
}

// SessionStore holds per-session reports and eco points.
type SessionStore interface {
	AddReport(ctx context.Context, r store.Report) (store.Report, error)
	ListReports(ctx context.Context, sessionID string) ([]store.Report, error)
	AddEcoPoints(ctx context.Context, sessionID string, delta int64) (store.EcoPoints, error)
	GetEcoPoints(ctx context.Context, sessionID string) (store.EcoPoints, error)
}

// Deps are the collaborators behind the API. Provider and Model may be nil,
// in which case the endpoints that need them answer 503.
type Deps struct {
	Ready       sharedobs.ReadinessChecker
	Provider    openweather.Provider
	Model       Predictor
	Sessions    SessionStore
	Metrics     *observability.Metrics
	Clock       clockwork.Clock
	MockSeed    int64
	CORSOrigins []string
}

// Server exposes the scoring API alongside health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	deps       Deps
}

// NewServer creates an HTTP server with the /v1 API plus /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	s := &Server{
		logger: logger,
		deps:   deps,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.logRequests, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(s.deps.Ready))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/hydraulics", s.handleHydraulics)
		r.Post("/flood-drainage", s.handleFloodDrainage)
		r.Post("/composite", s.handleComposite)
		r.Post("/thresholds/{kind}", s.handleThreshold)
		r.Post("/regression", s.handleRegression)
		r.Post("/eco-score", s.handleEcoScore)
		r.Post("/footprint", s.handleFootprint)
		r.Post("/sdg-alignment", s.handleSDGAlignment)
		r.Post("/sustainability-index", s.handleSustainabilityIndex)

		r.Route("/locations/{name}", func(r chi.Router) {
			r.Get("/weather", s.handleWeather)
			r.Get("/forecast-assessment", s.handleForecastAssessment)
			r.Get("/air-quality", s.handleAirQuality)
		})

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Post("/reports", s.handleAddReport)
			r.Get("/reports", s.handleListReports)
			r.Post("/eco-points", s.handleAddEcoPoints)
			r.Get("/eco-points", s.handleGetEcoPoints)
		})

		r.Route("/mock", func(r chi.Router) {
			r.Get("/biodiversity", s.handleMockBiodiversity)
			r.Get("/history", s.handleMockHistory)
			r.Get("/projects", s.handleMockProjects)
			r.Get("/flood-prediction", s.handleMockFloodPrediction)
		})
	})

	return r
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.deps.Clock.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", s.deps.Clock.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
