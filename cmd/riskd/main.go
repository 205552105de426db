package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/urban-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/urban-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/urban-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/urban-risk-service/internal/config"
	"github.com/couchcryptid/urban-risk-service/internal/model"
	"github.com/couchcryptid/urban-risk-service/internal/observability"
	"github.com/couchcryptid/urban-risk-service/internal/pipeline"
	"github.com/couchcryptid/urban-risk-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, err := store.Open(ctx, cfg.StoreDSN, clock)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	// Weather provider (feature-flagged via OPENWEATHER_ENABLED / OPENWEATHER_API_KEY).
	var provider openweather.Provider
	if cfg.OpenWeatherEnabled {
		client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)
		provider = openweather.NewCachedProvider(client, cfg.OpenWeatherCacheSize, cfg.OpenWeatherCacheTTL, clock, metrics)
		metrics.ProviderEnabled.Set(1)
		logger.Info("openweather provider enabled",
			"cache_size", cfg.OpenWeatherCacheSize,
			"cache_ttl", cfg.OpenWeatherCacheTTL,
			"timeout", cfg.OpenWeatherTimeout,
		)
	} else {
		logger.Info("openweather provider disabled")
	}

	var predictor httpadapter.Predictor
	if cfg.ModelPath != "" {
		adapter, err := model.Load(cfg.ModelPath)
		if err != nil {
			logger.Error("failed to load regression model", "error", err)
			os.Exit(1)
		}
		predictor = adapter
		metrics.ModelLoaded.Set(1)
		logger.Info("regression model loaded", "path", cfg.ModelPath)
	}

	checks := []sharedobs.ReadinessChecker{sessions}

	var (
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
		p      *pipeline.Pipeline
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(clock, logger)
		p = pipeline.New(reader, transformer, writer, logger, metrics, clock, cfg.BatchSize)
		checks = append(checks, p)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Ready:       httpadapter.AllReady(checks...),
		Provider:    provider,
		Model:       predictor,
		Sessions:    sessions,
		Metrics:     metrics,
		Clock:       clock,
		MockSeed:    cfg.MockSeed,
		CORSOrigins: cfg.CORSAllowedOrigins,
	}, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start forecast pipeline.
	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
