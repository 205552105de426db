package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// ForecastTransformer implements Transformer: it parses a raw provider
// forecast, summarizes and classifies it, and serializes the assessment.
type ForecastTransformer struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewTransformer creates a ForecastTransformer stamping assessments with
// clock's time.
func NewTransformer(clock clockwork.Clock, logger *slog.Logger) *ForecastTransformer {
	return &ForecastTransformer{
		clock:  clock,
		logger: logger,
	}
}

// Transform parses, assesses, and serializes a single message.
func (t *ForecastTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	rec, err := domain.ParseForecast(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	assessment, err := domain.AssessForecast(rec, t.clock.Now().UTC())
	if err != nil {
		return domain.OutputEvent{}, err
	}
	assessment.RawPayload = raw.Value

	t.logger.Debug("forecast assessed",
		"id", assessment.ID,
		"location", assessment.Location,
		"flood_risk", assessment.Summary.FloodRisk,
		"heat_island", assessment.Summary.HeatIsland,
	)

	return domain.SerializeAssessment(assessment)
}
