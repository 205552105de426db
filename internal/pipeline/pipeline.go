// Package pipeline consumes provider forecasts, assesses them, and publishes
// the assessments. A batch is whatever the source hands back in one poll,
// up to the configured size. Forecasts that cannot be parsed or assessed are
// poison: they are logged, counted, and committed so the source never
// redelivers them. A failed publish is not committed and is retried with
// backoff, so the source redelivers the whole batch.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

var errNoAssessments = errors.New("no forecast batch has been assessed and published yet")

// BatchExtractor polls the source for up to batchSize raw forecast messages.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns one raw forecast message into a serialized assessment.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader publishes assessed forecasts.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline runs the poll, assess, publish, commit loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	published   atomic.Bool
	batchSize   int
}

// New creates a Pipeline. The clock drives batch timing and retry sleeps.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
		batchSize:   batchSize,
	}
}

// CheckReadiness fails until at least one assessment has been published.
// A pipeline that has only seen poison forecasts is not ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.published.Load() {
		return errNoAssessments
	}
	return nil
}

// Run polls forecasts until ctx is cancelled. It returns nil on shutdown.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("forecast pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for ctx.Err() == nil {
		if !p.step(ctx, &backoff) {
			break
		}
	}
	p.logger.Info("forecast pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// step handles one poll. It returns false once the pipeline should stop.
func (p *Pipeline) step(ctx context.Context, backoff *time.Duration) bool {
	start := p.clock.Now()

	forecasts, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("poll forecasts failed", "error", err)
		return p.wait(ctx, backoff)
	}
	if len(forecasts) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(forecasts)))
	p.metrics.BatchSize.Observe(float64(len(forecasts)))
	*backoff = initialBackoff

	published, ok := p.assessAndPublish(ctx, forecasts, backoff)
	if !ok {
		return false
	}
	if published > 0 {
		p.metrics.BatchProcessingDuration.Observe(p.clock.Since(start).Seconds())
		p.published.Store(true)
	}
	return true
}

// assessAndPublish assesses every forecast in the batch, skipping and
// committing poison ones, then publishes the rest and commits them. It
// returns the number published and false once the pipeline should stop.
func (p *Pipeline) assessAndPublish(ctx context.Context, forecasts []domain.RawEvent, backoff *time.Duration) (int, bool) {
	assessments := make([]domain.OutputEvent, 0, len(forecasts))
	sources := make([]domain.RawEvent, 0, len(forecasts))

	for _, raw := range forecasts {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("poison forecast skipped",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			continue
		}
		assessments = append(assessments, out)
		sources = append(sources, raw)
	}
	if len(assessments) == 0 {
		return 0, true
	}

	if err := p.loader.LoadBatch(ctx, assessments); err != nil {
		p.logger.Error("publish assessments failed", "error", err, "count", len(assessments))
		return 0, p.wait(ctx, backoff)
	}
	p.metrics.MessagesProduced.Add(float64(len(assessments)))

	for _, raw := range sources {
		p.commit(ctx, raw)
	}
	return len(assessments), true
}

// wait sleeps for the current backoff, then doubles it up to maxBackoff.
func (p *Pipeline) wait(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil || !p.sleep(ctx, *backoff) {
		return false
	}
	*backoff = min(*backoff*2, maxBackoff)
	return true
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit forecast offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
