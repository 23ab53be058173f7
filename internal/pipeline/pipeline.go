package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

// Extractor produces the next sensor snapshot, blocking until one is due.
type Extractor interface {
	Extract(ctx context.Context) (domain.SensorSnapshot, error)
}

// Transformer evaluates a snapshot into a presentation result.
type Transformer interface {
	Transform(ctx context.Context, snap domain.SensorSnapshot) (domain.PresentationResult, error)
}

// Loader writes an evaluated reading to a destination.
type Loader interface {
	Load(ctx context.Context, result domain.PresentationResult) error
}

// Pipeline orchestrates the poll-evaluate-publish loop.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	latest      atomic.Pointer[domain.PresentationResult]
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once a reading has been published, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any readings yet")
	}
	return nil
}

// Ready reports whether at least one reading has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Latest returns the most recently evaluated reading.
func (p *Pipeline) Latest() (domain.PresentationResult, bool) {
	r := p.latest.Load()
	if r == nil {
		return domain.PresentationResult{}, false
	}
	return *r, true
}

// Run executes the ETL loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processOne(ctx, &backoff) {
			return nil
		}
	}
}

// processOne runs one extract-transform-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processOne(ctx context.Context, backoff *time.Duration) bool {
	snap, err := p.extractor.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract failed", "error", err)
		return p.backoffOrStop(ctx, backoff)
	}
	*backoff = initialBackoff

	result, err := p.transformer.Transform(ctx, snap)
	if err != nil {
		// Unevaluable readings are skipped, never retried.
		p.logger.Warn("evaluate failed, skipping reading",
			"error", err,
			"sensor_id", snap.SensorID,
			"observed_at", snap.ObservedAtEpochSeconds,
		)
		p.metrics.EvaluateErrors.WithLabelValues(errorReason(err)).Inc()
		return true
	}

	p.latest.Store(&result)
	p.metrics.CurrentAQI.WithLabelValues(result.SensorID).Set(float64(result.AQI))

	if err := p.loader.Load(ctx, result); err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load failed", "error", err, "sensor_id", result.SensorID)
		return p.backoffOrStop(ctx, backoff)
	}

	p.metrics.ReadingsPublished.Inc()
	p.ready.Store(true)
	p.logger.Info("reading published",
		"sensor_id", result.SensorID,
		"aqi", int(result.AQI),
		"level", result.Level.Label,
		"trend", string(result.Trend.Direction),
	)
	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}
