package purpleair

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Poller turns a SnapshotSource into a paced extractor for one sensor. The
// first call fetches immediately; later calls wait for the next tick. A failed
// fetch is retried on the following call without waiting for a tick.
type Poller struct {
	source   domain.SnapshotSource
	sensorID string
	ticker   clockwork.Ticker
	due      bool
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewPoller creates a poller that fetches sensorID every interval.
func NewPoller(source domain.SnapshotSource, sensorID string, interval time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Poller {
	return &Poller{
		source:   source,
		sensorID: sensorID,
		ticker:   clock.NewTicker(interval),
		due:      true,
		metrics:  metrics,
		logger:   logger,
	}
}

// Extract blocks until the next reading is due, then fetches it.
func (p *Poller) Extract(ctx context.Context) (domain.SensorSnapshot, error) {
	if !p.due {
		select {
		case <-ctx.Done():
			return domain.SensorSnapshot{}, ctx.Err()
		case <-p.ticker.Chan():
		}
	}

	snap, err := p.source.FetchSnapshot(ctx, p.sensorID)
	if err != nil {
		p.due = true
		return domain.SensorSnapshot{}, err
	}
	p.due = false

	p.metrics.ReadingsFetched.Inc()
	p.logger.Debug("sensor polled", "sensor_id", p.sensorID, "observed_at", snap.ObservedAtEpochSeconds)
	return snap, nil
}

// Close stops the poll ticker.
func (p *Poller) Close() error {
	p.ticker.Stop()
	return nil
}
