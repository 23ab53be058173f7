package purpleair

import (
	"context"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const cacheSize = 128

// CachedSource wraps a SnapshotSource with a short-lived in-memory cache so
// repeated lookups inside the TTL do not hit the API.
type CachedSource struct {
	inner   domain.SnapshotSource
	cache   *expirable.LRU[string, domain.SensorSnapshot]
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a snapshot source.
func NewCachedSource(inner domain.SnapshotSource, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   expirable.NewLRU[string, domain.SensorSnapshot](cacheSize, nil, ttl),
		metrics: metrics,
	}
}

// FetchSnapshot returns the cached snapshot for sensorID, fetching on a miss.
// Errors are not cached.
func (c *CachedSource) FetchSnapshot(ctx context.Context, sensorID string) (domain.SensorSnapshot, error) {
	if snap, ok := c.cache.Get(sensorID); ok {
		c.metrics.FetchCache.WithLabelValues("hit").Inc()
		return snap, nil
	}
	c.metrics.FetchCache.WithLabelValues("miss").Inc()

	snap, err := c.inner.FetchSnapshot(ctx, sensorID)
	if err != nil {
		return snap, err
	}
	c.cache.Add(sensorID, snap)
	return snap, nil
}
