package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no reading is stored for a sensor.
var ErrNotFound = errors.New("no stored reading for sensor")

// Store keeps the most recent reading per sensor in Redis.
// It implements pipeline.Loader.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Dial connects to Redis at addr and verifies the connection.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// NewStore creates a store on an existing client. A zero ttl keeps entries
// until overwritten.
func NewStore(client *goredis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: logger}
}

func key(sensorID string) string {
	return fmt.Sprintf("aqi:sensor:%s", sensorID)
}

// Load overwrites the stored reading for the result's sensor.
func (s *Store) Load(ctx context.Context, result domain.PresentationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("serialize reading: %w", err)
	}
	if err := s.client.Set(ctx, key(result.SensorID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store reading for sensor %s: %w", result.SensorID, err)
	}
	s.logger.Debug("reading stored", "sensor_id", result.SensorID, "ttl", s.ttl)
	return nil
}

// Latest returns the stored reading for sensorID.
func (s *Store) Latest(ctx context.Context, sensorID string) (domain.PresentationResult, error) {
	data, err := s.client.Get(ctx, key(sensorID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.PresentationResult{}, fmt.Errorf("sensor %s: %w", sensorID, ErrNotFound)
	}
	if err != nil {
		return domain.PresentationResult{}, fmt.Errorf("read reading for sensor %s: %w", sensorID, err)
	}

	var result domain.PresentationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.PresentationResult{}, fmt.Errorf("decode reading for sensor %s: %w", sensorID, err)
	}
	return result, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
