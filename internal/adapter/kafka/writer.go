package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/config"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes evaluated readings to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer messageWriter
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSinkTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, clock: clock, logger: logger}
}

// Load serializes one reading and publishes it, keyed by sensor so readings
// for a sensor stay ordered within a partition.
func (w *Writer) Load(ctx context.Context, result domain.PresentationResult) error {
	msg, err := serializeToMessage(result, w.clock.Now())
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish reading for sensor %s: %w", result.SensorID, err)
	}
	w.logger.Debug("reading published", "sensor_id", result.SensorID, "aqi", int(result.AQI))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PresentationResult into a Kafka message.
func serializeToMessage(result domain.PresentationResult, processedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reading: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.SensorID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "level", Value: []byte(result.Level.Label)},
			{Key: "trend", Value: []byte(result.Trend.Direction)},
			{Key: "processed_at", Value: []byte(processedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
