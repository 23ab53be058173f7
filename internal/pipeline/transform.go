package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
)

// AQITransformer implements Transformer using the domain evaluation.
type AQITransformer struct {
	logger *slog.Logger
}

// NewTransformer creates an AQITransformer.
func NewTransformer(logger *slog.Logger) *AQITransformer {
	return &AQITransformer{logger: logger}
}

func (t *AQITransformer) Transform(_ context.Context, snap domain.SensorSnapshot) (domain.PresentationResult, error) {
	result, err := domain.Evaluate(snap)
	if err != nil {
		return domain.PresentationResult{}, err
	}
	t.logger.Debug("reading evaluated",
		"sensor_id", result.SensorID,
		"corrected_pm25", result.CorrectedPM25,
		"aqi", int(result.AQI),
	)
	return result, nil
}

// errorReason maps an evaluation error to its metrics label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrUndefinedAQI):
		return "undefined_aqi"
	case errors.Is(err, domain.ErrUnclassifiedLevel):
		return "unclassified_level"
	default:
		return "other"
	}
}
