package domain

import (
	"fmt"
	"time"
)

// Evaluate runs a snapshot through correction, AQI interpolation, and level
// classification, with the trend derived independently from the window
// statistics. The first failure is returned as-is; there is no partial result.
// Evaluate reads no clock, so equal snapshots give equal results.
func Evaluate(s SensorSnapshot) (PresentationResult, error) {
	trend := AnalyzeTrend(s.StatShortWindow, s.StatLongWindow)

	pm, err := CorrectPM25(s.ChannelA, s.ChannelB, s.Humidity)
	if err != nil {
		return PresentationResult{}, err
	}

	aqi := ToAQI(pm)
	if !aqi.Defined() {
		return PresentationResult{}, fmt.Errorf("corrected pm2.5 %.2f: %w", pm, ErrUndefinedAQI)
	}

	level, err := Classify(aqi)
	if err != nil {
		return PresentationResult{}, err
	}

	return PresentationResult{
		SensorID:      s.SensorID,
		Label:         s.Label,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		ObservedAt:    time.Unix(s.ObservedAtEpochSeconds, 0).UTC(),
		CorrectedPM25: pm,
		AQI:           aqi,
		Level:         level,
		Trend:         trend,
		MapURL:        MapURL(s.SensorID, s.Latitude, s.Longitude),
	}, nil
}
