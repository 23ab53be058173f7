package domain

import "errors"

var (
	// ErrInvalidInput is returned when a PM correction input is missing or not numeric.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUndefinedAQI is returned when the corrected concentration has no AQI,
	// which happens for negative values.
	ErrUndefinedAQI = errors.New("aqi undefined")

	// ErrUnclassifiedLevel is returned when no level entry matches an AQI.
	ErrUnclassifiedLevel = errors.New("no level for aqi")
)
