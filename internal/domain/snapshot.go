package domain

import "context"

// SensorSnapshot is one resolved PurpleAir reading. Numeric readings keep the
// text PurpleAir sent so each stage can apply its own parsing rules.
type SensorSnapshot struct {
	SensorID string `json:"sensor_id"`

	ChannelA string `json:"channel_a"` // pm2_5_cf_1, channel A (µg/m³)
	ChannelB string `json:"channel_b"` // pm2_5_cf_1, channel B (µg/m³)
	Humidity string `json:"humidity"`  // relative humidity, percent

	StatShortWindow string `json:"stat_short_window"` // Stats v1
	StatLongWindow  string `json:"stat_long_window"`  // Stats v2

	ObservedAtEpochSeconds int64   `json:"observed_at"`
	Label                  string  `json:"label"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
}

// SnapshotSource retrieves the current reading for a sensor.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context, sensorID string) (SensorSnapshot, error)
}
