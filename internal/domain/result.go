package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const mapBaseURL = "https://www.purpleair.com/map?opt=1/i/mAQI/a10/cC0"

// PresentationResult is everything a renderer needs to show one reading.
type PresentationResult struct {
	SensorID   string    `json:"sensor_id"`
	Label      string    `json:"label"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ObservedAt time.Time `json:"observed_at"`

	CorrectedPM25 float64    `json:"corrected_pm25"`
	AQI           AQI        `json:"aqi"`
	Level         LevelEntry `json:"level"`
	Trend         Trend      `json:"trend"`

	MapURL string `json:"map_url"`
}

// Style is the color set and text size chosen for an appearance mode.
type Style struct {
	Colors   ColorSet `json:"colors"`
	TextSize float64  `json:"text_size"`
}

// Header returns the widget heading, e.g. "AQI Worsening".
func (r PresentationResult) Header() string {
	return "AQI" + r.Trend.Suffix()
}

// Style returns the presentation style for the level in the given appearance.
func (r PresentationResult) Style(dark bool) Style {
	return Style{
		Colors:   r.Level.Colors(dark),
		TextSize: r.Level.TextSize,
	}
}

// MapURL links to the sensor on the PurpleAir map, centered on its location.
func MapURL(sensorID string, lat, lon float64) string {
	return fmt.Sprintf("%s&select=%s#14/%s/%s",
		mapBaseURL,
		url.QueryEscape(sensorID),
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)
}
