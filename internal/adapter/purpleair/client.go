package purpleair

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	"golang.org/x/time/rate"
)

// ErrIncompleteResponse is returned when PurpleAir does not report both channels.
var ErrIncompleteResponse = errors.New("purpleair response has fewer than two channel results")

// Client implements domain.SnapshotSource using the PurpleAir JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a PurpleAir client. Requests are spaced at least
// minInterval apart; zero disables the limit.
func NewClient(baseURL string, timeout, minInterval time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		metrics: metrics,
		logger:  logger,
	}
}

// FetchSnapshot requests the sensor's current reading and resolves it into a snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, sensorID string) (domain.SensorSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.SensorSnapshot{}, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	body, err := c.doRequest(ctx, sensorID)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return domain.SensorSnapshot{}, fmt.Errorf("fetch sensor %s: %w", sensorID, err)
	}

	snap, err := ParseResponse(sensorID, body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return domain.SensorSnapshot{}, fmt.Errorf("fetch sensor %s: %w", sensorID, err)
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.logger.Debug("purpleair snapshot fetched",
		"sensor_id", sensorID,
		"label", snap.Label,
		"last_seen", snap.ObservedAtEpochSeconds,
	)
	return snap, nil
}

func (c *Client) doRequest(ctx context.Context, sensorID string) ([]byte, error) {
	params := url.Values{"show": {sensorID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("purpleair request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("purpleair API error: status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

// ParseResponse resolves a PurpleAir JSON document into a snapshot. The first
// result is channel A and carries the sensor metadata; the second is channel B.
func ParseResponse(sensorID string, body []byte) (domain.SensorSnapshot, error) {
	var doc response
	if err := json.Unmarshal(body, &doc); err != nil {
		return domain.SensorSnapshot{}, fmt.Errorf("decode response: %w", err)
	}
	if len(doc.Results) < 2 {
		return domain.SensorSnapshot{}, fmt.Errorf("%w: got %d", ErrIncompleteResponse, len(doc.Results))
	}

	a, b := doc.Results[0], doc.Results[1]

	var st stats
	if raw := rawText(a.Stats); raw != "" {
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			return domain.SensorSnapshot{}, fmt.Errorf("decode stats: %w", err)
		}
	}

	return domain.SensorSnapshot{
		SensorID:               sensorID,
		ChannelA:               rawText(a.PM25CF1),
		ChannelB:               rawText(b.PM25CF1),
		Humidity:               rawText(a.Humidity),
		StatShortWindow:        rawText(st.V1),
		StatLongWindow:         rawText(st.V2),
		ObservedAtEpochSeconds: a.LastSeen,
		Label:                  a.Label,
		Latitude:               a.Lat,
		Longitude:              a.Lon,
	}, nil
}

// rawText returns a JSON value as text: strings are unquoted, numbers are
// kept as written, and null or absent values become "".
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}

// PurpleAir API response types.

type response struct {
	Results []sensorResult `json:"results"`
}

type sensorResult struct {
	PM25CF1  json.RawMessage `json:"pm2_5_cf_1"`
	Humidity json.RawMessage `json:"humidity"`
	Stats    json.RawMessage `json:"Stats"` // JSON document encoded as a string
	LastSeen int64           `json:"LastSeen"`
	Label    string          `json:"Label"`
	Lat      float64         `json:"Lat"`
	Lon      float64         `json:"Lon"`
}

type stats struct {
	V1 json.RawMessage `json:"v1"` // short window average
	V2 json.RawMessage `json:"v2"` // longer window average
}
