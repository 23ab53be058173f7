package purpleair

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSensorID      = "34663"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string, metrics *observability.Metrics) *Client {
	return NewClient(baseURL, 5*time.Second, 0, metrics, testLogger())
}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/sensor_34663.json")
	require.NoError(t, err)
	return body
}

func TestClient_FetchSnapshot_Success(t *testing.T) {
	body := loadFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testSensorID, r.URL.Query().Get("show"))
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	snap, err := testClient(srv.URL, metrics).FetchSnapshot(context.Background(), testSensorID)
	require.NoError(t, err)

	expected := domain.SensorSnapshot{
		SensorID:               testSensorID,
		ChannelA:               "20.41",
		ChannelB:               "22.87",
		Humidity:               "40",
		StatShortWindow:        "50.12",
		StatLongWindow:         "44.87",
		ObservedAtEpochSeconds: 1600000000,
		Label:                  "Backyard",
		Latitude:               37.77,
		Longitude:              -122.42,
	}
	if diff := cmp.Diff(expected, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.FetchRequests.WithLabelValues("success")), 0)
}

func TestClient_FetchSnapshot_EvaluatesEndToEnd(t *testing.T) {
	snap, err := ParseResponse(testSensorID, loadFixture(t))
	require.NoError(t, err)

	result, err := domain.Evaluate(snap)
	require.NoError(t, err)
	assert.Equal(t, domain.AQI(53), result.AQI)
	assert.Equal(t, "Moderate", result.Level.Label)
	assert.Equal(t, domain.TrendWorsening, result.Trend.Direction)
}

func TestClient_FetchSnapshot_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	_, err := testClient(srv.URL, metrics).FetchSnapshot(context.Background(), testSensorID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), testSensorID)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.FetchRequests.WithLabelValues("error")), 0)
}

func TestClient_FetchSnapshot_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL, observability.NewMetricsForTesting()).FetchSnapshot(ctx, testSensorID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected domain.SensorSnapshot
	}{
		{
			name: "numeric values kept as text",
			body: `{"results":[
				{"pm2_5_cf_1":12.5,"humidity":50,"Stats":"{\"v1\":10,\"v2\":16}","LastSeen":1,"Label":"A","Lat":1.5,"Lon":2.5},
				{"pm2_5_cf_1":10}
			]}`,
			expected: domain.SensorSnapshot{
				SensorID: "1", ChannelA: "12.5", ChannelB: "10", Humidity: "50",
				StatShortWindow: "10", StatLongWindow: "16",
				ObservedAtEpochSeconds: 1, Label: "A", Latitude: 1.5, Longitude: 2.5,
			},
		},
		{
			name: "missing humidity and stats",
			body: `{"results":[{"pm2_5_cf_1":"12","humidity":null},{"pm2_5_cf_1":"10"}]}`,
			expected: domain.SensorSnapshot{
				SensorID: "1", ChannelA: "12", ChannelB: "10",
			},
		},
		{
			name: "stats as object",
			body: `{"results":[{"pm2_5_cf_1":"12","humidity":"50","Stats":{"v1":"7","v2":"3"}},{"pm2_5_cf_1":"10"}]}`,
			expected: domain.SensorSnapshot{
				SensorID: "1", ChannelA: "12", ChannelB: "10", Humidity: "50",
				StatShortWindow: "7", StatLongWindow: "3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ParseResponse("1", []byte(tt.body))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, snap); diff != "" {
				t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"not json", `<html>`, "decode response"},
		{"no results", `{"results":[]}`, "fewer than two"},
		{"single channel", `{"results":[{"pm2_5_cf_1":"12"}]}`, "got 1"},
		{"malformed stats", `{"results":[{"Stats":"{broken"},{}]}`, "decode stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse("1", []byte(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseResponse_IncompleteIsSentinel(t *testing.T) {
	_, err := ParseResponse("1", []byte(`{"results":[{}]}`))
	assert.True(t, errors.Is(err, ErrIncompleteResponse))
}
