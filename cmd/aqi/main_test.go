package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisadapter "github.com/couchcryptid/purpleair-aqi/internal/adapter/redis"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func decodeResult(t *testing.T, out string) domain.PresentationResult {
	t.Helper()
	var result domain.PresentationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestCompute_JSON(t *testing.T) {
	out, err := execute(t, "compute", "--a", "20", "--b", "22", "--humidity", "40", "--short", "50", "--long", "44", "--json")
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.InDelta(t, 13.23, result.CorrectedPM25, 1e-9)
	assert.Equal(t, domain.AQI(53), result.AQI)
	assert.Equal(t, "Moderate", result.Level.Label)
	assert.Equal(t, domain.TrendWorsening, result.Trend.Direction)
}

func TestCompute_Widget(t *testing.T) {
	out, err := execute(t, "compute", "--a", "12", "--b", "10", "--humidity", "50", "--light", "--label", "Kitchen")
	require.NoError(t, err)

	assert.Contains(t, out, "AQI")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "Good")
	assert.Contains(t, out, "Kitchen")
	assert.NotContains(t, out, "purpleair.com", "no map link without a sensor")
}

func TestCompute_InvalidInputRendersFallback(t *testing.T) {
	out, err := execute(t, "compute", "--a", "20", "--b", "22", "--humidity", "unknown")
	require.Error(t, err)

	assert.True(t, errors.Is(err, errReported))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, out, "invalid input")
}

func TestCompute_UndefinedAQIWithJSON(t *testing.T) {
	out, err := execute(t, "compute", "--a", "0", "--b", "0", "--humidity", "100", "--json")
	require.Error(t, err)

	assert.False(t, errors.Is(err, errReported))
	assert.True(t, errors.Is(err, domain.ErrUndefinedAQI))
	assert.Empty(t, out)
}

func TestCompute_RequiredFlags(t *testing.T) {
	_, err := execute(t, "compute", "--a", "20", "--b", "22")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "humidity")
}

func TestCompute_AppearanceFlagsExclusive(t *testing.T) {
	_, err := execute(t, "compute", "--a", "20", "--b", "22", "--humidity", "40", "--dark", "--light")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark")
}

func TestShow_JSON(t *testing.T) {
	body, err := os.ReadFile("../../internal/adapter/purpleair/testdata/sensor_34663.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "34663", r.URL.Query().Get("show"))
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	out, err := execute(t, "show", "--url", srv.URL, "--sensor", "34663", "--json")
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.Equal(t, "34663", result.SensorID)
	assert.Equal(t, "Backyard", result.Label)
	assert.Equal(t, domain.AQI(53), result.AQI)
	assert.Contains(t, result.MapURL, "select=34663")
}

func TestShow_FetchErrorRendersFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := execute(t, "show", "--url", srv.URL, "--sensor", "1", "--dark")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "status 503")
}

func TestLatest_JSON(t *testing.T) {
	mr := miniredis.RunT(t)

	result, err := domain.Evaluate(domain.SensorSnapshot{
		SensorID: "34663", ChannelA: "20", ChannelB: "22", Humidity: "40",
		StatShortWindow: "50", StatLongWindow: "44", ObservedAtEpochSeconds: 1600000000,
	})
	require.NoError(t, err)

	store := redisadapter.NewStore(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), time.Hour,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, store.Load(context.Background(), result))
	require.NoError(t, store.Close())

	out, err := execute(t, "latest", "--redis-addr", mr.Addr(), "--sensor", "34663", "--json")
	require.NoError(t, err)
	assert.Equal(t, domain.AQI(53), decodeResult(t, out).AQI)
}

func TestLatest_NotFound(t *testing.T) {
	mr := miniredis.RunT(t)

	out, err := execute(t, "latest", "--redis-addr", mr.Addr(), "--sensor", "1", "--light")
	require.Error(t, err)
	assert.True(t, errors.Is(err, redisadapter.ErrNotFound))
	assert.Contains(t, out, "no stored reading")
}

func TestLatest_ConnectionErrorRendersFallback(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	out, err := execute(t, "latest", "--redis-addr", addr, "--sensor", "1", "--light")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "redis ping")
}
