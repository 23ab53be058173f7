package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/google/go-cmp/cmp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := NewStore(client, ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func testResult(t *testing.T) domain.PresentationResult {
	t.Helper()
	result, err := domain.Evaluate(domain.SensorSnapshot{
		SensorID:               "34663",
		ChannelA:               "20",
		ChannelB:               "22",
		Humidity:               "40",
		StatShortWindow:        "50",
		StatLongWindow:         "44",
		ObservedAtEpochSeconds: 1600000000,
		Label:                  "Backyard",
		Latitude:               37.77,
		Longitude:              -122.42,
	})
	require.NoError(t, err)
	return result
}

func TestStore_LoadAndLatest(t *testing.T) {
	store, mr := setupTestStore(t, time.Hour)
	ctx := context.Background()
	result := testResult(t)

	require.NoError(t, store.Load(ctx, result))
	assert.True(t, mr.Exists("aqi:sensor:34663"))

	got, err := store.Latest(ctx, "34663")
	require.NoError(t, err)
	if diff := cmp.Diff(result, got); diff != "" {
		t.Errorf("stored reading mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Overwrites(t *testing.T) {
	store, _ := setupTestStore(t, time.Hour)
	ctx := context.Background()

	first := testResult(t)
	require.NoError(t, store.Load(ctx, first))

	second := first
	second.AQI = 120
	require.NoError(t, store.Load(ctx, second))

	got, err := store.Latest(ctx, "34663")
	require.NoError(t, err)
	assert.Equal(t, domain.AQI(120), got.AQI)
}

func TestStore_TTL(t *testing.T) {
	store, mr := setupTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, testResult(t)))
	assert.Equal(t, time.Minute, mr.TTL("aqi:sensor:34663"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Latest(ctx, "34663")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_LatestNotFound(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	_, err := store.Latest(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_LatestCorrupt(t *testing.T) {
	store, mr := setupTestStore(t, 0)
	require.NoError(t, mr.Set("aqi:sensor:1", "not json"))

	_, err := store.Latest(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestDial(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := Dial(context.Background(), mr.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	addr := mr.Addr()
	mr.Close()
	_, err = Dial(context.Background(), addr)
	require.Error(t, err)
}
