package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/purpleair-aqi/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/purpleair-aqi/internal/adapter/kafka"
	"github.com/couchcryptid/purpleair-aqi/internal/adapter/purpleair"
	redisadapter "github.com/couchcryptid/purpleair-aqi/internal/adapter/redis"
	"github.com/couchcryptid/purpleair-aqi/internal/config"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	"github.com/couchcryptid/purpleair-aqi/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Snapshot source, with an optional short-lived response cache.
	var source domain.SnapshotSource = purpleair.NewClient(
		cfg.PurpleAirURL, cfg.PurpleAirTimeout, cfg.PurpleAirMinInterval, metrics, logger)
	if cfg.PurpleAirCacheTTL > 0 {
		source = purpleair.NewCachedSource(source, cfg.PurpleAirCacheTTL, metrics)
	}
	poller := purpleair.NewPoller(source, cfg.SensorID, cfg.PollInterval, clock, metrics, logger)

	// Loaders are feature-flagged via KAFKA_BROKERS / REDIS_ADDR.
	var (
		loaders pipeline.MultiLoader
		closers []io.Closer
	)
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, clock, logger)
		loaders = append(loaders, writer)
		closers = append(closers, writer)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka sink disabled")
	}
	if cfg.RedisEnabled {
		client, err := redisadapter.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store := redisadapter.NewStore(client, cfg.RedisTTL, logger)
		loaders = append(loaders, store)
		closers = append(closers, store)
		logger.Info("redis store enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
	} else {
		logger.Info("redis store disabled")
	}

	p := pipeline.New(poller, pipeline.NewTransformer(logger), loaders, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	logger.Info("polling sensor", "sensor_id", cfg.SensorID, "interval", cfg.PollInterval)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := poller.Close(); err != nil {
		logger.Error("poller close error", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("loader close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
