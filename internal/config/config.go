package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

var sensorIDRe = regexp.MustCompile(`^\d+$`)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SensorID        string
	PollInterval    time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// PurpleAir API configuration.
	PurpleAirURL         string
	PurpleAirTimeout     time.Duration
	PurpleAirMinInterval time.Duration
	PurpleAirCacheTTL    time.Duration

	// Kafka sink, enabled when brokers are configured.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	// Redis latest-result store, enabled when an address is configured.
	RedisEnabled bool
	RedisAddr    string
	RedisTTL     time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	pollInterval, err := parsePositiveDuration("POLL_INTERVAL", "2m")
	if err != nil {
		return nil, err
	}
	purpleAirTimeout, err := parsePositiveDuration("PURPLEAIR_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	minInterval, err := parseNonNegativeDuration("PURPLEAIR_MIN_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseNonNegativeDuration("PURPLEAIR_CACHE_TTL", "30s")
	if err != nil {
		return nil, err
	}
	redisTTL, err := parseNonNegativeDuration("REDIS_TTL", "1h")
	if err != nil {
		return nil, err
	}

	brokers := sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid KAFKA_ENABLED %q: %w", v, err)
		}
	}

	redisAddr := os.Getenv("REDIS_ADDR")

	cfg := &Config{
		SensorID:        sharedcfg.EnvOrDefault("SENSOR_ID", "34663"),
		PollInterval:    pollInterval,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PurpleAirURL:         sharedcfg.EnvOrDefault("PURPLEAIR_URL", "https://www.purpleair.com/json"),
		PurpleAirTimeout:     purpleAirTimeout,
		PurpleAirMinInterval: minInterval,
		PurpleAirCacheTTL:    cacheTTL,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   brokers,
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "air-quality-readings"),

		RedisEnabled: redisAddr != "",
		RedisAddr:    redisAddr,
		RedisTTL:     redisTTL,
	}

	if !sensorIDRe.MatchString(cfg.SensorID) {
		return nil, fmt.Errorf("invalid SENSOR_ID %q: must be digits only", cfg.SensorID)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseNonNegativeDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative duration", key)
	}
	return d, nil
}
