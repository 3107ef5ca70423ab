package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	domaincurrency "balilove/internal/domain/currency"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	LogLevel         string
	HTTPAddr         string
	CORSOrigins      []string
	RatesURL         string
	RatesTTL         time.Duration
	RatesTimeout     time.Duration
	RatesBackoff     []time.Duration
	RatesRefreshCron string
	CatalogFixtures  string
	MongoURI         string
	MongoDB          string
	QuoteRetention   time.Duration
	KafkaBrokers     []string
	KafkaTopicPrefix string
	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3Bucket         string
	S3UseSSL         bool
}

// Load reads an optional .env file and parses configuration from the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv parses configuration from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
		RatesURL:         strings.TrimRight(getEnv("RATES_URL", "https://open.er-api.com/v6/latest"), "/"),
		RatesRefreshCron: strings.TrimSpace(os.Getenv("RATES_REFRESH_CRON")),
		CatalogFixtures:  getEnv("CATALOG_FIXTURES", "data/catalog.json"),
		MongoURI:         strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDB:          getEnv("MONGO_DB", "balilove"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		S3Endpoint:       strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3PublicEndpoint: getEnv("S3_PUBLIC_ENDPOINT", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:      getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:         getEnv("S3_BUCKET", "balilove-quotes"),
	}

	var err error
	if cfg.RatesTTL, err = parseDurationEnv("RATES_TTL", domaincurrency.DefaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.RatesTimeout, err = parseDurationEnv("RATES_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.QuoteRetention, err = parseDurationEnv("QUOTE_RETENTION", 90*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RatesBackoff, err = parseDurationList("RATES_RETRY_BACKOFF", "250ms,1s"); err != nil {
		return Config{}, err
	}
	if cfg.S3UseSSL, err = parseBoolEnv("S3_USE_SSL", false); err != nil {
		return Config{}, err
	}
	if cfg.S3PublicEndpoint == "" {
		cfg.S3PublicEndpoint = cfg.S3Endpoint
	}

	if cfg.RatesTTL <= 0 {
		return Config{}, fmt.Errorf("RATES_TTL must be positive")
	}
	if cfg.RatesTimeout <= 0 {
		return Config{}, fmt.Errorf("RATES_TIMEOUT must be positive")
	}
	return cfg, nil
}

// MongoEnabled reports whether the catalog and quote archive live in Mongo.
func (c Config) MongoEnabled() bool { return c.MongoURI != "" }

// KafkaEnabled reports whether domain events are published.
func (c Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// S3Enabled reports whether quotes can be archived to object storage.
func (c Config) S3Enabled() bool { return c.S3Endpoint != "" }

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseDurationList(key, def string) ([]time.Duration, error) {
	var out []time.Duration
	for _, raw := range splitList(getEnv(key, def)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s component %q: %w", key, raw, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
