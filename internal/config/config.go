package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/cardealer-labs/dealerships-api/internal/models"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the server reads from its environment.
type Config struct {
	Port string

	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration

	ReviewsFixture     string
	DealershipsFixture string
	SeedStrategy       models.SeedStrategy

	RequestTimeout time.Duration
	MaxBodyBytes   int64

	LogLevel    logrus.Level
	LogFormat   string
	LogFile     string
	CrashLogDir string

	MetricsAddr string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	AWSEndpoint  string
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Load reads envFile into the process environment (a missing file is fine) and
// builds a Config from it, falling back to the docker-compose defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:               getEnv("PORT", "3030"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://mongo_db:27017/"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "dealershipsDB"),
		ReviewsFixture:     getEnv("REVIEWS_FIXTURE", "reviews.json"),
		DealershipsFixture: getEnv("DEALERSHIPS_FIXTURE", "dealerships.json"),
		LogFormat:          getEnv("LOG_FORMAT", LogFormatText),
		LogFile:            os.Getenv("LOG_FILE"),
		CrashLogDir:        getEnv("CRASH_LOG_DIR", "logs/crash"),
		MetricsAddr:        os.Getenv("METRICS_ADDR"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKey:       os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey:       os.Getenv("AWS_SECRET_KEY"),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT_URL"),
	}

	var err error
	if cfg.MongoConnectTimeout, err = getDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}

	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 100*1024); err != nil {
		return nil, err
	}

	if cfg.SeedStrategy, err = models.ParseSeedStrategy(getEnv("SEED_STRATEGY", string(models.SeedUpsert))); err != nil {
		return nil, err
	}

	if cfg.LogLevel, err = logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want %q or %q)", cfg.LogFormat, LogFormatText, LogFormatJSON)
	}

	return cfg, nil
}

// Addr is the listen address for the public HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return n, nil
}
