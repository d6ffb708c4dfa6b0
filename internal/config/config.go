// Package config loads CLI settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the CLI needs to reach the payment platform
// and the configured sink backend.
type Config struct {
	// StripeAPIKey authenticates extraction against the platform.
	StripeAPIKey string

	// GCSBucket is the destination bucket for the gcs sink.
	GCSBucket string

	// DatabaseURL is the PostgreSQL DSN for the postgres sink.
	DatabaseURL string

	// MongoURI and MongoDatabase configure the mongo sink.
	MongoURI      string
	MongoDatabase string

	// Workers bounds bulk scheduling concurrency.
	Workers int
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load() //nolint:errcheck

	cfg := &Config{
		StripeAPIKey:  os.Getenv("STRIPE_API_KEY"),
		GCSBucket:     os.Getenv("GCS_BUCKET_NAME"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: os.Getenv("MONGO_DATABASE"),
		Workers:       5,
	}

	if raw := os.Getenv("REVREC_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: REVREC_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.Workers = n
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "revrec"
	}

	return cfg, nil
}
