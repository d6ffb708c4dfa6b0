package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
	t.Setenv("GCS_BUCKET_NAME", "revenue-exports")
	t.Setenv("DATABASE_URL", "postgres://localhost/revrec")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "finance")
	t.Setenv("REVREC_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", cfg.StripeAPIKey)
	assert.Equal(t, "revenue-exports", cfg.GCSBucket)
	assert.Equal(t, "postgres://localhost/revrec", cfg.DatabaseURL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "finance", cfg.MongoDatabase)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("REVREC_WORKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "revrec", cfg.MongoDatabase)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoadRejectsBadWorkerCount(t *testing.T) {
	for _, raw := range []string{"zero", "0", "-3"} {
		t.Setenv("REVREC_WORKERS", raw)

		_, err := Load()
		assert.Error(t, err, "workers=%q", raw)
	}
}
