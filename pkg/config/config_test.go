package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NASA_API_KEY", "DEMO_KEY")
	t.Setenv("NASA_API_BASE_URL", DefaultAPIBaseURL)
	t.Setenv("PORT", "8080")
	t.Setenv("BUCKET_NAME", "")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "DEMO_KEY", cfg.APIKey)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":8080", cfg.ServerAddress())
	assert.ErrorIs(t, cfg.RequireBucket(), ErrBucketNameNotSet)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NASA_API_KEY", "secret")
	t.Setenv("NASA_API_BASE_URL", "http://localhost:9999/mars-photos/api/v1/")
	t.Setenv("BUCKET_NAME", "rover-archive")
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999/mars-photos/api/v1", cfg.APIBaseURL)
	assert.Equal(t, ":9090", cfg.ServerAddress())
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.NoError(t, cfg.RequireBucket())
}

func TestLoadEmptyAPIKey(t *testing.T) {
	t.Setenv("NASA_API_KEY", "  ")

	_, err := Load()
	assert.ErrorIs(t, err, ErrAPIKeyNotSet)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("NASA_API_KEY", "DEMO_KEY")
	t.Setenv("CACHE_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
