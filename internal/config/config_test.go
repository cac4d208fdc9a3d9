package config_test

import (
	"testing"
	"time"

	"github.com/pocketledger/actions-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 10, cfg.Upstream.QueryTimeout)
	assert.Equal(t, 2, cfg.Upstream.QueryRetries)
	assert.True(t, cfg.Upstream.ValidateResponses)
	assert.Equal(t, "memory", cfg.Cache.Mode)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, 30, cfg.Journal.RetentionDays)
	assert.Equal(t, "local", cfg.Storage.Mode)
	assert.Equal(t, int64(25), cfg.Storage.MaxUploadSizeMB)
	assert.Equal(t, "pocketledger-core", cfg.Auth.Issuer)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Contains(t, cfg.RateLimit.WhitelistPaths, "/health/*")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CACHE_MODE", "redis")
	t.Setenv("UPSTREAM_BASE_URL", "https://core.pocketledger.io/api/v1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "redis", cfg.Cache.Mode)
	assert.Equal(t, "https://core.pocketledger.io/api/v1", cfg.Upstream.BaseURL)
}

func TestJournalConfig_ConnectionString(t *testing.T) {
	j := config.JournalConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "actions",
		Password: "secret",
		Name:     "journal",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=actions password=secret dbname=journal sslmode=require",
		j.ConnectionString())
}

func TestDurationHelpers(t *testing.T) {
	u := config.UpstreamConfig{QueryTimeout: 10, MutationTimeout: 15, AuthTimeout: 5}
	assert.Equal(t, 10*time.Second, u.QueryTimeoutDuration())
	assert.Equal(t, 15*time.Second, u.MutationTimeoutDuration())
	assert.Equal(t, 5*time.Second, u.AuthTimeoutDuration())

	j := config.JournalConfig{RetentionDays: 30, ConnMaxLifetime: 300}
	assert.Equal(t, 30*24*time.Hour, j.RetentionDuration())
	assert.Equal(t, 300*time.Second, j.ConnMaxLifetimeDuration())

	c := config.CacheConfig{TTL: 120}
	assert.Equal(t, 2*time.Minute, c.TTLDuration())

	a := config.AuthConfig{Leeway: 30}
	assert.Equal(t, 30*time.Second, a.LeewayDuration())
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			App:      config.AppConfig{Environment: "production"},
			Upstream: config.UpstreamConfig{BaseURL: "https://core.pocketledger.io/api/v1"},
			Auth:     config.AuthConfig{Secret: "signing-secret"},
			Cache:    config.CacheConfig{Mode: "memory"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing upstream base URL", func(t *testing.T) {
		cfg := base()
		cfg.Upstream.BaseURL = ""
		assert.ErrorContains(t, cfg.Validate(), "upstream.baseURL")
	})

	t.Run("missing auth secret outside development", func(t *testing.T) {
		cfg := base()
		cfg.Auth.Secret = ""
		assert.ErrorContains(t, cfg.Validate(), "auth.secret")
	})

	t.Run("missing auth secret allowed in development", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "development"
		cfg.Auth.Secret = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown cache mode", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Mode = "memcached"
		assert.ErrorContains(t, cfg.Validate(), "cache.mode")
	})

	t.Run("redis mode requires address", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Mode = "redis"
		assert.ErrorContains(t, cfg.Validate(), "redisAddr")
	})
}
