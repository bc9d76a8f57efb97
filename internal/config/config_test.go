package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptdesk/internal/config"
)

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("defaults with database", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadFrom(map[string]string{
			"DATABASE_URL": "postgres://u:p@localhost:5432/db",
		})
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.App.Addr)
		assert.Equal(t, 2*time.Second, cfg.App.LookupTimeout)
		assert.Equal(t, 5*time.Second, cfg.App.CacheTTL)
		assert.Equal(t, "/metrics", cfg.App.MetricsPath)
		assert.Empty(t, cfg.App.NoticeSecret)
		assert.False(t, cfg.App.SecureCookies)
		assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.DB.ConnectionString)
		assert.Equal(t, 3, cfg.DB.RetryAttempts)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "warn", cfg.Log.Sentry.MinLevel)
		assert.False(t, cfg.Redis.Enabled())
	})

	t.Run("database url is required", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadFrom(map[string]string{})
		require.ErrorIs(t, err, config.ErrLoadConfig)
	})

	t.Run("memory mode skips the database", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadFrom(map[string]string{
			"MEMORY_MODE": "true",
			"REDIS_URL":   "redis://localhost:6379/0",
			"LOG_FORMAT":  "text",
		})
		require.NoError(t, err)

		assert.True(t, cfg.App.Memory)
		assert.Empty(t, cfg.DB.ConnectionString)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadFrom(map[string]string{
			"MEMORY_MODE":     "true",
			"REQUEST_TIMEOUT": "soon",
		})
		require.ErrorIs(t, err, config.ErrLoadConfig)
	})
}
