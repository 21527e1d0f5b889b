package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("NAV_MODE", "")
	t.Setenv("NAV_SESSION_STORE", "")
	t.Setenv("AUTH_LOGIN_LATENCY_MS", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("NAV_SESSION_TTL_MINUTES", "")
	t.Setenv("NAV_IDLE_EVICT_MINUTES", "")
	t.Setenv("NAV_SWEEP_INTERVAL_SECONDS", "")
	t.Setenv("POSTGRES_MIGRATIONS_DIR", "")
	t.Setenv("AUTH_DEMO_ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "guarded", cfg.Navigation.Mode)
	assert.Equal(t, SessionStoreMemory, cfg.Navigation.SessionStore)
	assert.Equal(t, time.Second, cfg.Auth.LoginLatency())
	assert.Equal(t, 2*time.Hour, cfg.Navigation.SessionTTL())
	assert.Equal(t, 15*time.Minute, cfg.Navigation.IdleEvict())
	assert.Equal(t, time.Minute, cfg.Navigation.SweepInterval())
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	assert.Equal(t, "healthwatch", cfg.Auth.DemoAdminPassword)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("NAV_MODE", "permissive")
	t.Setenv("NAV_SESSION_STORE", "redis")
	t.Setenv("AUTH_LOGIN_LATENCY_MS", "0")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "permissive", cfg.Navigation.Mode)
	assert.Equal(t, SessionStoreRedis, cfg.Navigation.SessionStore)
	assert.Zero(t, cfg.Auth.LoginLatency())
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("nav mode", func(t *testing.T) {
		t.Setenv("NAV_MODE", "open")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("session store", func(t *testing.T) {
		t.Setenv("NAV_SESSION_STORE", "disk")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "x")
		_, err := Load()
		assert.Error(t, err)
	})
}
