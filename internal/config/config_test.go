package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8001", cfg.AppPort)
	assert.Equal(t, "8000", cfg.GatewayPort)
	assert.Equal(t, 10*time.Second, cfg.DownstreamTimeout)
	assert.Equal(t, 15*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 5, cfg.Database.PoolSize)
	assert.Equal(t, 10, cfg.Database.MaxOverflow)
	assert.Equal(t, 30*time.Second, cfg.Database.PoolTimeout)
	assert.Equal(t, 1800*time.Second, cfg.Database.PoolRecycle)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.TrustedProxies, "127.0.0.1/32")
	assert.Contains(t, cfg.TrustedProxies, "10.0.0.0/8")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AUTH_SERVICE_URL", "http://auth:8001/")
	t.Setenv("DOWNSTREAM_TIMEOUT", "3s")
	t.Setenv("DB_POOL_SIZE", "2")
	t.Setenv("DB_MAX_OVERFLOW", "not-a-number")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TRUSTED_PROXIES", "10.1.0.0/16")

	cfg := Load()

	assert.Equal(t, "http://auth:8001", cfg.AuthServiceURL)
	assert.Equal(t, 3*time.Second, cfg.DownstreamTimeout)
	assert.Equal(t, 2, cfg.Database.PoolSize)
	assert.Equal(t, 10, cfg.Database.MaxOverflow, "invalid ints fall back to the default")
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"10.1.0.0/16"}, cfg.TrustedProxies)
}

func TestDatabaseDSN_ReportsAllMissing(t *testing.T) {
	_, err := Database{Host: "db"}.DSN()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_USER")
	assert.Contains(t, err.Error(), "DATABASE_PASSWORD")
	assert.Contains(t, err.Error(), "DATABASE_PORT")
	assert.Contains(t, err.Error(), "DATABASE_NAME")
	assert.NotContains(t, err.Error(), "DATABASE_HOST")
}

func TestDatabaseDSN(t *testing.T) {
	dsn, err := Database{
		User: "app", Password: "p@ss", Host: "db", Port: "5432", Name: "users", SSLMode: "disable",
	}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:p%40ss@db:5432/users?sslmode=disable", dsn)
}

func TestDatabaseMaxConns(t *testing.T) {
	assert.Equal(t, int32(15), Database{PoolSize: 5, MaxOverflow: 10}.MaxConns())
	assert.Equal(t, int32(1), Database{}.MaxConns())
}
