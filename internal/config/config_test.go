package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CATALOG_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CatalogTTL)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid log level")
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_DURATION", "90")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "2m")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("X_DURATION", time.Second))
}

func TestValidateServer(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.ValidateServer(), "unsupported DB_DRIVER")

	cfg.Database.Driver = "mysql"
	assert.NoError(t, cfg.ValidateServer())

	cfg.Auth.JWTSecret = ""
	assert.ErrorContains(t, cfg.ValidateServer(), "JWT_SECRET")
}
