package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_USER", "postgres")
	t.Setenv("POSTGRES_PASSWORD", "postgres")
	t.Setenv("POSTGRES_DB", "shop")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GO_ENV", "dev")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "postgres", cfg.PostgresUser)
	assert.Equal(t, "shop", cfg.PostgresDB)
	assert.Equal(t, 5432, cfg.PostgresPort)
	//省略時のsslmode
	assert.Equal(t, "disable", cfg.PostgresSSLMode)
}

func TestLoad_SSLModeFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_SSLMODE", "require")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "require", cfg.PostgresSSLMode)
}

func TestLoad_MissingPostgresUser(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_USER", "")

	_, err := Load()

	assert.ErrorContains(t, err, "POSTGRES_USER is required")
}

func TestLoad_PortMustBeNumber(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_PORT", "not-a-number")

	_, err := Load()

	assert.ErrorContains(t, err, "POSTGRES_PORT must be number")
}
