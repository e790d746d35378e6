package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "@every 1h", cfg.SweepSchedule)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("db_driver: postgres\ndb_port: \"5432\"\ntoken_ttl: 2h\nauth_rate_burst: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "6543", cfg.DBPort)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.AuthRateBurst)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EmptySweepScheduleDisables(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SWEEP_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SweepSchedule)
}

func TestLoad_DefaultSecretRejectedInRelease(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET")

	t.Setenv("TOKEN_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestLoad_DefaultSecretAllowedInDebug(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("TOKEN_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestValidate_EmptySecret(t *testing.T) {
	cfg := Default()
	cfg.TokenSecret = ""
	assert.Error(t, cfg.Validate())
}
