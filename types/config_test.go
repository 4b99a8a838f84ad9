package types

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "memos.db")
	t.Setenv("CALMEMO_DB_PATH", dbPath)
	t.Setenv("CALMEMO_DATABASE_URL", "")
	t.Setenv("CALMEMO_PASSWORD_HASH", "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, dbPath, cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "ja", cfg.Locale)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.AuthEnabled())
	assert.Error(t, cfg.ValidateServe())
}

func TestConfigFromEnvCollectsEveryProblem(t *testing.T) {
	t.Setenv("CALMEMO_DB_PATH", "/does/not/exist/memos.db")
	t.Setenv("CALMEMO_DATABASE_URL", "")
	t.Setenv("CALMEMO_LOCALE", "fr")
	t.Setenv("CALMEMO_TIMEZONE", "Nowhere/Special")
	t.Setenv("CALMEMO_LOG_LEVEL", "loud")

	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALMEMO_DB_PATH")
	assert.Contains(t, err.Error(), "CALMEMO_LOCALE")
	assert.Contains(t, err.Error(), "CALMEMO_TIMEZONE")
	assert.Contains(t, err.Error(), "CALMEMO_LOG_LEVEL")
}

func TestConfigFromEnvDatabaseURL(t *testing.T) {
	t.Setenv("CALMEMO_DATABASE_URL", "postgres://memo@localhost/memos")
	t.Setenv("CALMEMO_COOKIE_STORE_SECRET", "s3cret")
	t.Setenv("CALMEMO_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("CALMEMO_TIMEZONE", "Asia/Tokyo")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "Asia/Tokyo", cfg.Location.String())
	assert.True(t, cfg.AuthEnabled())
	assert.NoError(t, cfg.ValidateServe())
}
