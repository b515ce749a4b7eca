package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNormalizeFillsGaps(t *testing.T) {
	cfg := &Config{Listen: "0.0.0.0:9000", TokenTTL: "not a duration"}
	cfg.Normalize()

	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "24h", cfg.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenDuration())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Client.ServerURL)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Client.Token = "session-token"
	cfg.Client.RefreshCron = "*/5 * * * *"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "session-token", got.Client.Token)
	assert.Equal(t, "*/5 * * * *", got.Client.RefreshCron)
}
