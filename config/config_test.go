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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)

	assert.Equal(t, "₦", cfg.Currency.Symbol)
	assert.Equal(t, "NGN", cfg.Currency.Code)

	assert.Equal(t, int64(500000), cfg.Limits.SingleTransfer)
	assert.Equal(t, int64(1000000), cfg.Limits.DailyTransfer)
	assert.Equal(t, int64(1000), cfg.Limits.MinTransfer)

	assert.Empty(t, cfg.Session.Dir)
	assert.Empty(t, cfg.Session.Passphrase)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
api:
  base_url: "https://api.sfabank.example/api"
  timeout: "5s"
currency:
  symbol: "$"
  code: "USD"
limits:
  single_transfer: 250000
  daily_transfer: 750000
  min_transfer: 500
session:
  dir: "/tmp/sfa-test"
  passphrase: "hunter2"
log:
  level: "debug"
  pretty: true
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "https://api.sfabank.example/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)

	assert.Equal(t, "$", cfg.Currency.Symbol)
	assert.Equal(t, "USD", cfg.Currency.Code)

	assert.Equal(t, int64(250000), cfg.Limits.SingleTransfer)
	assert.Equal(t, int64(750000), cfg.Limits.DailyTransfer)
	assert.Equal(t, int64(500), cfg.Limits.MinTransfer)

	assert.Equal(t, "/tmp/sfa-test", cfg.Session.Dir)
	assert.Equal(t, "hunter2", cfg.Session.Passphrase)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SFA_API_BASE_URL", "https://staging.sfabank.example/api")
	t.Setenv("SFA_LIMITS_SINGLE_TRANSFER", "100000")
	t.Setenv("SFA_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://staging.sfabank.example/api", cfg.API.BaseURL)
	assert.Equal(t, int64(100000), cfg.Limits.SingleTransfer)
	assert.Equal(t, "warn", cfg.Log.Level)
}
