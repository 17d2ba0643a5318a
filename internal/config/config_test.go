package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TICKER_US", "TICKER_INTL", "TICKER_RISK_FREE", "TICKER_BOND",
		"LOOKBACK_MONTHS", "DATA_PROVIDER", "SMTP_HOST", "SMTP_PORT",
		"SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM", "SMTP_TO",
		"CRON_MONTHLY", "HTTPS_PROXY", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "VTI", cfg.Tickers.US)
	assert.Equal(t, "VXUS", cfg.Tickers.Intl)
	assert.Equal(t, "BIL", cfg.Tickers.RiskFree)
	assert.Equal(t, "BND", cfg.Tickers.Bond)
	assert.Equal(t, 12, cfg.Lookback.Months)
	assert.True(t, cfg.Lookback.SkipCurrentMonth)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 1, cfg.Reminder.Month)
	assert.Equal(t, 3, cfg.Reminder.WindowDays)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
tickers:
  us: SPY
  intl: VEU
lookback:
  months: 6
  skip_current_month: false
reminder:
  month: 9
  window_days: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SPY", cfg.Tickers.US)
	assert.Equal(t, "VEU", cfg.Tickers.Intl)
	assert.Equal(t, "BIL", cfg.Tickers.RiskFree) // default survives partial file
	assert.Equal(t, 6, cfg.Lookback.Months)
	assert.False(t, cfg.Lookback.SkipCurrentMonth)
	assert.Equal(t, 9, cfg.Reminder.Month)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TICKER_US", "ITOT")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("LOOKBACK_MONTHS", "9")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ITOT", cfg.Tickers.US)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 9, cfg.Lookback.Months)
}

func TestValidate_InvalidLookback(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Lookback.Months = -1

	err = cfg.Validate()
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "lookback.months")
}

func TestValidate_MissingTicker(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Tickers.RiskFree = ""

	err = cfg.Validate()
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "tickers.risk_free")
}

func TestValidateNotifier(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	err = cfg.ValidateNotifier()
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "smtp.host")

	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.From = "bot@example.com"
	cfg.SMTP.To = "me@example.com"
	require.NoError(t, cfg.ValidateNotifier())
}
