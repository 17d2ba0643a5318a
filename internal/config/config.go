package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ReminderWindow defines the annual window during which a second notification
// is sent: the first WindowDays days of Month.
type ReminderWindow struct {
	Month      int `yaml:"month"`
	WindowDays int `yaml:"window_days"`
}

// Config holds all application configuration.
type Config struct {
	Tickers struct {
		US       string `yaml:"us"`
		Intl     string `yaml:"intl"`
		RiskFree string `yaml:"risk_free"`
		Bond     string `yaml:"bond"`
	} `yaml:"tickers"`
	Lookback struct {
		Months           int  `yaml:"months"`
		SkipCurrentMonth bool `yaml:"skip_current_month"`
	} `yaml:"lookback"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "stooq"
	} `yaml:"data_source"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
		To       string `yaml:"to"`
	} `yaml:"smtp"`
	Schedule struct {
		MonthlyCron string `yaml:"monthly_cron"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Reminder ReminderWindow `yaml:"reminder"`
	Log      struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from an optional .env file and a YAML file, then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is not an error

	cfg := &Config{}
	// YAML leaves absent keys untouched, so pre-seeding keeps the default
	// for a bool whose zero value is not the default.
	cfg.Lookback.SkipCurrentMonth = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TICKER_US"); v != "" {
		cfg.Tickers.US = v
	}
	if v := os.Getenv("TICKER_INTL"); v != "" {
		cfg.Tickers.Intl = v
	}
	if v := os.Getenv("TICKER_RISK_FREE"); v != "" {
		cfg.Tickers.RiskFree = v
	}
	if v := os.Getenv("TICKER_BOND"); v != "" {
		cfg.Tickers.Bond = v
	}
	if v := os.Getenv("LOOKBACK_MONTHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Lookback.Months = n
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = n
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("SMTP_TO"); v != "" {
		cfg.SMTP.To = v
	}
	if v := os.Getenv("CRON_MONTHLY"); v != "" {
		cfg.Schedule.MonthlyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Tickers.US == "" {
		cfg.Tickers.US = "VTI"
	}
	if cfg.Tickers.Intl == "" {
		cfg.Tickers.Intl = "VXUS"
	}
	if cfg.Tickers.RiskFree == "" {
		cfg.Tickers.RiskFree = "BIL"
	}
	if cfg.Tickers.Bond == "" {
		cfg.Tickers.Bond = "BND"
	}
	if cfg.Lookback.Months == 0 {
		cfg.Lookback.Months = 12
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Schedule.MonthlyCron == "" {
		cfg.Schedule.MonthlyCron = "0 0 17 1 * *"
	}
	if cfg.Reminder.Month == 0 {
		cfg.Reminder.Month = 1
	}
	if cfg.Reminder.WindowDays == 0 {
		cfg.Reminder.WindowDays = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return cfg, nil
}

// Validate checks the fields every command needs before any fetch happens.
func (c *Config) Validate() error {
	if c.Tickers.US == "" {
		return fmt.Errorf("%w: tickers.us is required", ErrMissingConfig)
	}
	if c.Tickers.Intl == "" {
		return fmt.Errorf("%w: tickers.intl is required", ErrMissingConfig)
	}
	if c.Tickers.RiskFree == "" {
		return fmt.Errorf("%w: tickers.risk_free is required", ErrMissingConfig)
	}
	if c.Tickers.Bond == "" {
		return fmt.Errorf("%w: tickers.bond is required", ErrMissingConfig)
	}
	if c.Lookback.Months <= 0 {
		return fmt.Errorf("%w: lookback.months must be positive", ErrMissingConfig)
	}
	if c.Reminder.Month < 1 || c.Reminder.Month > 12 {
		return fmt.Errorf("%w: reminder.month must be 1-12", ErrMissingConfig)
	}
	if c.Reminder.WindowDays < 1 || c.Reminder.WindowDays > 31 {
		return fmt.Errorf("%w: reminder.window_days must be 1-31", ErrMissingConfig)
	}
	return nil
}

// ValidateNotifier checks the SMTP fields. Only the commands that actually
// send mail call this, so a dry-run report needs no mail credentials.
func (c *Config) ValidateNotifier() error {
	if c.SMTP.Host == "" {
		return fmt.Errorf("%w: smtp.host is required", ErrMissingConfig)
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("%w: smtp.from is required", ErrMissingConfig)
	}
	if c.SMTP.To == "" {
		return fmt.Errorf("%w: smtp.to is required", ErrMissingConfig)
	}
	return nil
}
