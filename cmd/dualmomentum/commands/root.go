package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ha404/dual-momentum/internal/collector"
	"github.com/ha404/dual-momentum/internal/config"
	"github.com/ha404/dual-momentum/internal/logger"
	"github.com/ha404/dual-momentum/internal/notifier"
	"github.com/ha404/dual-momentum/internal/strategy"
)

var configFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dualmomentum",
	Short: "Dual momentum allocation signal with email notification",
	Long: `dualmomentum computes a dual-momentum allocation signal from monthly
price history of a US equity fund, an international equity fund and a
risk-free proxy, then emails the recommendation.

Examples:
  dualmomentum report
  dualmomentum run
  dualmomentum schedule`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default configs/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case "stooq":
		return collector.NewStooqFetcher(cfg.Proxy), nil
	default:
		return nil, fmt.Errorf("%w: data_source.provider %q is not supported", config.ErrMissingConfig, cfg.DataSource.Provider)
	}
}

func buildEngine(cfg *config.Config, log zerolog.Logger) (*strategy.Engine, error) {
	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", fetcher.Name()).Msg("data source selected")

	col := collector.NewCollector(fetcher, cfg.Lookback.Months, cfg.Lookback.SkipCurrentMonth, log)
	tickers := strategy.Tickers{
		US:       cfg.Tickers.US,
		Intl:     cfg.Tickers.Intl,
		RiskFree: cfg.Tickers.RiskFree,
		Bond:     cfg.Tickers.Bond,
	}
	return strategy.NewEngine(col, tickers, log), nil
}

func buildNotifier(cfg *config.Config, log zerolog.Logger) (*notifier.SMTPNotifier, error) {
	if err := cfg.ValidateNotifier(); err != nil {
		return nil, err
	}
	return notifier.NewSMTPNotifier(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.SMTP.To,
		log,
	), nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}
