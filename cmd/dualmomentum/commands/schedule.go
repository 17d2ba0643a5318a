package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ha404/dual-momentum/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run as a daemon, evaluating on the monthly cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)
		log.Info().Msg("dualmomentum starting")

		engine, err := buildEngine(cfg, log)
		if err != nil {
			return err
		}
		mail, err := buildNotifier(cfg, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := scheduler.NewScheduler(ctx, engine, mail, cfg.Reminder, log)
		if err := s.RegisterAll(cfg.Schedule.MonthlyCron); err != nil {
			return err
		}
		s.Start()
		defer s.Stop()

		if cfg.Schedule.RunOnStart || os.Getenv("RUN_ON_START") == "true" {
			log.Info().Msg("run_on_start enabled, executing evaluation now")
			go func() {
				if err := s.RunNow(); err != nil {
					log.Error().Err(err).Msg("startup evaluation failed")
				}
			}()
		}

		log.Info().Str("cron", cfg.Schedule.MonthlyCron).Msg("dualmomentum is running")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutdown signal received, stopping")
		cancel()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
