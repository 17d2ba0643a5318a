package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ha404/dual-momentum/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate once and email the recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		engine, err := buildEngine(cfg, log)
		if err != nil {
			return err
		}
		mail, err := buildNotifier(cfg, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s := scheduler.NewScheduler(ctx, engine, mail, cfg.Reminder, log)
		if err := s.RunNow(); err != nil {
			log.Error().Err(err).Msg("evaluation run failed")
			return err
		}
		log.Info().Msg("recommendation sent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
