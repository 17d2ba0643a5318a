package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Evaluate once and print the report without sending email",
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

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		res, err := engine.Evaluate(ctx)
		if err != nil {
			return err
		}
		fmt.Print(res.Report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
