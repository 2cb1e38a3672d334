package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigen-app/taigen/internal/app"
	"github.com/taigen-app/taigen/internal/config"
	"github.com/taigen-app/taigen/internal/logger"
)

func RemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send due deadline reminders once, outside the server schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.AppEnv, cfg.SentryDSN)
			defer logger.Flush()

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			sent, err := a.ReminderService.RunOnce(cmd.Context())
			if err != nil {
				return fmt.Errorf("reminders failed after %d sent: %w", sent, err)
			}
			fmt.Printf("reminders sent: %d\n", sent)
			return nil
		},
	}
}
