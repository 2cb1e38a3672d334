package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigen-app/taigen/internal/config"
	"github.com/taigen-app/taigen/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}

	cmd.AddCommand(
		migrateSubCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrateSubCmd("down", "Roll back the latest migration", db.MigrateDown),
		migrateSubCmd("status", "Print the state of every migration", db.MigrationStatus),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close(database)

			err = run(database.DB, cfg.DBDriver)
			if err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			fmt.Printf("migrate %s: ok\n", use)
			return nil
		},
	}
}
