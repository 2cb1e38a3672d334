package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"
)

var dialects = map[string]string{
	"sqlite": "sqlite3",
	"pgx":    "postgres",
}

// useGoose points goose at the embedded migrations for driver.
func useGoose(driver string) error {
	dialect, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	err := goose.SetDialect(dialect)
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	return nil
}

func RunMigrations(db *sql.DB, driver string) error {
	err := useGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Up(db, ".")
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err == nil {
		slog.Info("migrations completed", "version", version)
	}
	return nil
}

func MigrateDown(db *sql.DB, driver string) error {
	err := useGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Down(db, ".")
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	slog.Info("rolled back one migration")
	return nil
}

// MigrationStatus prints applied and pending migrations to stdout.
func MigrationStatus(db *sql.DB, driver string) error {
	err := useGoose(driver)
	if err != nil {
		return err
	}

	goose.SetLogger(log.New(os.Stdout, "", 0))
	return goose.Status(db, ".")
}
