package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/hris-recruitment/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

func main() {
	var (
		migrationsDir string
		dsn           string
	)

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply database migrations for the recruitment service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory containing migration files")
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "database URL (defaults to the DB_* environment)")

	action := func(name string, fn func(m *migrate.Migrate) error) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: name + " migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open(migrationsDir, dsn)
				if err != nil {
					return err
				}
				defer m.Close()

				if err := fn(m); err != nil {
					return fmt.Errorf("migration %s failed: %w", name, err)
				}
				slog.Info("migration completed", "action", name)
				return nil
			},
		}
	}

	root.AddCommand(
		action("up", func(m *migrate.Migrate) error {
			return ignoreNoChange(m.Up())
		}),
		action("down", func(m *migrate.Migrate) error {
			return ignoreNoChange(m.Down())
		}),
		action("drop", func(m *migrate.Migrate) error {
			return m.Drop()
		}),
		action("version", func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				slog.Info("no migration applied")
				return nil
			}
			if err != nil {
				return err
			}
			slog.Info("current version", "version", version, "dirty", dirty)
			return nil
		}),
	)

	if err := root.Execute(); err != nil {
		slog.Error("migrate", "error", err)
		os.Exit(1)
	}
}

func open(dir, dsn string) (*migrate.Migrate, error) {
	if dsn == "" {
		db, err := config.LoadDatabase()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		dsn = db.URL()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
