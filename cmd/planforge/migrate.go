package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"planforge/internal/app"
	"planforge/internal/repository/postgres"
)

func migrateCmd(newLogger func() *slog.Logger) *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg := loadConfig()

			if drop && cfg.Environment == "prod" {
				return errors.New("refusing to drop tables in prod")
			}

			storage, err := app.NewPostgresStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer storage.Close()

			if drop {
				if err := postgres.DropAll(cmd.Context(), storage.RepoConfig); err != nil {
					return err
				}
			}
			if err := postgres.Migrate(cmd.Context(), storage.RepoConfig); err != nil {
				return err
			}

			logger.Info("schema ready", "table_prefix", cfg.TablePrefix, "dropped", drop)
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "Drop all tables before migrating")
	return cmd
}

func seedTemplatesCmd(newLogger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-templates",
		Short: "Insert the built-in templates into an empty template store",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg := loadConfig()

			storage, err := app.NewPostgresStorage(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			a, err := app.New(cfg, storage, app.Options{}, logger)
			if err != nil {
				storage.Close()
				return err
			}
			defer a.Close()

			inserted, err := a.Templates.EnsureDefaults(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("templates seeded", "inserted", inserted)
			return nil
		},
	}
}
