package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/migrations"
	"github.com/SheershikaSB/school-vaccination-portal/internal/config"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  migrateRunner((*migrations.Migrator).Up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  migrateRunner((*migrations.Migrator).Down),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			Args:  cobra.NoArgs,
			RunE:  migrateRunner((*migrations.Migrator).Status),
		},
	)
	return migrateCmd
}

func migrateRunner(step func(*migrations.Migrator, context.Context) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(ctx context.Context, _ *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
			migrator, err := migrations.NewMigrator(database.Pool)
			if err != nil {
				return fmt.Errorf("failed to create migrator: %w", err)
			}
			defer migrator.Close()

			if err := step(migrator, ctx); err != nil {
				return err
			}

			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			lgr.Info().Int64("version", version).Str("command", cmd.Name()).Msg("Migration command finished")
			return nil
		})
	}
}
