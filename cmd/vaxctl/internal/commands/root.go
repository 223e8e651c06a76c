package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SheershikaSB/school-vaccination-portal/internal/bootstrap"
	"github.com/SheershikaSB/school-vaccination-portal/internal/config"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
)

// NewRootCmd builds the vaxctl command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vaxctl",
		Short: "Operations tool for the school vaccination portal",
		Long: `vaxctl runs deployment tasks against the portal database.

Database and admin settings come from the same YAML config and environment
variables the API server reads.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", bootstrap.DefaultConfigPath, "path to the YAML config file")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newSeedAdminCmd(),
		newHashPasswordCmd(),
	)
	return rootCmd
}

// withDatabase loads config, connects, and hands the open database to fn.
func withDatabase(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("invalid config flag: %w", err)
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	return fn(cmd.Context(), cfg, database, lgr)
}
