package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	"github.com/SheershikaSB/school-vaccination-portal/internal/config"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
	"github.com/SheershikaSB/school-vaccination-portal/internal/seed"
)

func newSeedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the configured admin account if it does not exist",
		Long: `seed-admin reads admin.username and admin.password (ADMIN_USERNAME and
ADMIN_PASSWORD) and inserts the account unless the username is taken.
Running it again is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, func(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
				created, err := seed.Admin(ctx, repositories.NewUserRepository(database), cfg.Admin.Username, cfg.Admin.Password, lgr)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", cfg.Admin.Username)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %q already exists\n", cfg.Admin.Username)
				}
				return nil
			})
		},
	}
}
