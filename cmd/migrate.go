package cmd

import (
	"context"

	"sports-club/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := database.Migrate(context.Background(), config.Database.DSN(), logger); err != nil {
				return err
			}

			logger.Info("Migrations applied", zap.String("database", config.Database.Name))
			return nil
		},
	}
}
