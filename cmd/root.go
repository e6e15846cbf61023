package cmd

import (
	"fmt"
	"os"

	"sports-club/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sports-club",
		Short:         "Sports club management API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())

	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config and the process logger shared by every subcommand.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production logger.\n", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}
