package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/wrightcode/ladybugs/internal/config"
	"github.com/wrightcode/ladybugs/pkg/logger"
	"github.com/wrightcode/ladybugs/pkg/logger/slogx"
)

var rootCmd = &cobra.Command{
	Use:  "ladybugs",
	Long: `Drop scheduler and supply ledger for the Ladybugs collection`,
}

func init() {
	var configFile string

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		config := config.Parse(configFile)

		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger: %v", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	rootCmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewMigrateCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
