package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/token-tracker/internal/config"
	"github.com/feral-file/token-tracker/internal/logger"
)

var (
	configFile string
	envPath    string

	cfg *config.TrackerConfig
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Token launch tracker",
	Long:  "Records newly launched tokens, counts name and creator repeats and keeps a scam/rug reputation ledger per creator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadTrackerConfig(configFile, envPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Initialize logger with sentry integration
		err = logger.Initialize(logger.Config{
			Debug:           cfg.Debug,
			Level:           cfg.LogLevel,
			SentryDSN:       cfg.SentryDSN,
			BreadcrumbLevel: zapcore.InfoLevel,
			Tags: map[string]string{
				"service": "tracker",
				"command": cmd.Name(),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Flush(2 * time.Second)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/", "Path to environment files")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
