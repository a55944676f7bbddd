// Package cmd defines and implements the CLI commands for the jobscout
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/config"
	"github.com/jobscout/jobscout/internal/logging"
	"github.com/jobscout/jobscout/internal/metrics"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobscout",
		Short: "Finds job openings on company websites.",
		Long: `jobscout takes a list of company names, resolves each company's
official website, hunts down its career pages and scans them for matching
job openings. Outcomes are recorded durably so repeated runs pick up where
the last one stopped.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cfgFile)
			if err != nil {
				return fmt.Errorf("initialize application: %w", err)
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := appFrom(cmd.Context()); ok {
				a.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is env/flags only)")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	// Local .env files carry Telegram credentials in development.
	_ = godotenv.Load()
	metrics.Init()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfigAndLogger is shared by app construction; split out so failures
// before the logger exists still report cleanly.
func loadConfigAndLogger(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}
