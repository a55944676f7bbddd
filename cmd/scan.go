package cmd

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Runs a single batch",
		Long: `Processes one bounded batch of companies from the input list:
resolves websites, discovers career pages, scans for job keywords and
records every outcome before exiting.`,
		RunE: runScanCommand,
	}
}

func runScanCommand(cmd *cobra.Command, _ []string) error {
	a, ok := appFrom(cmd.Context())
	if !ok {
		return errors.New("application services not initialized")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := a.runner.Run(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("scan finished",
		zap.String("run_id", summary.RunID.String()),
		zap.Int("processed", summary.Processed),
		zap.Int("matched", len(summary.Results)))
	return nil
}
