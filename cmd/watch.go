package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/api"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Runs batches on a schedule",
		Long: `Runs an immediate batch, then repeats on the configured cron
schedule until interrupted. A status HTTP server exposes health, metrics
and the outcome ledger while watching.`,
		RunE: runWatchCommand,
	}
}

func runWatchCommand(cmd *cobra.Command, _ []string) error {
	a, ok := appFrom(cmd.Context())
	if !ok {
		return errors.New("application services not initialized")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statusServer := api.NewServer(a.store, a.cfg.Batch.MaxAttempts, a.logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           statusServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("status server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	runBatch := func() {
		summary, err := a.runner.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("batch failed", zap.Error(err))
			return
		}
		statusServer.RecordRun(summary)
	}

	// First batch runs immediately; the schedule covers subsequent ones.
	runBatch()

	// A batch can outlast the schedule interval; overlapping runs would
	// clobber each other's ledger saves, so still-running batches skip
	// the next tick instead.
	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))
	if _, err := scheduler.AddFunc(a.cfg.Watch.Schedule, runBatch); err != nil {
		return fmt.Errorf("parse watch schedule %q: %w", a.cfg.Watch.Schedule, err)
	}
	scheduler.Start()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	case err := <-serverErr:
		runErr = fmt.Errorf("status server: %w", err)
	}

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("status server shutdown", zap.Error(err))
	}

	return runErr
}
