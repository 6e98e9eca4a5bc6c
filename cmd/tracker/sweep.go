package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/feral-file/token-tracker/internal/logger"
	"github.com/feral-file/token-tracker/internal/sweeper"
	"github.com/feral-file/token-tracker/internal/tracker"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Re-check the authorities of unclassified tokens",
	Long:  "Pages through every unclassified token, checks its mint and freeze authorities and flags insecure tokens as scam. Runs continuously unless --once is set.",
	Args:  cobra.NoArgs,
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().Bool("once", false, "Run a single pass and exit")
}

func runSweep(cmd *cobra.Command, args []string) error {
	once, _ := cmd.Flags().GetBool("once")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.checker == nil {
		return tracker.ErrCheckerUnavailable
	}

	// Initialize authority sweeper
	authoritySweeper := sweeper.NewAuthoritySweeper(&sweeper.AuthoritySweeperConfig{
		BatchSize:      cfg.Sweeper.BatchSize,
		WorkerPoolSize: cfg.Sweeper.Worker.WorkerPoolSize,
		QueueSize:      cfg.Sweeper.Worker.WorkerQueueSize,
		Interval:       cfg.Sweeper.Interval,
		RPCMaxElapsed:  cfg.Sweeper.RPCMaxElapsed,
	}, a.store, a.service, a.clock)
	defer authoritySweeper.Close()

	if once {
		stats, err := authoritySweeper.RunOnce(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	}

	logger.InfoCtx(ctx, "Initialized authority sweeper (continuous mode)",
		zap.Int("batch_size", cfg.Sweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.Sweeper.Worker.WorkerPoolSize),
		zap.Duration("interval", cfg.Sweeper.Interval),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := authoritySweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := authoritySweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
	return nil
}
