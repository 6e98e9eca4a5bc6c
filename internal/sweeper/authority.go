package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/token-tracker/internal/adapter"
	"github.com/feral-file/token-tracker/internal/domain"
	"github.com/feral-file/token-tracker/internal/logger"
	"github.com/feral-file/token-tracker/internal/store"
	"github.com/feral-file/token-tracker/internal/tracker"
)

// AuthoritySweeperConfig holds configuration for the authority sweeper
type AuthoritySweeperConfig struct {
	BatchSize      int           // Tokens fetched per page
	WorkerPoolSize int           // Concurrent authority checks
	QueueSize      int           // Pending checks before Submit blocks, defaults to BatchSize
	Interval       time.Duration // Pause between full passes
	RPCMaxElapsed  time.Duration // Retry budget per mint, zero disables retries
}

// CycleStats summarizes one pass over the unclassified tokens
type CycleStats struct {
	ID      string
	Mints   int
	Secure  int
	Flagged int
	Failed  int
}

// AuthoritySweeper re-checks unclassified tokens and flags the insecure ones as scam
type AuthoritySweeper interface {
	Sweeper

	// RunOnce performs a single pass without sleeping
	RunOnce(ctx context.Context) (*CycleStats, error)

	// Close stops the worker pool. Start calls it on exit; callers of RunOnce call it themselves.
	Close()
}

// authoritySweeper implements the Sweeper interface for token authority checks
type authoritySweeper struct {
	config    *AuthoritySweeperConfig
	store     store.Store
	service   tracker.Service
	clock     adapter.Clock
	poolMu    sync.Mutex
	pool      pond.Pool
	started   atomic.Bool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewAuthoritySweeper creates a new authority sweeper
func NewAuthoritySweeper(
	config *AuthoritySweeperConfig,
	st store.Store,
	service tracker.Service,
	clock adapter.Clock,
) AuthoritySweeper {
	return &authoritySweeper{
		config:    config,
		store:     st,
		service:   service,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *authoritySweeper) Name() string {
	return "authority-sweeper"
}

// Start runs passes until the context is canceled or Stop is called.
// A sweeper runs at most once; create a new one to start again.
func (s *authoritySweeper) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		if s.running.Load() {
			return fmt.Errorf("sweeper already running")
		}
		return fmt.Errorf("sweeper already stopped and cannot be restarted")
	}
	s.running.Store(true)
	defer func() {
		s.Close()
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting authority sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Authority sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Authority sweeper stop requested")
			return nil
		default:
			if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
			// Use context-aware sleep so we can be interrupted
			s.sleep(ctx, s.config.Interval)
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *authoritySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping authority sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Authority sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Authority sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// RunOnce pages through every unclassified token once and assesses each distinct mint
func (s *authoritySweeper) RunOnce(ctx context.Context) (*CycleStats, error) {
	startTime := s.clock.Now()
	stats := &CycleStats{ID: ulid.Make().String()}
	cycleField := zap.String("cycle_id", stats.ID)

	logger.InfoCtx(ctx, "Starting sweep cycle", cycleField)

	pool := s.workerPool(ctx)
	var secureCount, flaggedCount, failedCount atomic.Int32
	seen := make(map[string]struct{})

	var afterID int64
	for {
		tokens, err := s.store.FindUnclassified(ctx, afterID, s.config.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to get unclassified tokens: %w", err)
		}
		if len(tokens) == 0 {
			break
		}

		var mints []string
		for _, token := range tokens {
			if _, ok := seen[token.Mint]; ok {
				continue
			}
			seen[token.Mint] = struct{}{}
			mints = append(mints, token.Mint)
		}

		if len(mints) > 0 {
			group := pool.NewGroup()
			for _, mint := range mints {
				mint := mint // per-iteration copy; go.mod targets go1.21 loop semantics
				group.Submit(func() {
					result, err := s.assessWithRetry(ctx, mint)
					switch {
					case err != nil:
						failedCount.Add(1)
						logger.WarnCtx(ctx, "Authority check failed", cycleField, zap.String("mint", mint), zap.Error(err))
					case result.Secure:
						secureCount.Add(1)
					default:
						flaggedCount.Add(1)
					}
				})
			}
			if err := group.Wait(); err != nil {
				return nil, fmt.Errorf("worker group failed: %w", err)
			}
		}

		afterID = tokens[len(tokens)-1].ID
		if len(tokens) < s.config.BatchSize {
			break
		}
	}

	stats.Mints = len(seen)
	stats.Secure = int(secureCount.Load())
	stats.Flagged = int(flaggedCount.Load())
	stats.Failed = int(failedCount.Load())

	logger.InfoCtx(ctx, "Sweep cycle completed",
		cycleField,
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("mints", stats.Mints),
		zap.Int("secure", stats.Secure),
		zap.Int("flagged", stats.Flagged),
		zap.Int("failed", stats.Failed),
	)

	return stats, nil
}

// Close stops the worker pool after its queued checks finish
func (s *authoritySweeper) Close() {
	s.poolMu.Lock()
	defer s.poolMu.Unlock()
	if s.pool != nil {
		s.pool.StopAndWait()
		s.pool = nil
	}
}

// workerPool lazily creates the pool shared by every cycle of this sweeper
func (s *authoritySweeper) workerPool(ctx context.Context) pond.Pool {
	s.poolMu.Lock()
	defer s.poolMu.Unlock()
	if s.pool == nil {
		queueSize := s.config.QueueSize
		if queueSize <= 0 {
			queueSize = s.config.BatchSize
		}
		s.pool = pond.NewPool(
			s.config.WorkerPoolSize,
			pond.WithQueueSize(queueSize),
			pond.WithContext(ctx),
		)
	}
	return s.pool
}

// assessWithRetry retries transient failures of a single mint with exponential backoff.
// Answers that will not change on retry are returned immediately.
func (s *authoritySweeper) assessWithRetry(ctx context.Context, mint string) (*tracker.AssessResult, error) {
	if s.config.RPCMaxElapsed <= 0 {
		return s.service.Assess(ctx, mint)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = s.config.RPCMaxElapsed
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Authority check failed, retrying",
			zap.String("mint", mint),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	var result *tracker.AssessResult
	operation := func() error {
		var err error
		result, err = s.service.Assess(ctx, mint)
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return nil, err
	}
	return result, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrInvalidMint) ||
		errors.Is(err, domain.ErrMintAccountNotFound) ||
		errors.Is(err, domain.ErrNotMintAccount) ||
		errors.Is(err, domain.ErrLedgerInconsistent) ||
		errors.Is(err, tracker.ErrCheckerUnavailable) ||
		errors.Is(err, context.Canceled)
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *authoritySweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}
