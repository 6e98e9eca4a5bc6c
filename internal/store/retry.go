package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/feral-file/token-tracker/internal/logger"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// isTransientError reports whether err is a lock contention error that is safe to retry
// after the surrounding transaction was rolled back
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}

// retryTransient runs op until it succeeds, fails with a non transient error,
// ctx is done or maxElapsed is exhausted. maxElapsed <= 0 runs op once.
func retryTransient(ctx context.Context, op string, maxElapsed time.Duration, fn func() error) error {
	if maxElapsed <= 0 {
		return fn()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !isTransientError(err) {
			return backoff.Permanent(err)
		}
		logger.DebugCtx(ctx, "Retrying store operation after lock contention",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}, backoff.WithContext(b, ctx))
}
