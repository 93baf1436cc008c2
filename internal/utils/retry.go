// Package utils provides small helpers shared across packages, including retry logic for transient
// database errors like deadlocks.
package utils

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/lib/pq"
	"github.com/stellar/go-stellar-sdk/support/log"
)

// RetryConfig holds configuration for retry operations.
type RetryConfig struct {
	MaxRetries uint
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultDeadlockRetryConfig provides sensible defaults for deadlock retry handling.
var DefaultDeadlockRetryConfig = RetryConfig{
	MaxRetries: 5,
	BaseDelay:  100 * time.Millisecond,
	MaxDelay:   2 * time.Second,
}

// IsDeadlock checks if the error is a PostgreSQL deadlock error (code 40P01).
func IsDeadlock(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40P01"
	}
	return false
}

// IsRetryableDBError checks if the error is a transient database error that can be retried.
// This includes deadlocks and serialization failures.
func IsRetryableDBError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40P01": // deadlock_detected
			return true
		case "40001": // serialization_failure
			return true
		}
	}
	return false
}

// RetryOnDeadlock executes the given function and retries on deadlock errors
// using exponential backoff with jitter.
func RetryOnDeadlock(ctx context.Context, fn func() error) error {
	return RetryWithConfig(ctx, DefaultDeadlockRetryConfig, IsRetryableDBError, fn)
}

// RetryWithConfig executes the given function and retries while isRetryable reports true, up to
// config.MaxRetries extra attempts. The last error is returned as is.
func RetryWithConfig(ctx context.Context, config RetryConfig, isRetryable func(error) bool, fn func() error) error {
	attempts := config.MaxRetries + 1
	jitter := config.BaseDelay / 2
	if jitter <= 0 {
		jitter = time.Millisecond
	}
	//nolint:wrapcheck // callers match on the error returned by fn
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(config.BaseDelay),
		retry.MaxDelay(config.MaxDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(jitter),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warnf("Retryable error (attempt %d/%d): %v", n+1, attempts, err)
		}),
	)
}
