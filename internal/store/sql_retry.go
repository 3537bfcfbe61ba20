package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	dbRetryBase     = 50 * time.Millisecond
	dbRetryAttempts = 3
)

// withRetry runs fn and repeats it while the classifier deems the failure
// transient.
func withRetry(ctx context.Context, db *DB, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(dbRetryAttempts, retry.NewExponential(dbRetryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Str("func", "withRetry").Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
