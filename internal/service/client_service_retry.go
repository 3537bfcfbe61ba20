package service

import (
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultRetryBase = time.Second
	defaultRetryMax  = 5 * time.Minute
)

// RetryPolicy computes the delay before a failed queued operation may be
// replayed again: exponential in the number of failed attempts, capped at
// Max.
type RetryPolicy struct {
	Base time.Duration
	Max  time.Duration
}

// NewRetryPolicy returns a policy with non-positive values replaced by the
// defaults.
func NewRetryPolicy(base, maxDelay time.Duration) RetryPolicy {
	if base <= 0 {
		base = defaultRetryBase
	}
	if maxDelay <= 0 {
		maxDelay = defaultRetryMax
	}
	if maxDelay < base {
		maxDelay = base
	}
	return RetryPolicy{Base: base, Max: maxDelay}
}

// Delay returns the wait after the given number of failed attempts.
// Attempts below one are treated as one.
func (p RetryPolicy) Delay(attempts int) time.Duration {
	policy := NewRetryPolicy(p.Base, p.Max)
	backoff := retry.WithCappedDuration(policy.Max, retry.NewExponential(policy.Base))

	delay := policy.Base
	for i := 0; i < max(attempts, 1); i++ {
		next, stop := backoff.Next()
		if stop {
			break
		}
		delay = next
		if delay >= policy.Max {
			return policy.Max
		}
	}
	return delay
}
