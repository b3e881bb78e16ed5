package analysis

import (
	"context"
	"time"
)

// Sleeper blocks for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryPolicy bounds the attempts made for one chunk.
type RetryPolicy struct {
	MaxAttempts   int
	BackoffFactor int
}

// DefaultRetryPolicy makes five attempts with waits of 2, 4, 8, 16 and 32 seconds.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, BackoffFactor: 2}

// Backoff returns the wait after a rate-limited attempt: factor^attempt seconds.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	wait := time.Second
	for i := 0; i < attempt; i++ {
		wait *= time.Duration(p.BackoffFactor)
	}
	return wait
}
