// Package retry runs an operation a bounded number of times with a fixed
// backoff schedule and reports the outcome as a value.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy bounds a retry loop.
type Policy struct {
	// Attempts is the total number of calls, including the first one.
	Attempts int
	// Backoff[i] is the wait after the (i+1)th failed attempt. The last entry
	// is reused when the schedule is shorter than Attempts-1.
	Backoff []time.Duration
	// Retryable decides whether an error may be retried. Nil retries everything.
	Retryable func(error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration)
	// Sleep waits between attempts. Nil uses a timer that honours ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy is three attempts with 2s, 4s and 8s waits.
func DefaultPolicy() Policy {
	return Policy{
		Attempts: 3,
		Backoff:  []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second},
	}
}

// Delay returns the wait after the given zero-based failed attempt.
func (p Policy) Delay(i int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.Backoff) {
		return p.Backoff[len(p.Backoff)-1]
	}
	return p.Backoff[i]
}

// Result is either the value of a successful attempt or the terminal error.
type Result[T any] struct {
	Value    T
	Err      error
	Attempts int
}

func (r Result[T]) OK() bool { return r.Err == nil }

// Do calls fn until it succeeds, returns a non-retryable error, or the policy
// runs out of attempts.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) Result[T] {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var zero T
	for attempt := 1; ; attempt++ {
		v, err := fn(ctx, attempt)
		if err == nil {
			return Result[T]{Value: v, Attempts: attempt}
		}
		if attempt >= attempts || (p.Retryable != nil && !p.Retryable(err)) {
			return Result[T]{Value: zero, Err: err, Attempts: attempt}
		}

		wait := p.Delay(attempt - 1)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}
		if serr := sleep(ctx, wait); serr != nil {
			return Result[T]{
				Value:    zero,
				Err:      fmt.Errorf("retry aborted after attempt %d: %w", attempt, errors.Join(err, serr)),
				Attempts: attempt,
			}
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
