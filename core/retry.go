package core

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy determines retry behavior for failed requests.
type RetryPolicy interface {
	// NextDelay returns the delay before the next retry attempt and
	// whether to retry. If ok is false, no more attempts are made.
	// attempt starts at 0 for the first retry after the initial failure.
	NextDelay(attempt int, err error) (delay time.Duration, ok bool)
}

// RetryConfig configures exponential backoff retry.
type RetryConfig struct {
	MaxAttempts int           // Total attempts including the first (default: 3)
	BaseDelay   time.Duration // Delay before the first retry (default: 1s)
	Factor      float64       // Multiplier applied per retry (default: 2.0)
	MaxDelay    time.Duration // Delay cap (default: 60s)
}

// DefaultRetryPolicy returns the standard policy: 3 attempts with
// delays of 1s then 2s, doubling up to a 60s cap.
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(RetryConfig{})
}

// NoRetry returns a policy that never retries: one call, failures
// propagate unchanged.
func NoRetry() RetryPolicy {
	return noRetryPolicy{}
}

type noRetryPolicy struct{}

func (noRetryPolicy) NextDelay(int, error) (time.Duration, bool) { return 0, false }

// NewRetryPolicy creates an exponential backoff policy.
// Every failure other than context cancellation is retried; the
// intermediate failures are suppressed and only the final one surfaces
// to the caller.
func NewRetryPolicy(cfg RetryConfig) RetryPolicy {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.Factor <= 1 {
		cfg.Factor = 2.0
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 60 * time.Second
	}
	return &exponentialBackoff{cfg: cfg}
}

type exponentialBackoff struct {
	cfg RetryConfig
}

func (e *exponentialBackoff) NextDelay(attempt int, err error) (time.Duration, bool) {
	// attempt n computes the delay between attempts n+1 and n+2.
	if attempt >= e.cfg.MaxAttempts-1 {
		return 0, false
	}

	// A cancelled caller is done regardless of attempts remaining.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	delay := float64(e.cfg.BaseDelay)
	for i := 0; i < attempt; i++ {
		delay *= e.cfg.Factor
		if delay >= float64(e.cfg.MaxDelay) {
			break
		}
	}
	if delay > float64(e.cfg.MaxDelay) {
		delay = float64(e.cfg.MaxDelay)
	}

	return time.Duration(delay), true
}

// Do runs op, retrying per policy. The sleep between attempts selects
// on ctx so cooperative callers suspend instead of blocking past
// cancellation. The final failure is returned unchanged.
func Do[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; ; attempt++ {
		result, err = op()
		if err == nil {
			return result, nil
		}

		delay, retry := policy.NextDelay(attempt, err)
		if !retry {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}
}
