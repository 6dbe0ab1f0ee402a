package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// Default retry parameters, applied when the corresponding RetryConfig
// field is unset.
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 500 * time.Millisecond
)

// IsRetryable reports whether a failed attempt is worth repeating.
//
// Only APIError values are candidates: a transport failure that never
// produced an HTTP response is never retried. For API errors the policy is:
//   - 429: the rate limiter asked us to back off.
//   - 1xx: an informational status leaking through is a transient condition.
//   - 5xx with a non-JSON body: an upstream proxy or load balancer failure.
//     A 5xx carrying an application/json body is a deliberate application
//     response and is final.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch {
	case apiErr.StatusCode == 429:
		return true
	case apiErr.StatusCode >= 100 && apiErr.StatusCode < 200:
		return true
	case apiErr.StatusCode >= 500 && apiErr.StatusCode <= 599:
		return !strings.HasPrefix(apiErr.ContentType, "application/json")
	}
	return false
}

// RetryConfig configures retry behavior for failed API calls.
type RetryConfig struct {
	// MaxAttempts is the total number of executions, first try included.
	MaxAttempts int
	// BaseDelay is the backoff unit; it also bounds the jitter.
	BaseDelay time.Duration
	// ShouldRetry decides whether a failed attempt is repeated.
	ShouldRetry func(err error) bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		ShouldRetry: IsRetryable,
	}
}

// Delay returns the backoff to apply after the given failed attempt.
// Full-jitter exponential: BaseDelay*2^attempt + random(0, BaseDelay),
// where attempt is the 1-based number of the attempt that just failed.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	base := r.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	backoff := float64(base) * math.Pow(2, float64(attempt))
	return time.Duration(backoff) + rand.N(base)
}

// Wait sleeps for the computed backoff, or until ctx is canceled.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do executes op until it succeeds, the attempt budget is exhausted, or the
// classifier rules the failure final. Attempts run strictly one after
// another, and the error from the last execution is the one propagated.
// A nil cfg means DefaultRetryConfig.
func Do[T any](ctx context.Context, cfg *RetryConfig, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsRetryable
	}

	for attempt := 1; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		// The budget is spent either way on the final attempt, so the
		// classifier is not consulted.
		if attempt == maxAttempts {
			return zero, err
		}
		if !shouldRetry(err) {
			return zero, err
		}
		if werr := cfg.Wait(ctx, attempt); werr != nil {
			return zero, werr
		}
	}
}
