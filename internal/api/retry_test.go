package api

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"rate limited", &APIError{StatusCode: 429, ContentType: "application/json"}, true},
		{"informational 100", &APIError{StatusCode: 100}, true},
		{"informational 150", &APIError{StatusCode: 150}, true},
		{"informational 199", &APIError{StatusCode: 199}, true},
		{"500 without content type", &APIError{StatusCode: 500}, true},
		{"503 html body", &APIError{StatusCode: 503, ContentType: "text/html"}, true},
		{"599 plain text", &APIError{StatusCode: 599, ContentType: "text/plain; charset=utf-8"}, true},
		{"500 json body", &APIError{StatusCode: 500, ContentType: "application/json"}, false},
		{"502 json with charset", &APIError{StatusCode: 502, ContentType: "application/json; charset=utf-8"}, false},
		{"bad request", &APIError{StatusCode: 400}, false},
		{"unauthorized", &APIError{StatusCode: 401}, false},
		{"not found", &APIError{StatusCode: 404}, false},
		{"success code is not an error", &APIError{StatusCode: 200}, false},
		{"redirect", &APIError{StatusCode: 302}, false},
		{"transport failure", &NetworkError{Err: errors.New("connection refused")}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsRetryable_WrappedAPIError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch failed: %w", &APIError{StatusCode: 429})
	if !IsRetryable(err) {
		t.Error("IsRetryable() should unwrap to the APIError")
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()

	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.BaseDelay != 500*time.Millisecond {
		t.Errorf("BaseDelay = %v, want 500ms", cfg.BaseDelay)
	}
	if cfg.ShouldRetry == nil {
		t.Error("ShouldRetry is nil")
	}
}

func TestRetryConfig_Delay_Bounds(t *testing.T) {
	t.Parallel()

	base := 500 * time.Millisecond
	cfg := &RetryConfig{BaseDelay: base}

	// After failed attempt k the delay is base*2^k plus up to base jitter.
	for attempt := 1; attempt <= 4; attempt++ {
		minDelay := base << uint(attempt)
		maxDelay := minDelay + base
		for i := 0; i < 100; i++ {
			delay := cfg.Delay(attempt)
			if delay < minDelay || delay >= maxDelay {
				t.Fatalf("Delay(%d) = %v, want in [%v, %v)", attempt, delay, minDelay, maxDelay)
			}
		}
	}
}

func TestDo_SuccessFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	result, err := Do(context.Background(), quickRetry(5), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	result, err := Do(context.Background(), quickRetry(5), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, &APIError{StatusCode: 429, Message: "too many requests"}
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result != 42 {
		t.Errorf("result = %d, want 42", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := Do(context.Background(), quickRetry(5), func(context.Context) (string, error) {
		calls++
		return "", &APIError{StatusCode: 404, Message: "404 Not Found"}
	})
	if err == nil {
		t.Fatal("Do() should propagate the error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("err = %v, want the 404 APIError", err)
	}
}

func TestDo_ExhaustsBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := Do(context.Background(), quickRetry(5), func(context.Context) (string, error) {
		calls++
		return "", &APIError{StatusCode: 503, ContentType: "text/html", Message: fmt.Sprintf("attempt %d", calls)}
	})
	if err == nil {
		t.Fatal("Do() should propagate the last error")
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	if err.Error() != "Doppler API Error: attempt 5" {
		t.Errorf("err = %q, want the error from the final attempt", err.Error())
	}
}

func TestDo_ClassifierNotConsultedOnFinalAttempt(t *testing.T) {
	t.Parallel()

	consulted := 0
	cfg := &RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		ShouldRetry: func(err error) bool {
			consulted++
			return true
		},
	}

	calls := 0
	_, err := Do(context.Background(), cfg, func(context.Context) (string, error) {
		calls++
		return "", &APIError{StatusCode: 503}
	})
	if err == nil {
		t.Fatal("Do() should propagate the error")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if consulted != 2 {
		t.Errorf("classifier consulted %d times, want 2", consulted)
	}
}

func TestDo_NilConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := Do(context.Background(), nil, func(context.Context) (string, error) {
		calls++
		return "", &APIError{StatusCode: 400}
	})
	if err == nil {
		t.Fatal("Do() should propagate the error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a non-retryable error", calls)
	}
}

func TestDo_ContextCanceledDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := &RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		ShouldRetry: IsRetryable,
	}

	calls := 0
	_, err := Do(ctx, cfg, func(context.Context) (string, error) {
		calls++
		cancel()
		return "", &APIError{StatusCode: 429}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// quickRetry is the default policy with a delay small enough for tests.
func quickRetry(maxAttempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		ShouldRetry: IsRetryable,
	}
}
