package classifier

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MinBackoff:  time.Millisecond,
		MaxBackoff:  4 * time.Millisecond,
	}
}

func TestWithRetryRateLimitThenSuccess(t *testing.T) {
	attempts := 0
	call := withRetry(testPolicy(), func(ctx context.Context) (CallResult, error) {
		attempts++
		if attempts < 3 {
			return CallResult{}, errors.New("429 Too Many Requests")
		}
		return CallResult{Text: "Cardiology"}, nil
	})

	result := call(context.Background())

	if result.Failed() {
		t.Fatalf("expected success after retries, got failure: %v", result.Err)
	}
	if result.Text != "Cardiology" {
		t.Errorf("expected text %q, got %q", "Cardiology", result.Text)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryRateLimitExhaustion(t *testing.T) {
	attempts := 0
	call := withRetry(testPolicy(), func(ctx context.Context) (CallResult, error) {
		attempts++
		return CallResult{}, errors.New("rate limit exceeded")
	})

	result := call(context.Background())

	if !result.Failed() {
		t.Fatal("expected failure marker after exhausting attempts")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryNoRetryOnOtherFailures(t *testing.T) {
	attempts := 0
	call := withRetry(testPolicy(), func(ctx context.Context) (CallResult, error) {
		attempts++
		return CallResult{}, errors.New("401 Unauthorized")
	})

	result := call(context.Background())

	if !result.Failed() {
		t.Fatal("expected failure marker for non-rate-limit error")
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestWithRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	call := withRetry(testPolicy(), func(ctx context.Context) (CallResult, error) {
		attempts++
		return CallResult{}, errors.New("429 Too Many Requests")
	})

	result := call(ctx)

	if !result.Failed() {
		t.Fatal("expected failure marker after context cancellation")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt before cancellation took effect, got %d", attempts)
	}
}

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "status code",
			err:      errors.New("API returned unexpected status code: 429"),
			expected: true,
		},
		{
			name:     "rate limit phrase",
			err:      errors.New("rate limit exceeded, retry later"),
			expected: true,
		},
		{
			name:     "snake case token",
			err:      errors.New("error type rate_limit_error"),
			expected: true,
		},
		{
			name:     "too many requests",
			err:      errors.New("Too Many Requests"),
			expected: true,
		},
		{
			name:     "auth failure",
			err:      errors.New("401 Unauthorized"),
			expected: false,
		},
		{
			name:     "schema violation",
			err:      errors.New("tool arguments do not conform to schema"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimit(tt.err); got != tt.expected {
				t.Errorf("isRateLimit(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestBackoffStaysWithinBounds(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts: 3,
		MinBackoff:  10 * time.Millisecond,
		MaxBackoff:  80 * time.Millisecond,
	}

	for attempt := 1; attempt <= 6; attempt++ {
		for i := 0; i < 50; i++ {
			wait := policy.backoff(attempt)
			if wait < policy.MinBackoff {
				t.Fatalf("attempt %d: backoff %s below minimum %s", attempt, wait, policy.MinBackoff)
			}
			if wait > policy.MaxBackoff {
				t.Fatalf("attempt %d: backoff %s above maximum %s", attempt, wait, policy.MaxBackoff)
			}
		}
	}
}
