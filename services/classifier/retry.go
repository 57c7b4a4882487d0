package classifier

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"
)

// RetryPolicy bounds how often and how long a rate-limited call is retried.
// Only rate-limit rejections are retried; every other failure degrades to a
// failure-marked result on the first attempt.
type RetryPolicy struct {
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MinBackoff:  time.Second,
		MaxBackoff:  30 * time.Second,
	}
}

type callFunc func(ctx context.Context) (CallResult, error)

// withRetry wraps a single-attempt call into one with bounded retry and
// randomized exponential backoff. The returned function never surfaces an
// error: whatever remains after the attempt ceiling becomes a failure-marked
// result. All retry state is local to one invocation, so the wrapped call is
// safe to run from many workers at once.
func withRetry(policy RetryPolicy, call callFunc) func(context.Context) CallResult {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return func(ctx context.Context) CallResult {
		var lastErr error

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			result, err := call(ctx)
			if err == nil {
				return result
			}
			lastErr = err

			if !isRateLimit(err) {
				log.Printf("[ERROR] Classification call failed: %v", err)
				return failure(err)
			}

			if attempt == maxAttempts {
				break
			}

			wait := policy.backoff(attempt)
			log.Printf("[WARN] Rate limited on attempt %d/%d, backing off for %s", attempt, maxAttempts, wait)

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return failure(ctx.Err())
			}
		}

		log.Printf("[ERROR] Giving up after %d rate-limited attempts: %v", maxAttempts, lastErr)
		return failure(lastErr)
	}
}

// backoff picks a randomized wait in [MinBackoff, MinBackoff<<attempt],
// clamped to MaxBackoff.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	ceiling := p.MinBackoff << uint(attempt)
	if ceiling > p.MaxBackoff {
		ceiling = p.MaxBackoff
	}
	if ceiling <= p.MinBackoff {
		return p.MinBackoff
	}
	return p.MinBackoff + time.Duration(rand.Int63n(int64(ceiling-p.MinBackoff)))
}

// isRateLimit classifies an error as a rate-limit rejection. The underlying
// SDK surfaces HTTP failures as wrapped errors without a typed status, so
// this matches on the tokens the serving layers actually emit.
func isRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "too many requests")
}
