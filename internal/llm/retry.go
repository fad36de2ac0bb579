package llm

import (
	"context"
	"strings"
	"time"
)

const (
	defaultAttempts = 3
	retryBaseDelay  = 2 * time.Second
	retryMaxDelay   = 10 * time.Second
)

// RetryProvider wraps another provider and retries failed completions
// with exponential backoff. Auth failures are not retried.
type RetryProvider struct {
	inner    Provider
	attempts int
	sleep    func(ctx context.Context, d time.Duration) error
}

func WithRetry(p Provider) *RetryProvider {
	return &RetryProvider{
		inner:    p,
		attempts: defaultAttempts,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *RetryProvider) Name() string {
	return r.inner.Name()
}

func (r *RetryProvider) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

func (r *RetryProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
			if err := r.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		resp, err := r.inner.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, lastErr
		}
		if !retryable(err) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "invalid API key") {
		return false
	}
	if strings.Contains(msg, "status 401") || strings.Contains(msg, "status 403") {
		return false
	}
	return true
}
