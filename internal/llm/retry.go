package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"resume-tailor/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base     Client
	attempts int
	delay    time.Duration
}

// WithRetry wraps base so transient failures are retried up to extra times,
// doubling the delay after each attempt. extra <= 0 returns base unchanged.
func WithRetry(base Client, extra int, delay time.Duration) Client {
	if base == nil || extra <= 0 {
		return base
	}
	if delay <= 0 {
		delay = retryBaseDelay
	}
	return retryingClient{base: base, attempts: extra, delay: delay}
}

func (r retryingClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := r.base.Complete(ctx, prompt)
	delay := r.delay
	for attempt := 1; attempt <= r.attempts && err != nil && shouldRetry(err); attempt++ {
		telemetry.Warn("llm.retry", map[string]any{
			"attempt": attempt,
			"error":   err.Error(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
		resp, err = r.base.Complete(ctx, prompt)
	}
	return resp, err
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}
	return false
}
