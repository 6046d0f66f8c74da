package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	pkgrpc "github.com/goran-ethernal/ReorgGuard/pkg/rpc"
)

const backoffJitter = 0.25

// transientMessages are lowercase fragments of error messages that indicate
// the node or a proxy in front of it is temporarily unable to serve.
var transientMessages = []string{
	"timeout",
	"deadline exceeded",
	"429",
	"too many requests",
	"rate limit",
	"502",
	"503",
	"504",
	"bad gateway",
	"service unavailable",
	"connection pool",
	"no available connection",
}

// retryableError checks if an error should trigger a retry.
// A missing block is an answer, not a failure, and is never retried.
func retryableError(err error) bool {
	if err == nil || errors.Is(err, pkgrpc.ErrBlockNotFound) || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= http.StatusInternalServerError
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range transientMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return false
}

// calculateBackoff computes the wait before the given attempt, with jitter.
// The first attempt never waits.
func calculateBackoff(attempt int, cfg *config.RetryConfig) time.Duration {
	if attempt <= 1 {
		return 0
	}

	backoff := float64(cfg.InitialBackoff.Duration) * math.Pow(cfg.BackoffMultiplier, float64(attempt-2))
	backoff = math.Min(backoff, float64(cfg.MaxBackoff.Duration))

	jitterRange := backoff * backoffJitter
	backoff += rand.Float64()*2*jitterRange - jitterRange //nolint:gosec

	return time.Duration(math.Max(backoff, 0))
}

// retryWithBackoff runs fn until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx is done. A nil cfg runs fn exactly once.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, method string, fn func() error) error {
	if cfg == nil {
		return fn()
	}

	var lastErr error
	startTime := time.Now()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if wait := calculateBackoff(attempt, cfg); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s: context cancelled during backoff (attempt %d/%d): %w",
					method, attempt, cfg.MaxAttempts, errors.Join(ctx.Err(), lastErr))
			}
			RPCRetryInc(method)
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: context cancelled before attempt %d: %w", method, attempt, err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryableError(err) {
			if attempt == 1 {
				return err
			}
			return fmt.Errorf("%s: non-retryable error on attempt %d/%d: %w", method, attempt, cfg.MaxAttempts, err)
		}
	}

	return fmt.Errorf("%s: all %d attempts failed after %v (last error: %w)",
		method, cfg.MaxAttempts, time.Since(startTime), lastErr)
}
