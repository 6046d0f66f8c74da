package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	pkgrpc "github.com/goran-ethernal/ReorgGuard/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNetError implements net.Error for testing
type mockNetError struct {
	msg     string
	timeout bool
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return false }

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error", err: nil, retryable: false},
		{name: "network timeout error", err: &mockNetError{msg: "network timeout", timeout: true}, retryable: true},
		{name: "connection refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "connection reset", err: syscall.ECONNRESET, retryable: true},
		{name: "wrapped broken pipe", err: fmt.Errorf("write: %w", syscall.EPIPE), retryable: true},
		{name: "dial error", err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, retryable: true},
		{name: "context deadline exceeded", err: context.DeadlineExceeded, retryable: true},
		{name: "context canceled", err: context.Canceled, retryable: false},
		{name: "too many requests", err: errors.New("Too Many Requests"), retryable: true},
		{name: "service unavailable", err: errors.New("503 Service Unavailable"), retryable: true},
		{name: "http 429", err: rpc.HTTPError{StatusCode: 429, Status: "429"}, retryable: true},
		{name: "http 500", err: rpc.HTTPError{StatusCode: 500, Status: "500"}, retryable: true},
		{name: "http 401", err: rpc.HTTPError{StatusCode: 401, Status: "401 Unauthorized"}, retryable: false},
		{name: "block not found", err: fmt.Errorf("block 1: %w", pkgrpc.ErrBlockNotFound), retryable: false},
		{name: "invalid parameter", err: errors.New("invalid parameter"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, retryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := &config.RetryConfig{
		InitialBackoff:    common.NewDuration(time.Second),
		MaxBackoff:        common.NewDuration(5 * time.Second),
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{attempt: 1, min: 0, max: 0},
		{attempt: 2, min: 750 * time.Millisecond, max: 1250 * time.Millisecond},
		{attempt: 3, min: 1500 * time.Millisecond, max: 2500 * time.Millisecond},
		{attempt: 4, min: 3 * time.Second, max: 5 * time.Second},
		{attempt: 10, min: 3750 * time.Millisecond, max: 6250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt %d", tt.attempt), func(t *testing.T) {
			for range 10 {
				backoff := calculateBackoff(tt.attempt, cfg)
				assert.GreaterOrEqual(t, backoff, tt.min)
				assert.LessOrEqual(t, backoff, tt.max)
			}
		})
	}
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := &config.RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    common.NewDuration(time.Millisecond),
		MaxBackoff:        common.NewDuration(10 * time.Millisecond),
		BackoffMultiplier: 2.0,
	}
	transient := &mockNetError{msg: "i/o timeout", timeout: true}
	permanent := errors.New("invalid parameter")

	tests := []struct {
		name      string
		cfg       *config.RetryConfig
		failures  []error
		wantCalls int
		wantErr   string
		wantIs    error
	}{
		{
			name:      "success on first attempt",
			cfg:       cfg,
			wantCalls: 1,
		},
		{
			name:      "success after retries",
			cfg:       cfg,
			failures:  []error{transient, transient},
			wantCalls: 3,
		},
		{
			name:      "non-retryable first attempt returned as is",
			cfg:       cfg,
			failures:  []error{permanent},
			wantCalls: 1,
			wantErr:   "invalid parameter",
			wantIs:    permanent,
		},
		{
			name:      "non-retryable after a retry",
			cfg:       cfg,
			failures:  []error{transient, permanent},
			wantCalls: 2,
			wantErr:   "non-retryable error on attempt 2/3",
			wantIs:    permanent,
		},
		{
			name:      "exhausted",
			cfg:       cfg,
			failures:  []error{transient, transient, transient, transient},
			wantCalls: 3,
			wantErr:   "all 3 attempts failed",
			wantIs:    transient,
		},
		{
			name:      "nil config runs once",
			cfg:       nil,
			failures:  []error{transient},
			wantCalls: 1,
			wantIs:    transient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retryWithBackoff(context.Background(), tt.cfg, "eth_test", func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			require.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == "" && tt.wantIs == nil {
				require.NoError(t, err)
				return
			}
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			}
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &config.RetryConfig{
		MaxAttempts:       5,
		InitialBackoff:    common.NewDuration(10 * time.Millisecond),
		MaxBackoff:        common.NewDuration(100 * time.Millisecond),
		BackoffMultiplier: 2.0,
	}

	calls := 0
	err := retryWithBackoff(ctx, cfg, "eth_test", func() error {
		calls++
		if calls == 2 {
			cancel()
		}
		return &mockNetError{msg: "temporary error", timeout: true}
	})

	require.ErrorContains(t, err, "context cancelled")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, calls)
}

func TestRetryWithBackoff_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	cfg := &config.RetryConfig{
		MaxAttempts:       10,
		InitialBackoff:    common.NewDuration(100 * time.Millisecond),
		MaxBackoff:        common.NewDuration(time.Second),
		BackoffMultiplier: 2.0,
	}

	calls := 0
	err := retryWithBackoff(ctx, cfg, "eth_test", func() error {
		calls++
		return &mockNetError{msg: "temporary error", timeout: true}
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, calls, 10)
}
