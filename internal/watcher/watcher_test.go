package watcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	reorgmocks "github.com/goran-ethernal/ReorgGuard/internal/reorg/mocks"
	storemocks "github.com/goran-ethernal/ReorgGuard/internal/store/mocks"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestWatcher(t *testing.T, interval time.Duration) (*Watcher, *reorgmocks.Detector, *storemocks.WatermarkStore) {
	t.Helper()

	detector := reorgmocks.NewDetector(t)
	watermarks := storemocks.NewWatermarkStore(t)
	cfg := &config.WatcherConfig{Enabled: true, Interval: common.NewDuration(interval)}

	return New(detector, watermarks, cfg, logger.NewNopLogger()), detector, watermarks
}

func TestWatcher_InitialStatus(t *testing.T) {
	w, _, _ := setupTestWatcher(t, time.Second)

	status := w.Status()
	require.Zero(t, status.Checks)
	require.True(t, status.LastCheck.IsZero())
	require.False(t, status.Healthy())
}

func TestWatcher_CheckNoReorg(t *testing.T) {
	w, detector, watermarks := setupTestWatcher(t, time.Second)

	watermarks.EXPECT().GetWatermark(mock.Anything).Return(uint64(100), nil).Once()
	detector.EXPECT().DetectReorg(mock.Anything, uint64(100), (*uint64)(nil)).Return(reorg.NoReorg(), nil).Once()

	status := w.Check(context.Background())
	require.Equal(t, uint64(100), status.Watermark)
	require.NotNil(t, status.Verdict)
	require.False(t, status.Verdict.Reorg)
	require.Empty(t, status.Error)
	require.True(t, status.Healthy())
	require.Equal(t, status, w.Status())
}

func TestWatcher_CheckReorgCallsHandler(t *testing.T) {
	w, detector, watermarks := setupTestWatcher(t, time.Second)

	var gotWatermark uint64
	var gotVerdict reorg.Verdict
	w.OnReorg(func(_ context.Context, watermark uint64, verdict reorg.Verdict) {
		gotWatermark = watermark
		gotVerdict = verdict
	})

	watermarks.EXPECT().GetWatermark(mock.Anything).Return(uint64(100), nil).Once()
	detector.EXPECT().DetectReorg(mock.Anything, uint64(100), (*uint64)(nil)).Return(reorg.ReorgTo(95), nil).Once()

	status := w.Check(context.Background())
	require.Equal(t, reorg.ReorgTo(95), *status.Verdict)
	require.Equal(t, uint64(100), gotWatermark)
	require.Equal(t, reorg.ReorgTo(95), gotVerdict)
}

func TestWatcher_FailuresAreCountedAndReset(t *testing.T) {
	w, detector, watermarks := setupTestWatcher(t, time.Second)
	ctx := context.Background()

	watermarks.EXPECT().GetWatermark(mock.Anything).Return(uint64(100), nil).Times(3)
	detector.EXPECT().DetectReorg(mock.Anything, uint64(100), (*uint64)(nil)).
		Return(reorg.NoReorg(), reorg.NewConnectionError(errors.New("connection refused"))).Twice()

	status := w.Check(ctx)
	require.Equal(t, 1, status.ConsecutiveFailures)
	require.Equal(t, "connection", status.ErrorKind)
	require.Nil(t, status.Verdict)

	status = w.Check(ctx)
	require.Equal(t, 2, status.ConsecutiveFailures)
	require.False(t, status.Healthy())

	detector.EXPECT().DetectReorg(mock.Anything, uint64(100), (*uint64)(nil)).Return(reorg.NoReorg(), nil).Once()

	status = w.Check(ctx)
	require.Zero(t, status.ConsecutiveFailures)
	require.Empty(t, status.ErrorKind)
	require.Equal(t, uint64(3), status.Checks)
}

func TestWatcher_WatermarkError(t *testing.T) {
	w, _, watermarks := setupTestWatcher(t, time.Second)

	watermarks.EXPECT().GetWatermark(mock.Anything).Return(uint64(0), errors.New("no such table: consumer_state")).Once()

	status := w.Check(context.Background())
	require.Equal(t, "internal", status.ErrorKind)
	require.Contains(t, status.Error, "failed to load watermark")
	require.Equal(t, 1, status.ConsecutiveFailures)
}

func TestWatcher_RunChecksUntilCancelled(t *testing.T) {
	w, detector, watermarks := setupTestWatcher(t, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var checks atomic.Int32
	watermarks.EXPECT().GetWatermark(mock.Anything).Return(uint64(7), nil)
	detector.EXPECT().DetectReorg(mock.Anything, uint64(7), (*uint64)(nil)).
		RunAndReturn(func(context.Context, uint64, *uint64) (reorg.Verdict, error) {
			if checks.Add(1) == 3 {
				cancel()
			}
			return reorg.NoReorg(), nil
		})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}

	require.GreaterOrEqual(t, checks.Load(), int32(3))
	require.GreaterOrEqual(t, w.Status().Checks, uint64(3))
}

func TestNew_DefaultInterval(t *testing.T) {
	w := New(reorgmocks.NewDetector(t), storemocks.NewWatermarkStore(t), nil, nil)
	require.Equal(t, defaultInterval, w.interval)
}

func TestWatcher_OnReorgWhileRunning(t *testing.T) {
	w, detector, watermarks := setupTestWatcher(t, 10*time.Millisecond)

	watermarks.EXPECT().GetWatermark(mock.Anything).Return(uint64(100), nil)
	detector.EXPECT().DetectReorg(mock.Anything, uint64(100), (*uint64)(nil)).Return(reorg.ReorgTo(95), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	var calls atomic.Int32
	require.Eventually(t, func() bool { return w.Status().Checks > 0 }, time.Second, 5*time.Millisecond)
	w.OnReorg(func(_ context.Context, _ uint64, verdict reorg.Verdict) {
		if verdict == reorg.ReorgTo(95) {
			calls.Add(1)
		}
	})

	require.Eventually(t, func() bool { return calls.Load() > 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
