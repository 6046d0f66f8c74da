package store

import (
	"context"
	"testing"

	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestWatermarkStore(t *testing.T) {
	ctx := context.Background()
	store := NewWatermarkStore(setupTestDB(t), logger.NewNopLogger())

	watermark, err := store.GetWatermark(ctx)
	require.NoError(t, err)
	require.Zero(t, watermark, "fresh database starts at watermark 0")

	require.NoError(t, store.SetWatermark(ctx, 100))
	watermark, err = store.GetWatermark(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(100), watermark)

	require.NoError(t, store.SetWatermark(ctx, 42))
	watermark, err = store.GetWatermark(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(42), watermark)
}

func TestWatermarkStore_CancelledContext(t *testing.T) {
	store := NewWatermarkStore(setupTestDB(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.SetWatermark(ctx, 1), context.Canceled)
	_, err := store.GetWatermark(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
