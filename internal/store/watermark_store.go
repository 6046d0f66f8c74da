package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/internal/metrics"
	pkgstore "github.com/goran-ethernal/ReorgGuard/pkg/store"
	"github.com/russross/meddler"
)

// Compile-time check to ensure WatermarkStore implements pkgstore.WatermarkStore interface.
var _ pkgstore.WatermarkStore = (*WatermarkStore)(nil)

const consumerStateTable = "consumer_state"

// consumerState is the single row of the consumer_state table.
type consumerState struct {
	ID        int64  `meddler:"id,pk"`
	Watermark uint64 `meddler:"watermark"`
	UpdatedAt int64  `meddler:"updated_at"`
}

// WatermarkStore keeps the consumer watermark in the consumer_state table.
type WatermarkStore struct {
	db  *sql.DB
	log *logger.Logger
}

// NewWatermarkStore creates a new SQLite-backed WatermarkStore.
func NewWatermarkStore(db *sql.DB, log *logger.Logger) *WatermarkStore {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &WatermarkStore{
		db:  db,
		log: log,
	}
}

// GetWatermark returns the height up to which the consumer has processed blocks.
func (s *WatermarkStore) GetWatermark(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var state consumerState
	if err := meddler.QueryRow(s.db, &state, `SELECT * FROM consumer_state WHERE id = 1`); err != nil {
		metrics.DBErrorsInc(consumerStateTable, "get_watermark")
		return 0, fmt.Errorf("failed to get watermark: %w", err)
	}
	metrics.DBQueryInc(consumerStateTable, "get_watermark")

	return state.Watermark, nil
}

// SetWatermark stores a new watermark.
func (s *WatermarkStore) SetWatermark(ctx context.Context, height uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	state := consumerState{
		ID:        1,
		Watermark: height,
		UpdatedAt: time.Now().Unix(),
	}

	if err := meddler.Update(s.db, consumerStateTable, &state); err != nil {
		metrics.DBErrorsInc(consumerStateTable, "set_watermark")
		return fmt.Errorf("failed to set watermark: %w", err)
	}
	metrics.DBQueryInc(consumerStateTable, "set_watermark")

	s.log.Debugf("watermark set: block=%d", height)

	return nil
}
