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

// Compile-time check to ensure BlockStore implements pkgstore.BlockStore interface.
var _ pkgstore.BlockStore = (*BlockStore)(nil)

const blockHistoryTable = "block_history"

// BlockStore implements pkgstore.BlockStore using SQLite as the backend.
type BlockStore struct {
	db  *sql.DB
	log *logger.Logger
}

// NewBlockStore creates a new SQLite-backed BlockStore.
// The block_history table must already exist (see migrations.RunMigrationsDB).
func NewBlockStore(db *sql.DB, log *logger.Logger) *BlockStore {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BlockStore{
		db:  db,
		log: log,
	}
}

// GetBlocks returns all stored records, newest first.
func (s *BlockStore) GetBlocks(ctx context.Context) ([]*pkgstore.BlockRecord, error) {
	const query = `SELECT block_number, block_hash FROM block_history ORDER BY block_number DESC`

	return s.queryBlocks(ctx, "get_blocks", query)
}

// GetBlocksUpTo returns the stored records with height <= maxHeight, newest first.
func (s *BlockStore) GetBlocksUpTo(ctx context.Context, maxHeight uint64) ([]*pkgstore.BlockRecord, error) {
	const query = `
		SELECT block_number, block_hash FROM block_history
		WHERE block_number <= ?
		ORDER BY block_number DESC
	`

	return s.queryBlocks(ctx, "get_blocks_up_to", query, maxHeight)
}

// GetLatest returns at most limit records, newest first. A non-positive limit returns every record.
func (s *BlockStore) GetLatest(ctx context.Context, limit int) ([]*pkgstore.BlockRecord, error) {
	if limit <= 0 {
		return s.GetBlocks(ctx)
	}

	const query = `
		SELECT block_number, block_hash FROM block_history
		ORDER BY block_number DESC
		LIMIT ?
	`

	return s.queryBlocks(ctx, "get_latest", query, limit)
}

// SaveBlocks inserts the given records, replacing the hash of any height already stored.
func (s *BlockStore) SaveBlocks(ctx context.Context, blocks []*pkgstore.BlockRecord) (err error) {
	if len(blocks) == 0 {
		return nil
	}

	defer s.observe("save_blocks", time.Now(), &err)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Errorf("failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	const upsert = `
		INSERT INTO block_history (block_number, block_hash)
		VALUES (?, ?)
		ON CONFLICT(block_number) DO UPDATE SET block_hash = excluded.block_hash
	`

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("failed to prepare block insert: %w", err)
	}
	defer stmt.Close()

	for _, block := range blocks {
		if block == nil {
			continue
		}
		if _, err = stmt.ExecContext(ctx, block.Height, block.Hash.Hex()); err != nil {
			return fmt.Errorf("failed to save block %d: %w", block.Height, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Debugf("saved %d block records", len(blocks))

	return nil
}

// DeleteBlocksAbove removes every record with height > height. It is used after a rollback
// so the history only holds blocks on the surviving chain.
func (s *BlockStore) DeleteBlocksAbove(ctx context.Context, height uint64) (deleted int64, err error) {
	defer s.observe("delete_blocks_above", time.Now(), &err)

	res, err := s.db.ExecContext(ctx, `DELETE FROM block_history WHERE block_number > ?`, height)
	if err != nil {
		return 0, fmt.Errorf("failed to delete blocks above %d: %w", height, err)
	}

	deleted, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted blocks: %w", err)
	}

	if deleted > 0 {
		s.log.Infof("deleted %d block records above block %d", deleted, height)
	}

	return deleted, nil
}

func (s *BlockStore) queryBlocks(ctx context.Context, operation, query string,
	args ...any) (blocks []*pkgstore.BlockRecord, err error) {
	defer s.observe(operation, time.Now(), &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	blocks = make([]*pkgstore.BlockRecord, 0)
	if err = meddler.QueryAll(s.db, &blocks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query block history: %w", err)
	}

	return blocks, nil
}

func (s *BlockStore) observe(operation string, start time.Time, err *error) {
	metrics.DBQueryInc(blockHistoryTable, operation)
	metrics.DBQueryDuration(blockHistoryTable, operation, time.Since(start))
	if *err != nil {
		metrics.DBErrorsInc(blockHistoryTable, operation)
	}
}
