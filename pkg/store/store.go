package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// BlockRecord is a block the consumer previously saw and trusted.
// Uses meddler tags for automatic struct-to-db mapping.
type BlockRecord struct {
	Height uint64      `meddler:"block_number" json:"height"`
	Hash   common.Hash `meddler:"block_hash,hash" json:"hash"`
}

// BlockHistory is the read-only view of stored block records used by reorg detection.
// Results are ordered by height, newest first, and there is at most one record per height.
type BlockHistory interface {
	// GetBlocks returns all stored records.
	GetBlocks(ctx context.Context) ([]*BlockRecord, error)

	// GetBlocksUpTo returns the stored records with height <= maxHeight.
	GetBlocksUpTo(ctx context.Context, maxHeight uint64) ([]*BlockRecord, error)
}

// BlockStore extends BlockHistory with the write primitives a consumer uses
// to maintain its history.
type BlockStore interface {
	BlockHistory

	// GetLatest returns at most limit records, newest first.
	GetLatest(ctx context.Context, limit int) ([]*BlockRecord, error)

	// SaveBlocks inserts or replaces the given records.
	SaveBlocks(ctx context.Context, blocks []*BlockRecord) error

	// DeleteBlocksAbove removes every record with height > height and returns how many were removed.
	DeleteBlocksAbove(ctx context.Context, height uint64) (int64, error)
}

// WatermarkStore persists the height up to which the consumer has fully processed blocks.
type WatermarkStore interface {
	GetWatermark(ctx context.Context) (uint64, error)
	SetWatermark(ctx context.Context, height uint64) error
}
