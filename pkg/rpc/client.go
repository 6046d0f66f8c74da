package rpc

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrBlockNotFound is returned by HashAt when the node has no block at the requested height.
var ErrBlockNotFound = errors.New("block not found")

// ChainObserver is a read-only view of the node's current chain.
// This abstraction allows for easier testing and alternative implementations.
type ChainObserver interface {
	// CurrentHeight returns the height of the node's chain head.
	CurrentHeight(ctx context.Context) (uint64, error)

	// HashAt returns the hash the node currently associates with the given height.
	// If the node has reorganized, this reflects the new chain.
	HashAt(ctx context.Context, height uint64) (common.Hash, error)

	// Close closes the underlying connection.
	Close()
}
