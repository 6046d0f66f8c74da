package reorg

import (
	"context"
	"fmt"
)

// Detector decides whether the node's chain diverged from the locally stored history.
type Detector interface {
	// DetectReorg compares stored block records against the node's current view.
	// watermark is the height the consumer has fully processed. currentHeightHint,
	// when non-nil, is used instead of querying the node for its head height.
	//
	// It returns a Verdict, or one of *ConnectionError, *NodeInconsistentError
	// or *InsufficientHistoryError.
	DetectReorg(ctx context.Context, watermark uint64, currentHeightHint *uint64) (Verdict, error)
}

// Verdict is the outcome of a successful reorg check.
type Verdict struct {
	// Reorg is true when the stored history diverged from the node's chain.
	Reorg bool `json:"reorg"`

	// RollbackTo is the highest height both views agree on. Only meaningful when Reorg is true;
	// the consumer must discard and reprocess everything above it.
	RollbackTo uint64 `json:"rollback_to,omitempty"`
}

// NoReorg returns the verdict for an unchanged chain.
func NoReorg() Verdict {
	return Verdict{}
}

// ReorgTo returns the verdict for a reorg whose common ancestor is at height.
func ReorgTo(height uint64) Verdict {
	return Verdict{Reorg: true, RollbackTo: height}
}

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	if !v.Reorg {
		return "no reorg"
	}
	return fmt.Sprintf("reorg, rollback to block %d", v.RollbackTo)
}
