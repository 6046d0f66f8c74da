package reorg

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	internalcommon "github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/internal/metrics"
	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
	"github.com/goran-ethernal/ReorgGuard/pkg/rpc"
	"github.com/goran-ethernal/ReorgGuard/pkg/store"
)

var _ reorg.Detector = (*ReorgDetector)(nil)

// errNoObserver is the cause reported when the detector has no node client.
var errNoObserver = errors.New("chain observer is not available")

// ReorgDetector compares the stored block history with the chain the node currently reports.
// It keeps no mutable state and is safe for concurrent use. Serializing checks against
// writes to the same history is up to the caller.
type ReorgDetector struct {
	history  store.BlockHistory
	observer rpc.ChainObserver
	log      *logger.Logger
}

// NewReorgDetector creates a new ReorgDetector.
// A nil observer is accepted and makes every check fail with a reorg.ConnectionError,
// so a caller that could not construct its node client still gets a classified error.
func NewReorgDetector(history store.BlockHistory, observer rpc.ChainObserver, log *logger.Logger) *ReorgDetector {
	if log == nil {
		log = logger.NewNopLogger()
	}

	detector := &ReorgDetector{
		history:  history,
		observer: observer,
		log:      log,
	}

	metrics.ComponentHealthSet(internalcommon.ComponentReorgDetector, true)

	detector.log.Info("reorg detector initialized")

	return detector
}

// DetectReorg walks the stored records from newest to oldest and asks the node for the hash
// at each height. The first matching height is the common ancestor:
//   - a match at watermark means nothing changed,
//   - a match anywhere else means the consumer must roll back to that height.
//
// When the node is behind watermark, only records the node can attest to (height <= current height)
// are compared. An empty candidate set yields NoReorg.
func (r *ReorgDetector) DetectReorg(ctx context.Context, watermark uint64,
	currentHeightHint *uint64) (reorg.Verdict, error) {
	start := time.Now()

	verdict, scanned, err := r.detect(ctx, watermark, currentHeightHint)

	reorgCheckLog(watermark, verdict, scanned, err, time.Since(start))
	metrics.ComponentHealthSet(internalcommon.ComponentReorgDetector, err == nil)

	return verdict, err
}

func (r *ReorgDetector) detect(ctx context.Context, watermark uint64,
	currentHeightHint *uint64) (reorg.Verdict, int, error) {
	currentHeight, err := r.resolveCurrentHeight(ctx, currentHeightHint)
	if err != nil {
		r.log.Errorw("failed to get current block height from node", "watermark", watermark, "error", err)
		return reorg.NoReorg(), 0, err
	}

	candidates, err := r.candidates(ctx, watermark, currentHeight)
	if err != nil {
		return reorg.NoReorg(), 0, fmt.Errorf("failed to load block history: %w", err)
	}

	if len(candidates) == 0 {
		if currentHeight < watermark {
			r.log.Warnw("node is behind watermark and no stored block is at or below its height",
				"watermark", watermark,
				"current_height", currentHeight,
			)
		} else {
			r.log.Debugw("no stored block history, nothing to compare", "watermark", watermark)
		}
		return reorg.NoReorg(), 0, nil
	}

	for i, candidate := range candidates {
		nodeHash, err := r.observer.HashAt(ctx, candidate.Height)
		if err != nil {
			r.log.Errorw("node failed to return block hash",
				"block", candidate.Height,
				"current_height", currentHeight,
				"error", err,
			)
			return reorg.NoReorg(), i + 1, reorg.NewNodeInconsistentError(candidate.Height, err)
		}

		r.log.Debugw("compared stored block with node",
			"block", candidate.Height,
			"stored_hash", candidate.Hash.Hex(),
			"node_hash", nodeHash.Hex(),
		)

		if nodeHash != candidate.Hash {
			continue
		}

		if candidate.Height == watermark {
			return reorg.NoReorg(), i + 1, nil
		}

		r.log.Warnw("reorg detected",
			"watermark", watermark,
			"current_height", currentHeight,
			"rollback_to", candidate.Height,
			"mismatched_blocks", i,
		)
		return reorg.ReorgTo(candidate.Height), i + 1, nil
	}

	newest := candidates[0]
	r.log.Errorw("reorg detected but no stored block matches the node, rollback point unknown",
		"watermark", watermark,
		"current_height", currentHeight,
		"newest_stored_block", newest.Height,
		"newest_stored_hash", newest.Hash.Hex(),
		"oldest_stored_block", candidates[len(candidates)-1].Height,
	)

	return reorg.NoReorg(), len(candidates),
		reorg.NewInsufficientHistoryError(watermark, currentHeight, newest.Hash)
}

// resolveCurrentHeight returns the hint when given, otherwise asks the node.
func (r *ReorgDetector) resolveCurrentHeight(ctx context.Context, hint *uint64) (uint64, error) {
	if r.observer == nil {
		return 0, reorg.NewConnectionError(errNoObserver)
	}

	if hint != nil {
		return *hint, nil
	}

	height, err := r.observer.CurrentHeight(ctx)
	if err != nil {
		return 0, reorg.NewConnectionError(err)
	}

	metrics.NodeHeightSet(height)

	return height, nil
}

// candidates selects the stored records to compare, newest first.
// A node that is behind watermark can only attest to heights up to its own head.
func (r *ReorgDetector) candidates(ctx context.Context, watermark, currentHeight uint64) ([]*store.BlockRecord, error) {
	var (
		records  []*store.BlockRecord
		err      error
		eligible = func(*store.BlockRecord) bool { return true }
	)

	if currentHeight >= watermark {
		records, err = r.history.GetBlocks(ctx)
	} else {
		records, err = r.history.GetBlocksUpTo(ctx, currentHeight)
		eligible = func(b *store.BlockRecord) bool { return b.Height <= currentHeight }
	}
	if err != nil {
		return nil, err
	}

	metrics.StoredBlocksSet(len(records))

	candidates := make([]*store.BlockRecord, 0, len(records))
	for _, record := range records {
		if record != nil && eligible(record) {
			candidates = append(candidates, record)
		}
	}

	slices.SortStableFunc(candidates, func(a, b *store.BlockRecord) int {
		return cmp.Compare(b.Height, a.Height)
	})

	return candidates, nil
}
