package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	internalcommon "github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/internal/metrics"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
	"github.com/goran-ethernal/ReorgGuard/pkg/store"
)

const defaultInterval = 30 * time.Second

// Status is a snapshot of the most recent reorg check.
type Status struct {
	// LastCheck is when the last check finished; zero before the first check
	LastCheck time.Time `json:"last_check"`
	// Watermark is the consumer watermark the last check ran against
	Watermark uint64 `json:"watermark"`
	// Verdict is the outcome of the last check, nil if it failed
	Verdict *reorg.Verdict `json:"verdict,omitempty"`
	// ErrorKind classifies the failure of the last check
	ErrorKind string `json:"error_kind,omitempty"`
	// Error is the failure message of the last check
	Error string `json:"error,omitempty"`
	// ConsecutiveFailures counts failed checks since the last successful one
	ConsecutiveFailures int `json:"consecutive_failures"`
	// Checks is the number of checks run since start
	Checks uint64 `json:"checks"`
}

// Healthy reports whether the last check produced a verdict.
func (s Status) Healthy() bool {
	return s.Checks > 0 && s.ConsecutiveFailures == 0
}

// ReorgHandler is called after a check that confirmed a reorg.
type ReorgHandler func(ctx context.Context, watermark uint64, verdict reorg.Verdict)

// Watcher periodically runs reorg checks against the consumer's watermark.
// Checks never overlap, so the detector sees a consistent history for each call.
type Watcher struct {
	detector   reorg.Detector
	watermarks store.WatermarkStore
	interval   time.Duration
	log        *logger.Logger

	mu      sync.RWMutex
	status  Status
	onReorg ReorgHandler
}

// New creates a Watcher. A nil cfg uses the default interval.
func New(detector reorg.Detector, watermarks store.WatermarkStore, cfg *config.WatcherConfig,
	log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.NewNopLogger()
	}

	interval := defaultInterval
	if cfg != nil && cfg.Interval.Duration > 0 {
		interval = cfg.Interval.Duration
	}

	return &Watcher{
		detector:   detector,
		watermarks: watermarks,
		interval:   interval,
		log:        log,
	}
}

// OnReorg registers a handler invoked whenever a check returns a reorg verdict.
// It replaces any previous handler and may be called while Run is active.
func (w *Watcher) OnReorg(handler ReorgHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.onReorg = handler
}

// Run checks immediately and then on every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Infow("watcher started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.Check(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Check runs a single reorg check and returns the resulting status.
func (w *Watcher) Check(ctx context.Context) Status {
	watermark, err := w.watermarks.GetWatermark(ctx)
	if err != nil {
		return w.record(0, reorg.Verdict{}, fmt.Errorf("failed to load watermark: %w", err))
	}

	metrics.WatermarkSet(watermark)

	verdict, err := w.detector.DetectReorg(ctx, watermark, nil)
	status := w.record(watermark, verdict, err)

	if err == nil && verdict.Reorg {
		w.log.Warnw("reorg detected, consumer must roll back",
			"watermark", watermark,
			"rollback_to", verdict.RollbackTo,
		)
		w.mu.RLock()
		handler := w.onReorg
		w.mu.RUnlock()

		if handler != nil {
			handler(ctx, watermark, verdict)
		}
	}

	return status
}

// Status returns the latest check snapshot.
func (w *Watcher) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.status
}

func (w *Watcher) record(watermark uint64, verdict reorg.Verdict, err error) Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.status.LastCheck = time.Now().UTC()
	w.status.Watermark = watermark
	w.status.Checks++

	if err != nil {
		kind := reorg.Kind(err)
		if errors.Is(err, context.Canceled) {
			kind = "canceled"
		}

		w.status.Verdict = nil
		w.status.ErrorKind = kind
		w.status.Error = err.Error()
		w.status.ConsecutiveFailures++

		checkFailuresInc(kind)
		metrics.ErrorsInc(internalcommon.ComponentWatcher, kind)

		w.log.Errorw("reorg check failed",
			"watermark", watermark,
			"kind", kind,
			"consecutive_failures", w.status.ConsecutiveFailures,
			"error", err,
		)
	} else {
		w.status.Verdict = &verdict
		w.status.ErrorKind = ""
		w.status.Error = ""
		w.status.ConsecutiveFailures = 0

		w.log.Debugw("reorg check finished", "watermark", watermark, "verdict", verdict.String())
	}

	consecutiveFailuresSet(w.status.ConsecutiveFailures)
	metrics.ComponentHealthSet(internalcommon.ComponentWatcher, err == nil)

	return w.status
}
