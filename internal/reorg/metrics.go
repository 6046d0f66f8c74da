package reorg

import (
	"time"

	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reorgChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorgguard_reorg_checks_total",
			Help: "Total number of reorg checks by outcome",
		},
		[]string{"outcome"},
	)

	reorgsDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reorgguard_reorgs_detected_total",
			Help: "Total number of blockchain reorganizations detected",
		},
	)

	reorgDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reorgguard_reorg_depth_blocks",
			Help:    "Distance between the watermark and the rollback height",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	reorgLastDetected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_reorg_last_detected_timestamp",
			Help: "Unix timestamp of last reorg detection",
		},
	)

	reorgLastCheck = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_reorg_last_check_timestamp",
			Help: "Unix timestamp of the last reorg check",
		},
	)

	candidatesScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reorgguard_reorg_candidates_scanned",
			Help:    "Number of stored blocks compared with the node per check",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
		},
	)

	checkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reorgguard_reorg_check_duration_seconds",
			Help:    "Duration of reorg checks",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// outcome returns the label for a finished check.
func outcome(verdict reorg.Verdict, err error) string {
	switch {
	case err != nil:
		return reorg.Kind(err)
	case verdict.Reorg:
		return "reorg"
	default:
		return "no_reorg"
	}
}

func reorgCheckLog(watermark uint64, verdict reorg.Verdict, scanned int, err error, duration time.Duration) {
	now := float64(time.Now().UTC().Unix())

	reorgChecks.WithLabelValues(outcome(verdict, err)).Inc()
	reorgLastCheck.Set(now)
	candidatesScanned.Observe(float64(scanned))
	checkDuration.Observe(duration.Seconds())

	if err != nil || !verdict.Reorg {
		return
	}

	reorgsDetected.Inc()
	reorgLastDetected.Set(now)
	if verdict.RollbackTo <= watermark {
		reorgDepth.Observe(float64(watermark - verdict.RollbackTo))
	}
}
