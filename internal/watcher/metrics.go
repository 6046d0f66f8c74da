package watcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorgguard_watcher_check_failures_total",
			Help: "Total number of failed watcher checks by kind",
		},
		[]string{"kind"},
	)

	consecutiveFailures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_watcher_consecutive_failures",
			Help: "Number of failed watcher checks since the last successful one",
		},
	)
)

func checkFailuresInc(kind string) {
	checkFailures.WithLabelValues(kind).Inc()
}

func consecutiveFailuresSet(count int) {
	consecutiveFailures.Set(float64(count))
}
