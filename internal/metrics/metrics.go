package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	dbQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorgguard_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"table", "operation"},
	)

	dbQueryTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reorgguard_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table", "operation"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorgguard_db_errors_total",
			Help: "Total number of database errors",
		},
		[]string{"table", "operation"},
	)

	// Block history metrics
	storedBlocks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_stored_blocks",
			Help: "Number of block records in the history the last check loaded",
		},
	)

	watermark = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_watermark",
			Help: "Height up to which the consumer has processed blocks",
		},
	)

	nodeHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_node_height",
			Help: "Head height last reported by the node",
		},
	)

	// System metrics
	uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorgguard_errors_total",
			Help: "Total number of errors by component and kind",
		},
		[]string{"component", "kind"},
	)

	componentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reorgguard_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reorgguard_goroutines",
			Help: "Number of active goroutines",
		},
	)

	memoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reorgguard_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func DBQueryInc(table, operation string) {
	dbQueries.WithLabelValues(table, operation).Inc()
}

func DBQueryDuration(table, operation string, duration time.Duration) {
	dbQueryTime.WithLabelValues(table, operation).Observe(duration.Seconds())
}

func DBErrorsInc(table, operation string) {
	dbErrors.WithLabelValues(table, operation).Inc()
}

func StoredBlocksSet(count int) {
	storedBlocks.Set(float64(count))
}

func WatermarkSet(height uint64) {
	watermark.Set(float64(height))
}

func NodeHeightSet(height uint64) {
	nodeHeight.Set(float64(height))
}

func ErrorsInc(component, kind string) {
	errorsTotal.WithLabelValues(component, kind).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	componentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	uptime.Set(time.Since(startTime).Seconds())
	goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	memoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	memoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	memoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
