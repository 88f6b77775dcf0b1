package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(syncTicksTotal, syncStatusFailures, syncJobsReconciled, syncTickLatencyMs) }

var syncTicksTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "sync_ticks_total",
		Help: "Total number of reconciliation ticks executed.",
	},
)

var syncStatusFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "sync_status_failures_total",
		Help: "Status requests that soft-failed during reconciliation.",
	},
)

var syncJobsReconciled = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sync_jobs_reconciled_total",
		Help: "Jobs whose status was merged from the backend, labeled by resulting status.",
	},
	[]string{"status"},
)

var syncTickLatencyMs = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "sync_tick_latency_ms",
		Help:    "Reconciliation tick latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
)

func IncSyncTick()          { syncTicksTotal.Inc() }
func IncSyncStatusFailure() { syncStatusFailures.Inc() }

func IncJobReconciled(status string) {
	syncJobsReconciled.WithLabelValues(norm(status)).Inc()
}

func ObserveSyncTick(latencyMs int64) {
	syncTickLatencyMs.Observe(float64(latencyMs))
}
