// Package metrics provides Prometheus metrics for the podium leaderboard service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Submission outcomes.
	submitsAccepted prometheus.Counter
	submitsRejected prometheus.Counter

	// Durable-state health.
	persistFailures  prometheus.Counter
	snapshotsWritten prometheus.Counter
	snapshotFailures prometheus.Counter
	recoveries       prometheus.Counter
	recordCount      prometheus.Gauge
	lastSnapshotUnix prometheus.Gauge

	// Remote sync.
	syncAttempts  prometheus.Counter
	syncSuccesses prometheus.Counter
	syncFailures  prometheus.Counter
	syncFallbacks prometheus.Counter
	watcherErrors prometheus.Counter

	// HTTP surface.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager instance backed by a private registry so the default Go
// collectors do not leak into the scrape output.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.submitsAccepted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "submits_accepted_total",
		Help:      "Score submissions applied to the collection.",
	})
	m.submitsRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "submits_rejected_total",
		Help:      "Score submissions rejected by validation.",
	})
	m.persistFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "persist_failures_total",
		Help:      "Primary file writes that failed after an accepted submission.",
	})
	m.snapshotsWritten = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "backup",
		Name:      "snapshots_written_total",
		Help:      "Backup snapshots completed without error.",
	})
	m.snapshotFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "backup",
		Name:      "snapshot_failures_total",
		Help:      "Backup snapshots that failed at least one write.",
	})
	m.recoveries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "backup",
		Name:      "recoveries_total",
		Help:      "Reads served from a recovered backup instead of the primary file.",
	})
	m.recordCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "records",
		Help:      "Records currently held in the collection.",
	})
	m.lastSnapshotUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "backup",
		Name:      "last_snapshot_unix",
		Help:      "Unix time of the last successful backup snapshot.",
	})
	m.syncAttempts = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "attempts_total",
		Help:      "Remote sync attempts.",
	})
	m.syncSuccesses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "successes_total",
		Help:      "Remote sync attempts that mirrored the file.",
	})
	m.syncFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "failures_total",
		Help:      "Remote sync attempts that exhausted API and CLI paths.",
	})
	m.syncFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "cli_fallbacks_total",
		Help:      "Remote syncs completed through the git CLI fallback.",
	})
	m.watcherErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sync",
		Name:      "watcher_errors_total",
		Help:      "Change watcher loop iterations that failed.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the private registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler returns an http.Handler serving the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level recording helpers delegating to the global manager.

func RecordSubmitAccepted() { globalManager.submitsAccepted.Inc() }
func RecordSubmitRejected() { globalManager.submitsRejected.Inc() }
func RecordPersistFailure() { globalManager.persistFailures.Inc() }
func RecordRecovery()       { globalManager.recoveries.Inc() }
func RecordSyncAttempt()    { globalManager.syncAttempts.Inc() }
func RecordSyncSuccess()    { globalManager.syncSuccesses.Inc() }
func RecordSyncFailure()    { globalManager.syncFailures.Inc() }
func RecordSyncFallback()   { globalManager.syncFallbacks.Inc() }
func RecordWatcherError()   { globalManager.watcherErrors.Inc() }

// RecordSnapshot marks a completed backup snapshot at the given unix time.
func RecordSnapshot(unix int64) {
	globalManager.snapshotsWritten.Inc()
	globalManager.lastSnapshotUnix.Set(float64(unix))
}

// RecordSnapshotFailure marks a backup snapshot with at least one failed write.
func RecordSnapshotFailure() { globalManager.snapshotFailures.Inc() }

// UpdateRecordCount sets the current collection size.
func UpdateRecordCount(n int) { globalManager.recordCount.Set(float64(n)) }

// RecordHTTPRequest counts one request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}
