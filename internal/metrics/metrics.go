package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transfer engine counters and histograms. Admission and attach outcomes
// are partitioned so conflict/not-found rates are visible separately from
// infrastructure failures.

var (
	// Admission
	AdmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "transfer",
		Name:      "admissions_total",
		Help:      "Total transfer admissions committed",
	}, []string{"batched"})

	AdmissionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "transfer",
		Name:      "admission_errors_total",
		Help:      "Total transfer admissions aborted and rolled back",
	}, []string{"batched"})

	AdmissionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mercury",
		Subsystem: "transfer",
		Name:      "admission_duration_seconds",
		Help:      "Admission transaction duration",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	// Duplicate detector
	DuplicateChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "transfer",
		Name:      "duplicate_checks_total",
		Help:      "Total duplicate detector queries",
	}, []string{"result"})

	// Message updater
	MessageAttachTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "transfer",
		Name:      "message_attach_total",
		Help:      "Total encrypted message attach attempts",
	}, []string{"outcome"})

	// Batch coordinator
	BatchTimesMinted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "batch",
		Name:      "times_minted_total",
		Help:      "Total batch commencement times minted (first joiner wins)",
	})

	BatchJoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "batch",
		Name:      "joins_total",
		Help:      "Total batch join-or-get operations",
	})

	// Event stream
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Total transfer events published to the stream",
	}, []string{"type"})

	EventPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mercury",
		Subsystem: "events",
		Name:      "publish_errors_total",
		Help:      "Total transfer event publish failures",
	})

	// DB pool
	DBPoolOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mercury",
		Subsystem: "db",
		Name:      "pool_open_connections",
		Help:      "Open connections in the database pool",
	})

	DBPoolInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mercury",
		Subsystem: "db",
		Name:      "pool_in_use_connections",
		Help:      "Connections currently in use",
	})

	DBPoolIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mercury",
		Subsystem: "db",
		Name:      "pool_idle_connections",
		Help:      "Idle connections in the database pool",
	})

	DBPoolWaitCount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mercury",
		Subsystem: "db",
		Name:      "pool_wait_count_total",
		Help:      "Total number of connection waits",
	})

	DBPoolWaitDurationSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mercury",
		Subsystem: "db",
		Name:      "pool_wait_duration_seconds",
		Help:      "Cumulative time blocked waiting for a connection",
	})
)
