package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Lifecycle metrics
	BookingsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_bookings_total",
			Help: "Number of bookings per lifecycle bucket",
		},
		[]string{"bucket"},
	)

	LifecycleTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_lifecycle_transitions_total",
			Help: "Total lifecycle transitions by source and destination bucket",
		},
		[]string{"from", "to"},
	)

	SchedulerTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_scheduler_ticks_total",
			Help: "Total scheduler ticks executed",
		},
	)

	// Reconciliation metrics
	ReconcileCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_reconcile_cycles_total",
			Help: "Total reconciliation cycles completed",
		},
	)

	ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_reconcile_duration_seconds",
			Help:    "Reconciliation cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Store metrics
	RemoteErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_remote_errors_total",
			Help: "Total remote store operation failures",
		},
	)

	SnapshotSaveFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_snapshot_save_failures_total",
			Help: "Total best-effort snapshot saves that failed",
		},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(BookingsTotal)
	prometheus.MustRegister(LifecycleTransitionsTotal)
	prometheus.MustRegister(SchedulerTicksTotal)
	prometheus.MustRegister(ReconcileCyclesTotal)
	prometheus.MustRegister(ReconcileDuration)
	prometheus.MustRegister(RemoteErrorsTotal)
	prometheus.MustRegister(SnapshotSaveFailuresTotal)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures elapsed time for histogram observation
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time in the given histogram
func (t *Timer) ObserveDuration(h prometheus.Histogram) {
	h.Observe(t.Duration().Seconds())
}

// ObserveDurationVec records the elapsed time in a labeled histogram
func (t *Timer) ObserveDurationVec(h *prometheus.HistogramVec, labels ...string) {
	h.WithLabelValues(labels...).Observe(t.Duration().Seconds())
}
