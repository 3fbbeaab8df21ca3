package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"contentforge/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the scheduler. It embeds
// the standard ConfigMetrics for configuration monitoring and adds
// counters for scheduled pipeline runs.
//
// Worker-specific metrics:
//   - worker_scheduled_runs_total{task,status}: runs by task and outcome
//   - worker_scheduled_run_duration_seconds: run duration histogram
//   - worker_pieces_generated_total: content pieces produced by scheduled runs
//   - worker_last_success_timestamp: Unix time of the last successful run
type WorkerMetrics struct {
	*config.ConfigMetrics

	// ScheduledRunsTotal counts scheduled runs.
	// Labels: task (daily_content, seo_audit, product_optimization),
	// status (started, success, failure).
	ScheduledRunsTotal *prometheus.CounterVec

	// ScheduledRunDurationSeconds measures run duration.
	// Buckets cover seconds through a half hour; generation-heavy runs
	// sit in the minutes range.
	ScheduledRunDurationSeconds prometheus.Histogram

	// PiecesGeneratedTotal counts content pieces produced across all
	// scheduled runs.
	PiecesGeneratedTotal prometheus.Counter

	// LastSuccessTimestamp is the Unix time of the last successful run.
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates the scheduler metrics. Registration with the
// default registry happens automatically via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		ScheduledRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_scheduled_runs_total",
			Help: "Total number of scheduled pipeline runs by task and status",
		}, []string{"task", "status"}),

		ScheduledRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_scheduled_run_duration_seconds",
			Help:    "Duration of scheduled pipeline runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		PiecesGeneratedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_pieces_generated_total",
			Help: "Total number of content pieces produced by scheduled runs",
		}),

		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled run",
		}),
	}
}

// MustRegister is a no-op kept for the conventional initialization shape;
// promauto already registered everything in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordRun increments the run counter for a task and status.
// Status is "started", "success", or "failure".
func (m *WorkerMetrics) RecordRun(task, status string) {
	m.ScheduledRunsTotal.WithLabelValues(task, status).Inc()
}

// RecordRunDuration observes one run's duration in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.ScheduledRunDurationSeconds.Observe(seconds)
}

// RecordPiecesGenerated adds produced content pieces to the total.
func (m *WorkerMetrics) RecordPiecesGenerated(count int) {
	m.PiecesGeneratedTotal.Add(float64(count))
}

// RecordLastSuccess marks the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
