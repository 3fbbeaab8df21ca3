// Package slo tracks service level objectives for the content pipeline.
// The gauges are fed by the task runner after each run and by the
// generation metrics recorder after each call, so dashboards can compare
// observed reliability against the targets.
package slo

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets for the pipeline.
const (
	// TaskSuccessSLO defines the target success ratio for scheduled task
	// runs (99% = at most ~7 failed runs per month at daily cadence).
	TaskSuccessSLO = 0.99

	// GenerationSuccessSLO defines the target success ratio for
	// individual content generation calls.
	GenerationSuccessSLO = 0.95

	// FreshnessSLO defines the maximum acceptable age in hours of the
	// newest published content piece (daily publishing plus slack).
	FreshnessSLO = 36.0
)

var (
	// TaskSuccessRatio tracks the observed success ratio of task runs
	// (0-1) since process start.
	TaskSuccessRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_task_success_ratio",
			Help: "Observed task run success ratio (0-1), target: 0.99",
		},
	)

	// GenerationSuccessRatio tracks the observed success ratio of
	// generation calls (0-1) since process start.
	GenerationSuccessRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_generation_success_ratio",
			Help: "Observed content generation success ratio (0-1), target: 0.95",
		},
	)

	// ContentFreshnessHours tracks the age in hours of the newest
	// generated content piece.
	ContentFreshnessHours = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_content_freshness_hours",
			Help: "Age in hours of the newest generated content, target: under 36",
		},
	)
)

// UpdateTaskSuccessRatio records the observed task run success ratio.
func UpdateTaskSuccessRatio(ratio float64) {
	TaskSuccessRatio.Set(ratio)
}

// UpdateGenerationSuccessRatio records the observed generation success ratio.
func UpdateGenerationSuccessRatio(ratio float64) {
	GenerationSuccessRatio.Set(ratio)
}

var (
	generationMu     sync.Mutex
	generationTotal  int64
	generationFailed int64
)

// RecordGenerationOutcome folds one generation call into the observed
// success ratio gauge. Counters reset with the process, matching the
// task success ratio semantics.
func RecordGenerationOutcome(success bool) {
	generationMu.Lock()
	defer generationMu.Unlock()
	generationTotal++
	if !success {
		generationFailed++
	}
	UpdateGenerationSuccessRatio(float64(generationTotal-generationFailed) / float64(generationTotal))
}

// UpdateContentFreshness records the age of the newest content piece.
func UpdateContentFreshness(hours float64) {
	ContentFreshnessHours.Set(hours)
}
