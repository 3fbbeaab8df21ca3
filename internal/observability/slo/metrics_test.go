package slo

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUpdateTaskSuccessRatio(t *testing.T) {
	UpdateTaskSuccessRatio(0.98)
	assert.InDelta(t, 0.98, testutil.ToFloat64(TaskSuccessRatio), 1e-9)

	UpdateTaskSuccessRatio(1.0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(TaskSuccessRatio), 1e-9)
}

func TestUpdateGenerationSuccessRatio(t *testing.T) {
	UpdateGenerationSuccessRatio(0.9)
	assert.InDelta(t, 0.9, testutil.ToFloat64(GenerationSuccessRatio), 1e-9)
}

func TestUpdateContentFreshness(t *testing.T) {
	UpdateContentFreshness(12.5)
	assert.InDelta(t, 12.5, testutil.ToFloat64(ContentFreshnessHours), 1e-9)
}

func TestRecordGenerationOutcome(t *testing.T) {
	// Counters are process-wide; start from a known point.
	generationMu.Lock()
	generationTotal = 0
	generationFailed = 0
	generationMu.Unlock()

	RecordGenerationOutcome(true)
	RecordGenerationOutcome(true)
	RecordGenerationOutcome(true)
	RecordGenerationOutcome(false)

	assert.InDelta(t, 0.75, testutil.ToFloat64(GenerationSuccessRatio), 1e-9)
}

func TestTargetsAreSane(t *testing.T) {
	assert.Greater(t, TaskSuccessSLO, 0.0)
	assert.LessOrEqual(t, TaskSuccessSLO, 1.0)
	assert.Greater(t, GenerationSuccessSLO, 0.0)
	assert.LessOrEqual(t, GenerationSuccessSLO, 1.0)
	assert.Greater(t, FreshnessSLO, 24.0)
}
