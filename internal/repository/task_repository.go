package repository

import (
	"context"
	"time"

	"contentforge/internal/domain/entity"
)

// APIUsageSummary aggregates token consumption per provider over a window.
type APIUsageSummary struct {
	Provider      string
	Calls         int64
	InputTokens   int64
	OutputTokens  int64
	EstimatedCost float64
}

// TaskLogRepository records scheduled task executions for auditing and the
// operations dashboard.
type TaskLogRepository interface {
	Record(ctx context.Context, run *entity.TaskRun) error
	// RecentRuns returns the latest runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]*entity.TaskRun, error)
	// FailuresSince counts failed runs after the given time, used for alerting.
	FailuresSince(ctx context.Context, since time.Time) (int64, error)
}

// APIUsageRepository records AI API consumption for cost tracking.
type APIUsageRepository interface {
	Record(ctx context.Context, usage *entity.APIUsage) error
	// SummarizeSince aggregates usage per provider after the given time.
	SummarizeSince(ctx context.Context, since time.Time) ([]*APIUsageSummary, error)
}
