package postgres

import (
	"context"
	"fmt"
	"time"

	"contentforge/internal/domain/entity"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/repository"
)

type TaskLogRepo struct {
	db Querier
}

func NewTaskLogRepo(db Querier) repository.TaskLogRepository {
	return &TaskLogRepo{db: db}
}

func (repo *TaskLogRepo) Record(ctx context.Context, run *entity.TaskRun) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_task_run", time.Since(start)) }()

	const query = `
INSERT INTO task_execution_log (task_name, status, details, error_message, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		run.Name, string(run.Status), run.Details, run.ErrorMessage,
		run.StartedAt, run.FinishedAt,
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("Record: %w", err)
	}
	return nil
}

func (repo *TaskLogRepo) RecentRuns(ctx context.Context, limit int) ([]*entity.TaskRun, error) {
	const query = `
SELECT id, task_name, status, details, error_message, started_at, finished_at
FROM task_execution_log
ORDER BY started_at DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("RecentRuns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := make([]*entity.TaskRun, 0, limit)
	for rows.Next() {
		var run entity.TaskRun
		if err := rows.Scan(&run.ID, &run.Name, &run.Status, &run.Details,
			&run.ErrorMessage, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("RecentRuns: Scan: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func (repo *TaskLogRepo) FailuresSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `
SELECT COUNT(*)
FROM task_execution_log
WHERE status = 'failure' AND started_at >= $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("FailuresSince: %w", err)
	}
	return count, nil
}

type APIUsageRepo struct {
	db Querier
}

func NewAPIUsageRepo(db Querier) repository.APIUsageRepository {
	return &APIUsageRepo{db: db}
}

func (repo *APIUsageRepo) Record(ctx context.Context, usage *entity.APIUsage) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_api_usage", time.Since(start)) }()

	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = time.Now()
	}

	const query = `
INSERT INTO api_usage (provider, model, operation, input_tokens, output_tokens, estimated_cost, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		usage.Provider, usage.Model, usage.Operation,
		usage.InputTokens, usage.OutputTokens, usage.EstimatedCost, usage.CreatedAt,
	).Scan(&usage.ID)
	if err != nil {
		return fmt.Errorf("Record: %w", err)
	}
	return nil
}

func (repo *APIUsageRepo) SummarizeSince(ctx context.Context, since time.Time) ([]*repository.APIUsageSummary, error) {
	const query = `
SELECT provider, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(SUM(estimated_cost), 0)
FROM api_usage
WHERE created_at >= $1
GROUP BY provider
ORDER BY provider`
	rows, err := repo.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("SummarizeSince: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]*repository.APIUsageSummary, 0, 2)
	for rows.Next() {
		var s repository.APIUsageSummary
		if err := rows.Scan(&s.Provider, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.EstimatedCost); err != nil {
			return nil, fmt.Errorf("SummarizeSince: Scan: %w", err)
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}
