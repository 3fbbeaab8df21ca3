package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/adapter/persistence/postgres"
)

func TestTaskLogRepo_Record(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	started := time.Date(2026, 8, 20, 2, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO task_execution_log`)).
		WithArgs("daily_content", "success", "generated 4 pieces", "", started, started.Add(3*time.Minute)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	repo := postgres.NewTaskLogRepo(db)
	run := &entity.TaskRun{
		Name: "daily_content", Status: entity.TaskStatusSuccess,
		Details: "generated 4 pieces", StartedAt: started,
		FinishedAt: started.Add(3 * time.Minute),
	}
	if err := repo.Record(context.Background(), run); err != nil {
		t.Fatalf("Record err=%v", err)
	}
	if run.ID != 11 {
		t.Fatalf("Record did not set ID, got %d", run.ID)
	}
}

func TestTaskLogRepo_FailuresSince(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	since := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(`FROM task_execution_log`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	repo := postgres.NewTaskLogRepo(db)
	count, err := repo.FailuresSince(context.Background(), since)
	if err != nil || count != 2 {
		t.Fatalf("FailuresSince err=%v count=%d", err, count)
	}
}

func TestAPIUsageRepo_Record(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO api_usage`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))

	repo := postgres.NewAPIUsageRepo(db)
	usage := &entity.APIUsage{
		Provider: "claude", Model: "claude-sonnet-4-5", Operation: "blog_post",
		InputTokens: 900, OutputTokens: 1400, EstimatedCost: 0.023,
	}
	if err := repo.Record(context.Background(), usage); err != nil {
		t.Fatalf("Record err=%v", err)
	}
	if usage.ID != 31 {
		t.Fatalf("Record did not set ID, got %d", usage.ID)
	}
}

func TestAPIUsageRepo_SummarizeSince(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	since := time.Now().Add(-30 * 24 * time.Hour)
	mock.ExpectQuery(`FROM api_usage`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{
			"provider", "calls", "input_tokens", "output_tokens", "estimated_cost",
		}).
			AddRow("claude", int64(120), int64(95000), int64(210000), 4.31).
			AddRow("openai", int64(8), int64(5200), int64(9100), 0.44))

	repo := postgres.NewAPIUsageRepo(db)
	summaries, err := repo.SummarizeSince(context.Background(), since)
	if err != nil {
		t.Fatalf("SummarizeSince err=%v", err)
	}
	if len(summaries) != 2 || summaries[0].Provider != "claude" || summaries[0].Calls != 120 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}
