package entity

import "time"

// TaskStatus is the outcome of a scheduled pipeline task run.
type TaskStatus string

const (
	TaskStatusSuccess TaskStatus = "success"
	TaskStatusFailure TaskStatus = "failure"
)

// TaskRun records one execution of a scheduled pipeline task.
type TaskRun struct {
	ID           int64
	Name         string
	Status       TaskStatus
	Details      string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns the wall-clock time the run took.
func (r TaskRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// APIUsage records token consumption and estimated cost of one AI API call,
// used for budget tracking and the usage dashboard.
type APIUsage struct {
	ID            int64
	Provider      string
	Model         string
	Operation     string
	InputTokens   int64
	OutputTokens  int64
	EstimatedCost float64
	CreatedAt     time.Time
}
