// Package task runs scheduled pipeline tasks with uniform logging,
// tracing, run records, and failure alerts.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"contentforge/internal/domain/entity"
	"contentforge/internal/observability/logging"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/observability/slo"
	"contentforge/internal/observability/tracing"
	"contentforge/internal/repository"
)

// Func is one unit of scheduled work. The returned details string is
// stored with the run record for the operations dashboard.
type Func func(ctx context.Context) (details string, err error)

// Runner executes tasks and records their outcomes. The task log
// repository and alerter may be nil; outcomes are then only logged.
type Runner struct {
	logs   repository.TaskLogRepository
	alerts *Alerter
	tracer trace.Tracer
	now    func() time.Time

	mu     sync.Mutex
	total  int64
	failed int64
}

// NewRunner wires a task runner.
func NewRunner(logs repository.TaskLogRepository, alerts *Alerter) *Runner {
	return &Runner{
		logs:   logs,
		alerts: alerts,
		tracer: tracing.GetTracer(),
		now:    time.Now,
	}
}

// Run executes fn under the given task name. The task's error is
// returned as-is; recording failures never mask it.
func (r *Runner) Run(ctx context.Context, name string, fn Func) error {
	ctx, span := r.tracer.Start(ctx, "task."+name)
	defer span.End()

	logger := logging.WithTask(logging.FromContext(ctx), name)
	logger.InfoContext(ctx, "task started")

	started := r.now()
	details, err := fn(ctx)
	finished := r.now()
	duration := finished.Sub(started)

	run := &entity.TaskRun{
		Name:       name,
		Details:    details,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if err != nil {
		run.Status = entity.TaskStatusFailure
		run.ErrorMessage = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "task failed",
			slog.Any("error", err),
			slog.Duration("duration", duration))
		r.alert(ctx, fmt.Sprintf("Task %s failed: %v", name, err))
	} else {
		run.Status = entity.TaskStatusSuccess
		logger.InfoContext(ctx, "task finished",
			slog.String("details", details),
			slog.Duration("duration", duration))
	}

	metrics.RecordTaskRun(name, err == nil, duration)
	r.recordOutcome(err == nil)

	if r.logs != nil {
		if recErr := r.logs.Record(ctx, run); recErr != nil {
			logger.WarnContext(ctx, "task log write failed", slog.Any("error", recErr))
		}
	}
	return err
}

// Alert sends an operational alert outside of a task failure, such as a
// performance threshold breach.
func (r *Runner) Alert(ctx context.Context, message string) {
	r.alert(ctx, message)
}

func (r *Runner) alert(ctx context.Context, message string) {
	if r.alerts == nil {
		return
	}
	if err := r.alerts.Send(message); err != nil {
		slog.WarnContext(ctx, "alert delivery failed",
			slog.String("message", message),
			slog.Any("error", err))
	}
}

func (r *Runner) recordOutcome(success bool) {
	r.mu.Lock()
	r.total++
	if !success {
		r.failed++
	}
	total, failed := r.total, r.failed
	r.mu.Unlock()

	slo.UpdateTaskSuccessRatio(float64(total-failed) / float64(total))
}
