// Package worker holds the scheduler-side infrastructure: its
// configuration, health endpoints, and Prometheus metrics.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"contentforge/internal/pkg/config"
)

// WorkerConfig controls the scheduler: when each pipeline task fires, the
// timezone the schedules are evaluated in, per-run deadlines, and the
// health endpoint port.
//
// All fields have defaults and validation; LoadConfigFromEnv never fails,
// it falls back to defaults on invalid values.
type WorkerConfig struct {
	// ContentSchedule fires the daily content generation task.
	// Default: "0 2 * * *" (every day at 02:00)
	ContentSchedule string

	// AuditSchedule fires the weekly search performance audit.
	// Default: "0 9 * * 1" (Mondays at 09:00)
	AuditSchedule string

	// OptimizeSchedule fires the monthly catalog optimization.
	// Default: "0 3 1 * *" (the 1st of each month at 03:00)
	OptimizeSchedule string

	// Timezone is the IANA timezone the schedules are evaluated in.
	// Default: "UTC"
	Timezone string

	// TaskTimeout is the deadline for one scheduled task run.
	// Default: 30 minutes
	TaskTimeout time.Duration

	// HealthPort serves the liveness and readiness probes.
	// Range: 1024-65535. Default: 9091
	HealthPort int
}

// DefaultConfig returns the production schedule: daily content at 02:00,
// the audit on Monday mornings, and catalog optimization on the 1st.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		ContentSchedule:  "0 2 * * *",
		AuditSchedule:    "0 9 * * 1",
		OptimizeSchedule: "0 3 1 * *",
		Timezone:         "UTC",
		TaskTimeout:      30 * time.Minute,
		HealthPort:       9091,
	}
}

// Validate checks every field and returns all violations together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.ContentSchedule); err != nil {
		errors = append(errors, fmt.Errorf("content schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.AuditSchedule); err != nil {
		errors = append(errors, fmt.Errorf("audit schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.OptimizeSchedule); err != nil {
		errors = append(errors, fmt.Errorf("optimize schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.TaskTimeout); err != nil {
		errors = append(errors, fmt.Errorf("task timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration with a fail-open
// strategy: each field starts from its default, invalid environment
// values fall back to the default with a warning and a metrics bump, and
// the returned configuration is always valid.
//
// Environment variables:
//   - CONTENT_SCHEDULE: cron expression (default "0 2 * * *")
//   - SEO_AUDIT_SCHEDULE: cron expression (default "0 9 * * 1")
//   - OPTIMIZE_SCHEDULE: cron expression (default "0 3 1 * *")
//   - WORKER_TIMEZONE: IANA timezone (default "UTC")
//   - TASK_TIMEOUT: duration, 1m-4h (default 30m)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	applyString := func(field, envKey string, target *string) {
		result := config.LoadEnvWithFallback(envKey, *target, config.ValidateCronSchedule)
		*target = result.Value.(string)
		if result.FallbackApplied {
			fallbackApplied = true
			metrics.RecordValidationError(field)
			metrics.RecordFallback(field, "default")
			for _, warning := range result.Warnings {
				logger.Warn("Configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
	}

	applyString("content_schedule", "CONTENT_SCHEDULE", &cfg.ContentSchedule)
	applyString("audit_schedule", "SEO_AUDIT_SCHEDULE", &cfg.AuditSchedule)
	applyString("optimize_schedule", "OPTIMIZE_SCHEDULE", &cfg.OptimizeSchedule)

	result := config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvDuration("TASK_TIMEOUT", cfg.TaskTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.TaskTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("task_timeout")
		metrics.RecordFallback("task_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "task_timeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "health_port"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	// Fail-open: the returned configuration is always usable.
	return &cfg, nil
}
