// Package main runs the marketing automation worker: scheduled content
// generation, search performance audits, and catalog optimization.
// Usage: contentforge-worker [--task daily_content|seo_audit|product_optimization|strategy|all]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"contentforge/internal/config"
	pgRepo "contentforge/internal/infra/adapter/persistence/postgres"
	"contentforge/internal/infra/db"
	"contentforge/internal/infra/generator"
	"contentforge/internal/infra/serp"
	"contentforge/internal/infra/store"
	workerPkg "contentforge/internal/infra/worker"
	"contentforge/internal/observability/logging"
	"contentforge/internal/observability/tracing"
	"contentforge/internal/repository"
	"contentforge/internal/resilience/circuitbreaker"
	contentUC "contentforge/internal/usecase/content"
	optimizerUC "contentforge/internal/usecase/optimizer"
	seoUC "contentforge/internal/usecase/seo"
	"contentforge/internal/usecase/task"
)

func main() {
	var manualTask string
	flag.StringVar(&manualTask, "task", "", "Run one task and exit: daily_content, seo_audit, product_optimization, strategy, or all")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Warn("missing credentials", slog.Any("missing", missing))
	}

	shutdownTracing := tracing.Setup("contentforge")
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database := openDatabase(logger, cfg)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()

	p := buildPipeline(logger, cfg, database, workerMetrics)

	if manualTask != "" {
		runManualTask(logger, p, manualTask)
		return
	}

	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("content_schedule", workerConfig.ContentSchedule),
		slog.String("audit_schedule", workerConfig.AuditSchedule),
		slog.String("optimize_schedule", workerConfig.OptimizeSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("task_timeout", workerConfig.TaskTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	startMetricsServer(ctx, logger)
	if database != nil {
		go reportPoolStats(ctx, database)
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startScheduler(ctx, logger, p, workerConfig, healthServer)
}

// openDatabase connects to PostgreSQL and applies migrations. A missing
// or unreachable database degrades the worker to file-only persistence
// instead of stopping it.
func openDatabase(logger *slog.Logger, cfg *config.Config) *sql.DB {
	database, err := db.Open(cfg.Database.DSN())
	if err != nil {
		logger.Warn("database unavailable, running file-only", slog.Any("error", err))
		return nil
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("migrations failed", slog.Any("error", err))
		if closeErr := database.Close(); closeErr != nil {
			logger.Error("failed to close database", slog.Any("error", closeErr))
		}
		os.Exit(1)
	}
	return database
}

// reportPoolStats publishes connection pool gauges until shutdown.
func reportPoolStats(ctx context.Context, database *sql.DB) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.ReportPoolStats(database)
		}
	}
}

// buildPipeline wires the usecase services behind the scheduled tasks.
func buildPipeline(logger *slog.Logger, cfg *config.Config, database *sql.DB, workerMetrics *workerPkg.WorkerMetrics) *pipeline {
	gen := createGenerator(logger, cfg)

	files := store.NewContentStore(cfg.Content.OutputPath)
	reports := store.NewReportStore(cfg.Content.ReportsPath)

	var (
		contentRepo repository.ContentRepository
		keywordRepo repository.KeywordRepository
		productRepo repository.ProductRepository
		taskLogRepo repository.TaskLogRepository
		usageRepo   repository.APIUsageRepository
	)
	if database != nil {
		// Repositories go through the circuit breaker so a struggling
		// database fails fast instead of stalling every scheduled task.
		querier := circuitbreaker.NewDBCircuitBreaker(database)
		contentRepo = pgRepo.NewContentRepo(querier)
		keywordRepo = pgRepo.NewKeywordRepo(querier)
		productRepo = pgRepo.NewProductRepo(querier)
		taskLogRepo = pgRepo.NewTaskLogRepo(querier)
		usageRepo = pgRepo.NewAPIUsageRepo(querier)
	}

	contentSvc := contentUC.NewService(gen, contentRepo, usageRepo, files, cfg.Brand, cfg.Content)
	seoSvc := seoUC.NewService(serp.NewClient(cfg.SEO), keywordRepo, reports, cfg.Brand)
	optimizerSvc := optimizerUC.NewService(contentSvc, productRepo, cfg.Brand)

	runner := task.NewRunner(taskLogRepo, task.NewAlerter(cfg.Content.AlertsPath))

	return &pipeline{
		cfg:           cfg,
		content:       contentSvc,
		seo:           seoSvc,
		optimizer:     optimizerSvc,
		files:         files,
		reports:       reports,
		runner:        runner,
		workerMetrics: workerMetrics,
	}
}

// createGenerator selects the generation provider based on the
// GENERATOR_PROVIDER environment variable (default: claude).
func createGenerator(logger *slog.Logger, cfg *config.Config) generator.Generator {
	provider := os.Getenv("GENERATOR_PROVIDER")
	if provider == "" {
		provider = "claude"
	}

	switch provider {
	case "claude":
		gen, err := generator.NewClaude(cfg.Claude)
		if err != nil {
			logger.Error("failed to create Claude generator", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using Claude for content generation", slog.String("model", cfg.Claude.Model))
		return gen
	case "openai":
		gen, err := generator.NewOpenAI(cfg.OpenAI)
		if err != nil {
			logger.Error("failed to create OpenAI generator", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using OpenAI for content generation", slog.String("model", cfg.OpenAI.Model))
		return gen
	default:
		logger.Error("invalid GENERATOR_PROVIDER",
			slog.String("provider", provider),
			slog.String("expected", "claude or openai"))
		os.Exit(1)
		return nil
	}
}

// runManualTask executes one named task (or all of them) and exits.
func runManualTask(logger *slog.Logger, p *pipeline, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	tasks := map[string]task.Func{
		taskDailyContent:        p.runDailyContent,
		taskSEOAudit:            p.runSEOAudit,
		taskProductOptimization: p.runProductOptimization,
		taskStrategy:            p.runStrategy,
	}

	if name == "all" {
		failed := false
		for _, n := range []string{taskDailyContent, taskSEOAudit, taskProductOptimization, taskStrategy} {
			if err := p.runner.Run(ctx, n, tasks[n]); err != nil {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		return
	}

	fn, ok := tasks[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: Unknown task '%s'\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Available tasks: daily_content, seo_audit, product_optimization, strategy, all")
		os.Exit(1)
	}
	if err := p.runner.Run(ctx, name, fn); err != nil {
		logger.Error("task failed", slog.String("task", name), slog.Any("error", err))
		os.Exit(1)
	}
}

// startScheduler registers the cron jobs and blocks until shutdown.
func startScheduler(ctx context.Context, logger *slog.Logger, p *pipeline, cfg *workerPkg.WorkerConfig, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	jobs := []struct {
		schedule string
		name     string
		fn       task.Func
	}{
		{cfg.ContentSchedule, taskDailyContent, p.runDailyContent},
		{cfg.AuditSchedule, taskSEOAudit, p.runSEOAudit},
		{cfg.OptimizeSchedule, taskProductOptimization, p.runProductOptimization},
	}
	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.schedule, func() {
			p.runScheduled(job.name, job.fn, cfg.TaskTimeout)
		}); err != nil {
			logger.Error("failed to add cron job",
				slog.String("task", job.name),
				slog.Any("error", err))
			os.Exit(1)
		}
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("content_schedule", cfg.ContentSchedule),
		slog.String("audit_schedule", cfg.AuditSchedule),
		slog.String("optimize_schedule", cfg.OptimizeSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown requested, waiting for running jobs")
	healthServer.SetReady(false)
	<-c.Stop().Done()
	logger.Info("worker stopped")
}
