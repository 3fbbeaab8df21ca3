// Package main provides a CLI command for batch content generation.
// Usage: contentforge-batch [--plan plan.yaml] [--concurrency N] [--output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"contentforge/internal/config"
	"contentforge/internal/infra/generator"
	"contentforge/internal/infra/store"
	"contentforge/internal/usecase/content"
)

func main() {
	var (
		planPath     string
		concurrency  int
		outputFormat string
	)

	flag.StringVar(&planPath, "plan", "", "Path to a YAML batch plan (default: built-in starter plan)")
	flag.IntVar(&concurrency, "concurrency", 2, "Maximum generations in flight")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	plan := content.StarterPlan()
	if planPath != "" {
		plan, err = content.LoadPlan(planPath)
		if err != nil {
			logger.Error("failed to load plan", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Failed to load plan: %v\n", err)
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: contentforge-batch [--plan plan.yaml] [--concurrency N] [--output json]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Examples:")
			fmt.Fprintln(os.Stderr, "  contentforge-batch")
			fmt.Fprintln(os.Stderr, "  contentforge-batch --plan content_plan.yaml --concurrency 3")
			fmt.Fprintln(os.Stderr, "  contentforge-batch --output json")
			os.Exit(1)
		}
	}
	if len(plan) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Plan is empty")
		os.Exit(1)
	}

	gen, err := generator.NewClaude(cfg.Claude)
	if err != nil {
		logger.Error("failed to create generator", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to create generator: %v\n", err)
		os.Exit(1)
	}

	files := store.NewContentStore(cfg.Content.OutputPath)
	reports := store.NewReportStore(cfg.Content.ReportsPath)
	svc := content.NewService(gen, nil, nil, files, cfg.Brand, cfg.Content)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	logger.Info("Running batch plan",
		slog.Int("items", len(plan)),
		slog.Int("concurrency", concurrency))

	results := svc.GenerateBatch(ctx, plan, concurrency)
	report := content.BuildBatchReport(results)

	reportPath, err := reports.SaveJSON("batch_generation", report)
	if err != nil {
		logger.Error("failed to save batch report", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to save batch report: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		outputText(report, reportPath)
	}

	if report.Summary.Failed > 0 {
		os.Exit(1)
	}
}

// outputText prints the batch report in human-readable format.
func outputText(report content.BatchReport, reportPath string) {
	fmt.Printf("Batch complete: %d/%d succeeded (%s)\n\n",
		report.Summary.Successful, report.Summary.Total, report.Summary.SuccessRate)

	for i, r := range report.Results {
		fmt.Printf("%d. [%s] %s: %s\n", i+1, r.Status, r.Type, r.Topic)
		if r.FilePath != "" {
			fmt.Printf("   saved to %s\n", r.FilePath)
		}
		if r.Error != "" {
			fmt.Printf("   error: %s\n", r.Error)
		}
	}
	fmt.Printf("\nReport: %s\n", reportPath)
}

// initLogger initializes and returns a structured logger.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
