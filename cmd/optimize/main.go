// Package main provides a CLI command for optimizing storefront listings.
// Usage: contentforge-optimize [--csv path] [--import-csv path] [--output json]
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
	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/generator"
	"contentforge/internal/infra/store"
	"contentforge/internal/usecase/content"
	"contentforge/internal/usecase/optimizer"
)

func main() {
	var (
		csvPath      string
		importPath   string
		outputFormat string
	)

	flag.StringVar(&csvPath, "csv", "", "Path to the product export CSV (default: PRODUCTS_CSV)")
	flag.StringVar(&importPath, "import-csv", "", "Where to write the storefront import CSV (default: alongside the export)")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if csvPath == "" {
		csvPath = cfg.Content.ProductsCSV
	}
	if _, err := os.Stat(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Product export not found: %s\n", csvPath)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: contentforge-optimize [--csv path] [--import-csv path] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  contentforge-optimize")
		fmt.Fprintln(os.Stderr, "  contentforge-optimize --csv ./data/products_export.csv")
		fmt.Fprintln(os.Stderr, "  contentforge-optimize --csv export.csv --import-csv import.csv --output json")
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
	contentSvc := content.NewService(gen, nil, nil, files, cfg.Brand, cfg.Content)
	svc := optimizer.NewService(contentSvc, nil, cfg.Brand)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	logger.Info("Optimizing catalog", slog.String("csv", csvPath))

	results, err := svc.OptimizeCatalog(ctx, csvPath)
	if err != nil {
		logger.Error("catalog optimization failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Catalog optimization failed: %v\n", err)
		os.Exit(1)
	}

	reportPath, err := svc.SaveReport(reports, results)
	if err != nil {
		logger.Error("failed to save report", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to save report: %v\n", err)
		os.Exit(1)
	}

	if importPath == "" {
		importPath = fmt.Sprintf("import_%s.csv", time.Now().Format("20060102"))
	}
	if err := optimizer.WriteImportCSV(results, importPath); err != nil {
		logger.Error("failed to write import csv", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to write import CSV: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		outputJSON(results, reportPath, importPath)
	} else {
		outputText(results, reportPath, importPath)
	}
}

// outputText prints optimization results in human-readable format.
func outputText(results []*entity.Optimization, reportPath, importPath string) {
	fmt.Printf("Optimized %d products\n\n", len(results))
	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, r.ProductHandle)
		fmt.Printf("   %q -> %q\n", r.OriginalTitle, r.OptimizedTitle)
		fmt.Printf("   score: %.1f -> %.1f\n", r.OriginalScore, r.OptimizedScore)
	}
	fmt.Printf("\nReport: %s\n", reportPath)
	fmt.Printf("Import CSV: %s\n", importPath)
}

// outputJSON prints optimization results in JSON format.
func outputJSON(results []*entity.Optimization, reportPath, importPath string) {
	report := optimizer.BuildReport(time.Now(), results)
	out := struct {
		optimizer.OptimizationReport
		ReportPath string `json:"report_path"`
		ImportPath string `json:"import_path"`
	}{report, reportPath, importPath}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
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
