// Package main provides a CLI command for keyword research and SEO reporting.
// Usage: contentforge-seo [--seeds "a,b"] [--report] [--audit] [--output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"contentforge/internal/config"
	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/serp"
	"contentforge/internal/infra/store"
	"contentforge/internal/usecase/seo"
)

// KeywordOutput represents the JSON output format for one researched keyword.
type KeywordOutput struct {
	Term         string  `json:"term"`
	SearchVolume int     `json:"search_volume"`
	Difficulty   float64 `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Intent       string  `json:"intent"`
	Relevance    float64 `json:"relevance"`
}

func main() {
	var (
		seedsCSV     string
		runReport    bool
		runAudit     bool
		outputFormat string
	)

	flag.StringVar(&seedsCSV, "seeds", "", "Comma-separated seed keywords (default: brand seed list)")
	flag.BoolVar(&runReport, "report", false, "Generate the full strategy report with content calendar")
	flag.BoolVar(&runAudit, "audit", false, "Analyze search console exports instead of researching keywords")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if runReport && runAudit {
		fmt.Fprintln(os.Stderr, "Error: --report and --audit are mutually exclusive")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: contentforge-seo [--seeds \"a,b\"] [--report] [--audit] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  contentforge-seo")
		fmt.Fprintln(os.Stderr, "  contentforge-seo --seeds \"kitchen knives,knife care\" --output json")
		fmt.Fprintln(os.Stderr, "  contentforge-seo --report")
		fmt.Fprintln(os.Stderr, "  contentforge-seo --audit")
		os.Exit(1)
	}

	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	reports := store.NewReportStore(cfg.Content.ReportsPath)
	svc := seo.NewService(serp.NewClient(cfg.SEO), nil, reports, cfg.Brand)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch {
	case runAudit:
		analysis, path, err := svc.Audit(ctx, cfg.SEO.PagesCSV, cfg.SEO.QueriesCSV)
		if err != nil {
			logger.Error("audit failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Audit failed: %v\n", err)
			os.Exit(1)
		}
		if outputFormat == "json" {
			encodeJSON(analysis)
		} else {
			fmt.Printf("Pages analyzed: %d\n", analysis.TotalPages)
			fmt.Printf("Total clicks: %d  Total impressions: %d\n", analysis.TotalClicks, analysis.TotalImpressions)
			fmt.Printf("Average CTR: %.2f%%\n", analysis.AvgCTR*100)
			fmt.Printf("Report saved to: %s\n", path)
		}

	case runReport:
		path, err := svc.GenerateReport(ctx, splitSeeds(seedsCSV))
		if err != nil {
			logger.Error("report generation failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Report generation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Strategy report saved to: %s\n", path)

	default:
		seeds := splitSeeds(seedsCSV)
		if len(seeds) == 0 {
			seeds = seo.DefaultSeeds
		}
		logger.Info("Researching keywords", slog.Int("seeds", len(seeds)))

		keywords, err := svc.ResearchKeywords(ctx, seeds)
		if err != nil {
			logger.Error("keyword research failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Keyword research failed: %v\n", err)
			os.Exit(1)
		}
		if outputFormat == "json" {
			outputKeywordsJSON(keywords)
		} else {
			outputKeywordsText(keywords)
		}
	}
}

func splitSeeds(csv string) []string {
	var seeds []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			seeds = append(seeds, s)
		}
	}
	return seeds
}

// outputKeywordsText prints researched keywords in human-readable format.
func outputKeywordsText(keywords []entity.Keyword) {
	fmt.Printf("Researched %d keywords:\n\n", len(keywords))
	for i, k := range keywords {
		fmt.Printf("%d. %s\n", i+1, k.Term)
		fmt.Printf("   volume: %d  difficulty: %.0f  cpc: $%.2f  intent: %s\n",
			k.SearchVolume, k.Difficulty, k.CPC, k.Intent)
	}
}

// outputKeywordsJSON prints researched keywords in JSON format.
func outputKeywordsJSON(keywords []entity.Keyword) {
	out := make([]KeywordOutput, len(keywords))
	for i, k := range keywords {
		out[i] = KeywordOutput{
			Term:         k.Term,
			SearchVolume: k.SearchVolume,
			Difficulty:   k.Difficulty,
			CPC:          k.CPC,
			Intent:       string(k.Intent),
			Relevance:    k.Relevance,
		}
	}
	encodeJSON(out)
}

func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
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
