// Package main provides a CLI command for inspecting the pipeline database.
// Usage: contentforge-dashboard [--recent N] [--keywords N] [--usage-days N]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"contentforge/internal/config"
	pgRepo "contentforge/internal/infra/adapter/persistence/postgres"
	"contentforge/internal/infra/db"
	"contentforge/internal/repository"
	"contentforge/internal/resilience/circuitbreaker"
)

func main() {
	var (
		recentLimit  int
		keywordLimit int
		usageDays    int
	)

	flag.IntVar(&recentLimit, "recent", 10, "How many recent content pieces and task runs to show")
	flag.IntVar(&keywordLimit, "keywords", 20, "How many top keywords to show")
	flag.IntVar(&usageDays, "usage-days", 30, "API usage window in days")
	flag.Parse()

	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	querier := circuitbreaker.NewDBCircuitBreaker(database)
	d := &dashboard{
		contents: pgRepo.NewContentRepo(querier),
		keywords: pgRepo.NewKeywordRepo(querier),
		products: pgRepo.NewProductRepo(querier),
		tasks:    pgRepo.NewTaskLogRepo(querier),
		usage:    pgRepo.NewAPIUsageRepo(querier),
	}

	sections := []func(context.Context) error{
		d.printOverview,
		func(ctx context.Context) error { return d.printRecentContent(ctx, recentLimit) },
		func(ctx context.Context) error { return d.printTopKeywords(ctx, keywordLimit) },
		func(ctx context.Context) error { return d.printRecentTasks(ctx, recentLimit) },
		func(ctx context.Context) error { return d.printAPIUsage(ctx, usageDays) },
	}
	for _, section := range sections {
		if err := section(ctx); err != nil {
			logger.Error("dashboard query failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Dashboard query failed: %v\n", err)
			os.Exit(1)
		}
	}
}

type dashboard struct {
	contents repository.ContentRepository
	keywords repository.KeywordRepository
	products repository.ProductRepository
	tasks    repository.TaskLogRepository
	usage    repository.APIUsageRepository
}

// printOverview shows per-type content stats plus keyword and product counts.
func (d *dashboard) printOverview(ctx context.Context) error {
	stats, err := d.contents.StatsByType(ctx)
	if err != nil {
		return fmt.Errorf("content stats: %w", err)
	}
	keywordCount, err := d.keywords.Count(ctx)
	if err != nil {
		return fmt.Errorf("keyword count: %w", err)
	}
	productCount, err := d.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("product count: %w", err)
	}

	t := newTable("CONTENT LIBRARY")
	t.AppendHeader(table.Row{"Type", "Pieces", "Avg Score"})
	var total int64
	for _, s := range stats {
		total += s.Count
		t.AppendRow(table.Row{string(s.Type), s.Count, fmt.Sprintf("%.1f", s.AvgScore)})
	}
	t.AppendFooter(table.Row{"TOTAL", total, ""})
	fmt.Println(t.Render())

	fmt.Printf("\nKeywords tracked: %d\n", keywordCount)
	fmt.Printf("Products in catalog: %d\n", productCount)
	return nil
}

// printRecentContent lists the newest generated pieces.
func (d *dashboard) printRecentContent(ctx context.Context, limit int) error {
	recent, err := d.contents.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("recent content: %w", err)
	}

	t := newTable(fmt.Sprintf("RECENT CONTENT (last %d)", limit))
	t.AppendHeader(table.Row{"ID", "Type", "Title", "Status", "Words", "Created"})
	for _, c := range recent {
		t.AppendRow(table.Row{
			c.ID,
			string(c.Type),
			truncate(c.Title, 45),
			string(c.Status),
			c.WordCount,
			c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(t.Render())
	return nil
}

// printTopKeywords lists tracked keywords by relevance-weighted volume.
func (d *dashboard) printTopKeywords(ctx context.Context, limit int) error {
	top, err := d.keywords.ListTop(ctx, limit)
	if err != nil {
		return fmt.Errorf("top keywords: %w", err)
	}

	t := newTable(fmt.Sprintf("TOP KEYWORDS (top %d by volume)", limit))
	t.AppendHeader(table.Row{"Keyword", "Volume", "Difficulty", "Intent"})
	for _, k := range top {
		t.AppendRow(table.Row{
			k.Term,
			k.SearchVolume,
			fmt.Sprintf("%.0f", k.Difficulty),
			string(k.Intent),
		})
	}
	fmt.Println(t.Render())
	return nil
}

// printRecentTasks lists the latest scheduled task executions.
func (d *dashboard) printRecentTasks(ctx context.Context, limit int) error {
	runs, err := d.tasks.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("recent task runs: %w", err)
	}

	t := newTable(fmt.Sprintf("TASK EXECUTIONS (last %d)", limit))
	t.AppendHeader(table.Row{"Task", "Status", "Duration", "Started", "Error"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.Name,
			string(r.Status),
			r.Duration().Round(time.Second),
			r.StartedAt.Format("2006-01-02 15:04"),
			truncate(r.ErrorMessage, 40),
		})
	}
	fmt.Println(t.Render())
	return nil
}

// printAPIUsage shows per-provider token consumption with a totals row.
func (d *dashboard) printAPIUsage(ctx context.Context, days int) error {
	since := time.Now().AddDate(0, 0, -days)
	summaries, err := d.usage.SummarizeSince(ctx, since)
	if err != nil {
		return fmt.Errorf("api usage: %w", err)
	}

	t := newTable(fmt.Sprintf("API USAGE (last %d days)", days))
	t.AppendHeader(table.Row{"Provider", "Requests", "Input Tokens", "Output Tokens", "Est. Cost"})

	var totalCalls, totalIn, totalOut int64
	var totalCost float64
	for _, s := range summaries {
		totalCalls += s.Calls
		totalIn += s.InputTokens
		totalOut += s.OutputTokens
		totalCost += s.EstimatedCost
		t.AppendRow(table.Row{
			s.Provider,
			s.Calls,
			s.InputTokens,
			s.OutputTokens,
			fmt.Sprintf("$%.2f", s.EstimatedCost),
		})
	}
	t.AppendFooter(table.Row{"TOTAL", totalCalls, totalIn, totalOut, fmt.Sprintf("$%.2f", totalCost)})
	fmt.Println(t.Render())
	return nil
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	return t
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
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
