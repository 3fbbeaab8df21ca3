package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"contentforge/internal/config"
	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/store"
	workerPkg "contentforge/internal/infra/worker"
	contentUC "contentforge/internal/usecase/content"
	optimizerUC "contentforge/internal/usecase/optimizer"
	seoUC "contentforge/internal/usecase/seo"
	"contentforge/internal/usecase/task"
)

const (
	taskDailyContent        = "daily_content"
	taskSEOAudit            = "seo_audit"
	taskProductOptimization = "product_optimization"
	taskStrategy            = "strategy"

	// Pages converting below this click-through rate trigger an alert.
	ctrAlertThreshold = 0.02
)

// blogTopic is one entry in the editorial rotation for daily posts.
type blogTopic struct {
	Topic     string
	Keywords  []string
	WordCount int
}

// socialTopic is one entry in the rotation for daily social posts.
type socialTopic struct {
	Topic    string
	Keywords []string
}

var dailyBlogTopics = []blogTopic{
	{
		Topic:     "5 Time-Saving Knife Techniques Every Home Cook Should Know",
		Keywords:  []string{"knife techniques", "cooking tips", "kitchen skills", "time-saving cooking"},
		WordCount: 1200,
	},
	{
		Topic:     "How to Properly Maintain Your Kitchen Knives",
		Keywords:  []string{"knife maintenance", "knife care", "kitchen tools", "knife sharpening"},
		WordCount: 1000,
	},
}

var dailySocialTopics = []socialTopic{
	{
		Topic:    "Quick tip: The proper way to hold a chef knife",
		Keywords: []string{"knife skills", "cooking tips", "kitchen basics"},
	},
	{
		Topic:    "Transform your meal prep with these organization ideas",
		Keywords: []string{"meal prep", "kitchen organization", "cooking efficiency"},
	},
	{
		Topic:    "The secret to perfectly diced vegetables",
		Keywords: []string{"knife skills", "vegetable prep", "cooking techniques"},
	},
}

var socialPlatforms = []string{"instagram", "pinterest"}

// dailyTopics picks the blog topic for the day. The editorial list is
// cycled by day of year so consecutive days publish different topics
// while keeping one blog post per day.
func dailyTopics(now time.Time) []blogTopic {
	return []blogTopic{dailyBlogTopics[now.YearDay()%len(dailyBlogTopics)]}
}

// pipeline bundles the services behind the scheduled tasks.
type pipeline struct {
	cfg           *config.Config
	content       *contentUC.Service
	seo           *seoUC.Service
	optimizer     *optimizerUC.Service
	files         *store.ContentStore
	reports       *store.ReportStore
	runner        *task.Runner
	workerMetrics *workerPkg.WorkerMetrics
}

// runScheduled is the cron entrypoint: it wraps a task with a timeout
// and records scheduler metrics around the run.
func (p *pipeline) runScheduled(name string, fn task.Func, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p.workerMetrics.RecordRun(name, "started")
	started := time.Now()

	err := p.runner.Run(ctx, name, fn)

	p.workerMetrics.RecordRunDuration(time.Since(started).Seconds())
	if err != nil {
		p.workerMetrics.RecordRun(name, "failure")
		return
	}
	p.workerMetrics.RecordRun(name, "success")
	p.workerMetrics.RecordLastSuccess()
}

// runDailyContent generates one blog post and a batch of social posts.
// Individual failures are logged and skipped so one bad generation does
// not drop the rest of the day's output; the task fails only when
// nothing was produced.
func (p *pipeline) runDailyContent(ctx context.Context) (string, error) {
	logger := slog.Default()
	pieces := 0

	for _, t := range dailyTopics(time.Now()) {
		post, path, err := p.content.GenerateBlogPost(ctx, t.Topic, t.Keywords, t.WordCount)
		if err != nil {
			logger.ErrorContext(ctx, "blog post generation failed",
				slog.String("topic", t.Topic),
				slog.Any("error", err))
			continue
		}
		logger.InfoContext(ctx, "blog post generated",
			slog.String("title", post.Title),
			slog.String("path", path))
		pieces++
	}

	var socialPosts []entity.SocialPost
	for _, t := range dailySocialTopics {
		for _, platform := range socialPlatforms {
			post, err := p.content.GenerateSocialPost(ctx, t.Topic, t.Keywords, platform)
			if err != nil {
				logger.ErrorContext(ctx, "social post generation failed",
					slog.String("topic", t.Topic),
					slog.String("platform", platform),
					slog.Any("error", err))
				continue
			}
			socialPosts = append(socialPosts, *post)
			pieces++
		}
	}
	if len(socialPosts) > 0 {
		path, err := p.files.SaveSocialPosts(socialPosts)
		if err != nil {
			return "", fmt.Errorf("save social posts: %w", err)
		}
		logger.InfoContext(ctx, "social posts saved",
			slog.Int("count", len(socialPosts)),
			slog.String("path", path))
	}

	if pieces == 0 {
		return "", fmt.Errorf("no content generated")
	}
	p.workerMetrics.RecordPiecesGenerated(pieces)
	p.content.RefreshLibraryGauges(ctx)
	return fmt.Sprintf("generated %d pieces", pieces), nil
}

// runSEOAudit analyzes the latest search-console exports and alerts
// when the average click-through rate drops below the threshold. The
// task is skipped, not failed, when no exports are present.
func (p *pipeline) runSEOAudit(ctx context.Context) (string, error) {
	pagesCSV := p.cfg.SEO.PagesCSV
	queriesCSV := p.cfg.SEO.QueriesCSV
	if !fileExists(pagesCSV) || !fileExists(queriesCSV) {
		return fmt.Sprintf("skipped: search console exports not found (%s, %s)", pagesCSV, queriesCSV), nil
	}

	analysis, reportPath, err := p.seo.Audit(ctx, pagesCSV, queriesCSV)
	if err != nil {
		return "", err
	}

	if analysis.AvgCTR < ctrAlertThreshold {
		p.runner.Alert(ctx, fmt.Sprintf("Average CTR %.2f%% is below the 2%% threshold, review underperforming pages", analysis.AvgCTR*100))
	}

	details := fmt.Sprintf("audit report saved to %s", reportPath)
	if domain := p.cfg.SEO.Domain; domain != "" {
		rankings, err := p.seo.TrackRankings(ctx, domain, nil)
		if err != nil {
			slog.WarnContext(ctx, "rank tracking failed",
				slog.String("domain", domain),
				slog.Any("error", err))
		} else {
			details += fmt.Sprintf("; tracked %d rankings", len(rankings))
		}
	}
	return details, nil
}

// runProductOptimization regenerates listings for the exported catalog
// and writes both a report and an import CSV next to the export. The
// task is skipped when no catalog export is present.
func (p *pipeline) runProductOptimization(ctx context.Context) (string, error) {
	csvPath := p.cfg.Content.ProductsCSV
	if !fileExists(csvPath) {
		return fmt.Sprintf("skipped: product export not found (%s)", csvPath), nil
	}

	results, err := p.optimizer.OptimizeCatalog(ctx, csvPath)
	if err != nil {
		return "", err
	}

	reportPath, err := p.optimizer.SaveReport(p.reports, results)
	if err != nil {
		return "", fmt.Errorf("save optimization report: %w", err)
	}

	importPath := filepath.Join(filepath.Dir(csvPath),
		fmt.Sprintf("import_%s.csv", time.Now().Format("20060102")))
	if err := optimizerUC.WriteImportCSV(results, importPath); err != nil {
		return "", fmt.Errorf("write import csv: %w", err)
	}

	p.runner.Alert(ctx, fmt.Sprintf("Monthly optimization complete: %d products updated", len(results)))
	return fmt.Sprintf("optimized %d products, report at %s", len(results), reportPath), nil
}

// runStrategy produces the quarterly keyword strategy report. It is
// not scheduled; run it manually with --task strategy.
func (p *pipeline) runStrategy(ctx context.Context) (string, error) {
	reportPath, err := p.seo.GenerateReport(ctx, nil)
	if err != nil {
		return "", err
	}
	p.runner.Alert(ctx, fmt.Sprintf("Quarterly strategy report ready: %s", reportPath))
	return fmt.Sprintf("strategy report saved to %s", reportPath), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
