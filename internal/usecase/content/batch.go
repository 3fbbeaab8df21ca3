package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"contentforge/internal/apierr"
)

// PlanItem is one piece of content to generate in a batch run.
type PlanItem struct {
	Type      string   `yaml:"type" json:"type"`
	Topic     string   `yaml:"topic" json:"topic"`
	Keywords  []string `yaml:"keywords" json:"keywords"`
	WordCount int      `yaml:"word_count,omitempty" json:"word_count,omitempty"`
	// Platform applies to social_post items only.
	Platform string `yaml:"platform,omitempty" json:"platform,omitempty"`
}

// Plan is an ordered batch of content to generate.
type Plan []PlanItem

// LoadPlan reads a batch plan from a YAML file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return plan, nil
}

// StarterPlan returns the built-in plan for seeding an empty content
// library with five foundational blog posts.
func StarterPlan() Plan {
	return Plan{
		{Type: "blog_post", Topic: "10 Essential Kitchen Knife Skills Every Home Cook Should Master",
			Keywords: []string{"knife skills", "kitchen techniques", "cooking basics", "chef knife"}, WordCount: 1500},
		{Type: "blog_post", Topic: "How to Choose the Perfect Chef Knife: A Complete Buying Guide",
			Keywords: []string{"chef knife", "buying guide", "kitchen knives", "professional knives"}, WordCount: 1200},
		{Type: "blog_post", Topic: "The Ultimate Guide to Knife Maintenance and Sharpening",
			Keywords: []string{"knife sharpening", "knife care", "knife maintenance", "blade care"}, WordCount: 1300},
		{Type: "blog_post", Topic: "5 Time-Saving Meal Prep Techniques with the Right Tools",
			Keywords: []string{"meal prep", "time-saving cooking", "kitchen efficiency", "batch cooking"}, WordCount: 1100},
		{Type: "blog_post", Topic: "Kitchen Organization Hacks: Storing Your Knives and Tools Properly",
			Keywords: []string{"kitchen organization", "knife storage", "kitchen tips", "tool organization"}, WordCount: 1000},
	}
}

// BatchResult is the outcome of one plan item.
type BatchResult struct {
	Type      string `json:"type"`
	Topic     string `json:"topic"`
	Title     string `json:"title,omitempty"`
	Platform  string `json:"platform,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
	FilePath  string `json:"filepath,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// BatchReport summarizes a batch run for the JSON report file.
type BatchReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Summary     BatchSummary  `json:"summary"`
	Results     []BatchResult `json:"results"`
}

// BatchSummary holds aggregate counts for a batch run.
type BatchSummary struct {
	Total       int    `json:"total"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"success_rate"`
}

// GenerateBatch runs every plan item with at most concurrency generations
// in flight. Item failures are isolated: a failed item is reported in its
// result and never aborts the rest of the batch. Results keep plan order.
func (s *Service) GenerateBatch(ctx context.Context, plan Plan, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	slog.InfoContext(ctx, "starting batch generation",
		slog.Int("items", len(plan)),
		slog.Int("concurrency", concurrency))

	results := make([]BatchResult, len(plan))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range plan {
		g.Go(func() error {
			results[i] = s.runPlanItem(ctx, item)
			return nil
		})
	}
	// Goroutines never return errors; failures live in the results.
	_ = g.Wait()

	return results
}

func (s *Service) runPlanItem(ctx context.Context, item PlanItem) BatchResult {
	result := BatchResult{Type: item.Type, Topic: item.Topic, Platform: item.Platform}

	switch item.Type {
	case "blog_post":
		piece, path, err := s.GenerateBlogPost(ctx, item.Topic, item.Keywords, item.WordCount)
		if err != nil {
			return failed(result, err)
		}
		result.Title = piece.Title
		result.WordCount = piece.WordCount
		result.FilePath = path

	case "social_post":
		post, err := s.GenerateSocialPost(ctx, item.Topic, item.Keywords, item.Platform)
		if err != nil {
			return failed(result, err)
		}
		result.Platform = post.Platform
		result.Title = truncate(post.Caption, 50)

	default:
		return failed(result, apierr.Validation(fmt.Sprintf("unknown content type %q", item.Type)))
	}

	result.Status = "success"
	return result
}

func failed(result BatchResult, err error) BatchResult {
	slog.Warn("batch item failed",
		slog.String("topic", result.Topic),
		slog.Any("error", err))
	result.Status = "error"
	result.Error = err.Error()
	return result
}

// BuildBatchReport assembles the summary report for a finished batch run.
func BuildBatchReport(results []BatchResult) BatchReport {
	successful := 0
	for _, r := range results {
		if r.Status == "success" {
			successful++
		}
	}

	rate := "0%"
	if len(results) > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(successful)/float64(len(results))*100)
	}

	return BatchReport{
		GeneratedAt: time.Now(),
		Summary: BatchSummary{
			Total:       len(results),
			Successful:  successful,
			Failed:      len(results) - successful,
			SuccessRate: rate,
		},
		Results: results,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
