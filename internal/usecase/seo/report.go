package seo

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"contentforge/internal/domain/entity"
)

// StrategyReport is the quarterly SEO strategy document written as JSON.
type StrategyReport struct {
	GeneratedAt     time.Time              `json:"generated_at"`
	Goal            string                 `json:"goal"`
	TargetRevenue   string                 `json:"target_revenue"`
	Strategy        Strategy               `json:"strategy"`
	KeywordResearch ResearchSummary        `json:"keyword_research"`
	TopOpportunity  []TopOpportunity       `json:"top_opportunities"`
	CalendarPreview []entity.CalendarEntry `json:"content_calendar_preview"`
}

// Strategy describes the content marketing approach.
type Strategy struct {
	Approach             string   `json:"approach"`
	MonthlyContentTarget string   `json:"monthly_content_target"`
	FocusAreas           []string `json:"focus_areas"`
}

// ResearchSummary aggregates the keyword research behind a report.
type ResearchSummary struct {
	TotalKeywords     int `json:"total_keywords"`
	TotalClusters     int `json:"total_clusters"`
	TotalSearchVolume int `json:"total_search_volume"`
}

// TopOpportunity is one high-value cluster highlighted in the report.
type TopOpportunity struct {
	Topic          string   `json:"topic"`
	PrimaryKeyword string   `json:"primary_keyword"`
	SearchVolume   int      `json:"search_volume"`
	Difficulty     float64  `json:"difficulty"`
	ContentIdeas   []string `json:"content_ideas"`
}

// GenerateReport runs the full strategy pipeline: keyword research from the
// seeds, clustering, a 12-month calendar, then the JSON report plus the
// calendar CSV. Empty seeds fall back to DefaultSeeds. It returns the report
// path.
func (s *Service) GenerateReport(ctx context.Context, seeds []string) (string, error) {
	if len(seeds) == 0 {
		seeds = DefaultSeeds
	}

	keywords, err := s.ResearchKeywords(ctx, seeds)
	if err != nil {
		return "", err
	}
	clusters := ClusterKeywords(keywords, defaultMaxClusters)
	calendar := GenerateCalendar(clusters, 12)

	report := buildStrategyReport(s.now(), keywords, clusters, calendar)

	path, err := s.reports.SaveJSON("seo_strategy", report)
	if err != nil {
		return "", fmt.Errorf("save strategy report: %w", err)
	}
	calendarPath, err := s.reports.SaveCalendarCSV(calendar)
	if err != nil {
		return "", fmt.Errorf("save content calendar: %w", err)
	}

	slog.InfoContext(ctx, "seo strategy report generated",
		slog.Int("keywords", len(keywords)),
		slog.Int("clusters", len(clusters)),
		slog.Int("calendar_entries", len(calendar)),
		slog.String("report", path),
		slog.String("calendar", calendarPath))
	return path, nil
}

func buildStrategyReport(now time.Time, keywords []entity.Keyword, clusters []entity.KeywordCluster, calendar []entity.CalendarEntry) StrategyReport {
	top := clusters
	if len(top) > 10 {
		top = top[:10]
	}

	focusAreas := make([]string, 0, len(top))
	opportunities := make([]TopOpportunity, 0, len(top))
	totalVolume := 0
	for _, c := range clusters {
		totalVolume += c.TotalVolume
	}
	for _, c := range top {
		focusAreas = append(focusAreas, c.Topic)
		opportunities = append(opportunities, TopOpportunity{
			Topic:          c.Topic,
			PrimaryKeyword: c.Primary.Term,
			SearchVolume:   c.TotalVolume,
			Difficulty:     math.Round(c.AvgDifficulty*10) / 10,
			ContentIdeas:   c.Opportunities,
		})
	}

	preview := calendar
	if len(preview) > 20 {
		preview = preview[:20]
	}

	return StrategyReport{
		GeneratedAt:   now,
		Goal:          "10x organic traffic growth over 12 months",
		TargetRevenue: "$350K-450K additional annual revenue",
		Strategy: Strategy{
			Approach:             "Zero ad spend, SEO-first content marketing",
			MonthlyContentTarget: "50-100 pieces",
			FocusAreas:           focusAreas,
		},
		KeywordResearch: ResearchSummary{
			TotalKeywords:     len(keywords),
			TotalClusters:     len(clusters),
			TotalSearchVolume: totalVolume,
		},
		TopOpportunity:  opportunities,
		CalendarPreview: preview,
	}
}
