package seo

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"contentforge/internal/infra/gsc"
)

// lowCTRThreshold marks pages whose click-through rate underperforms their
// impressions (fraction, 2%).
const lowCTRThreshold = 0.02

// minImpressionsForCTR is how many impressions a page needs before a low
// CTR means anything.
const minImpressionsForCTR = 100

// Opportunity is one suggested optimization action from a performance audit.
type Opportunity struct {
	Type            string  `json:"type"`
	Page            string  `json:"page,omitempty"`
	Query           string  `json:"query,omitempty"`
	CurrentCTR      float64 `json:"current_ctr,omitempty"`
	CurrentPosition float64 `json:"current_position,omitempty"`
	Impressions     int     `json:"impressions,omitempty"`
	Clicks          int     `json:"clicks,omitempty"`
	Action          string  `json:"action"`
}

// PerformanceAnalysis summarizes search console data. CTR values are
// fractions (0.02 for 2%).
type PerformanceAnalysis struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	TotalPages       int              `json:"total_pages"`
	TotalClicks      int              `json:"total_clicks"`
	TotalImpressions int              `json:"total_impressions"`
	AvgCTR           float64          `json:"avg_ctr"`
	AvgPosition      float64          `json:"avg_position"`
	TotalQueries     int              `json:"total_queries"`
	TopPages         []gsc.PageStats  `json:"top_pages"`
	TopQueries       []gsc.QueryStats `json:"top_queries"`
	Opportunities    []Opportunity    `json:"opportunities"`
}

// AnalyzePerformance computes aggregate metrics and optimization
// opportunities from search console page and query exports: pages wasting
// impressions on a weak CTR, and queries stuck just below page one.
func (s *Service) AnalyzePerformance(pages []gsc.PageStats, queries []gsc.QueryStats) *PerformanceAnalysis {
	analysis := &PerformanceAnalysis{
		GeneratedAt:  s.now(),
		TotalPages:   len(pages),
		TotalQueries: len(queries),
	}

	for _, p := range pages {
		analysis.TotalClicks += p.Clicks
		analysis.TotalImpressions += p.Impressions
		analysis.AvgCTR += p.CTR
		analysis.AvgPosition += p.Position
	}
	if len(pages) > 0 {
		analysis.AvgCTR /= float64(len(pages))
		analysis.AvgPosition /= float64(len(pages))
	}

	analysis.TopPages = topPages(pages, 10)
	analysis.TopQueries = topQueries(queries, 10)

	// Pages with traffic potential wasted by a weak title or snippet.
	lowCTR := 0
	for _, p := range pages {
		if lowCTR >= 5 {
			break
		}
		if p.Impressions > minImpressionsForCTR && p.CTR < lowCTRThreshold {
			analysis.Opportunities = append(analysis.Opportunities, Opportunity{
				Type:        "Improve CTR",
				Page:        p.URL,
				CurrentCTR:  p.CTR,
				Impressions: p.Impressions,
				Action:      "Optimize title and meta description",
			})
			lowCTR++
		}
	}

	// Queries ranking 4-10 are one push away from page one.
	quickWins := 0
	for _, q := range queries {
		if quickWins >= 5 {
			break
		}
		if q.Position >= 4 && q.Position <= 10 {
			analysis.Opportunities = append(analysis.Opportunities, Opportunity{
				Type:            "Quick Win - Move to Page 1",
				Query:           q.Query,
				CurrentPosition: q.Position,
				Clicks:          q.Clicks,
				Action:          "Add internal links and update content",
			})
			quickWins++
		}
	}

	return analysis
}

// Audit loads search console exports, analyzes them, and writes the audit
// report. It returns the analysis and the report file path.
func (s *Service) Audit(ctx context.Context, pagesCSV, queriesCSV string) (*PerformanceAnalysis, string, error) {
	pages, err := gsc.LoadPages(pagesCSV)
	if err != nil {
		return nil, "", fmt.Errorf("load pages export: %w", err)
	}
	queries, err := gsc.LoadQueries(queriesCSV)
	if err != nil {
		return nil, "", fmt.Errorf("load queries export: %w", err)
	}

	analysis := s.AnalyzePerformance(pages, queries)

	var path string
	if s.reports != nil {
		if path, err = s.reports.SaveJSON("seo_audit", analysis); err != nil {
			return nil, "", fmt.Errorf("save audit report: %w", err)
		}
	}

	slog.InfoContext(ctx, "seo audit complete",
		slog.Int("total_clicks", analysis.TotalClicks),
		slog.Float64("avg_ctr", analysis.AvgCTR),
		slog.Int("opportunities", len(analysis.Opportunities)),
		slog.String("report", path))
	return analysis, path, nil
}

func topPages(pages []gsc.PageStats, limit int) []gsc.PageStats {
	sorted := make([]gsc.PageStats, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Clicks > sorted[j].Clicks })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func topQueries(queries []gsc.QueryStats, limit int) []gsc.QueryStats {
	sorted := make([]gsc.QueryStats, len(queries))
	copy(sorted, queries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Clicks > sorted[j].Clicks })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
