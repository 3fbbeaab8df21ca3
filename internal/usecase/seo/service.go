// Package seo implements keyword research, topical clustering, content
// calendar planning, and search performance analysis. Keyword metrics are
// heuristic estimates derived from related-search queries; performance
// analysis consumes search console exports.
package seo

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/serp"
	"contentforge/internal/infra/store"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/repository"
)

// DefaultSeeds is the seed list used by the scheduled strategy report when
// no explicit seeds are given.
var DefaultSeeds = []string{
	"kitchen knives",
	"chef knife",
	"kitchen shears",
	"knife set",
	"knife sharpening",
	"kitchen organization",
	"meal prep tools",
	"cooking essentials",
}

// SearchSource supplies search result data: related queries for keyword
// research and ranked organic results for rank tracking.
type SearchSource interface {
	RelatedSearches(ctx context.Context, query string) ([]string, error)
	OrganicResults(ctx context.Context, query string) ([]serp.OrganicResult, error)
}

// Service runs SEO research and analysis. The keyword repository may be
// nil; research results are then only returned, not persisted.
type Service struct {
	search   SearchSource
	keywords repository.KeywordRepository
	reports  *store.ReportStore
	brand    config.BrandConfig
	now      func() time.Time
}

// NewService wires an SEO service.
func NewService(search SearchSource, keywords repository.KeywordRepository, reports *store.ReportStore, brand config.BrandConfig) *Service {
	return &Service{
		search:   search,
		keywords: keywords,
		reports:  reports,
		brand:    brand,
		now:      time.Now,
	}
}

// ResearchKeywords expands seed terms into a deduplicated keyword list with
// estimated metrics, sorted by relevance-weighted volume descending. A seed
// whose lookup fails is logged and skipped; the rest of the batch proceeds.
func (s *Service) ResearchKeywords(ctx context.Context, seeds []string) ([]entity.Keyword, error) {
	if err := apierr.Require(len(seeds) > 0, "at least one seed keyword is required"); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "starting keyword research", slog.Int("seeds", len(seeds)))

	byTerm := make(map[string]entity.Keyword)
	var order []string

	for _, seed := range seeds {
		related, err := s.search.RelatedSearches(ctx, seed)
		if err != nil {
			slog.WarnContext(ctx, "keyword research failed for seed",
				slog.String("seed", seed),
				slog.Any("error", err))
			continue
		}
		for _, query := range related {
			if query == "" {
				continue
			}
			if _, seen := byTerm[query]; !seen {
				order = append(order, query)
			}
			byTerm[query] = s.keywordFromQuery(query)
		}
		slog.InfoContext(ctx, "related keywords found",
			slog.String("seed", seed),
			slog.Int("count", len(related)))
	}

	keywords := make([]entity.Keyword, 0, len(order))
	for _, term := range order {
		keywords = append(keywords, byTerm[term])
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Priority() > keywords[j].Priority()
	})

	if s.keywords != nil {
		for i := range keywords {
			if err := s.keywords.Upsert(ctx, &keywords[i]); err != nil {
				return nil, fmt.Errorf("save keyword %q: %w", keywords[i].Term, err)
			}
		}
		metrics.UpdateKeywordsTotal(len(keywords))
	}

	slog.InfoContext(ctx, "keyword research complete", slog.Int("keywords", len(keywords)))
	return keywords, nil
}
