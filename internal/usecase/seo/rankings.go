package seo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"contentforge/internal/apierr"
	"contentforge/internal/infra/serp"
	"contentforge/internal/repository"
)

// defaultTrackedTerms caps how many tracked keywords a rank check covers
// when the caller does not name terms explicitly.
const defaultTrackedTerms = 20

// TrackRankings looks up where the brand's site currently ranks for each
// term and records the observed positions. Empty terms default to the top
// tracked keywords. A term whose lookup fails, or that the site does not
// rank for on the first page, is logged and skipped. Observations are
// persisted when a keyword repository is configured.
func (s *Service) TrackRankings(ctx context.Context, siteURL string, terms []string) ([]repository.KeywordRanking, error) {
	if err := apierr.Require(siteURL != "", "site URL is required"); err != nil {
		return nil, err
	}

	if len(terms) == 0 {
		if s.keywords == nil {
			return nil, apierr.Validation("terms are required without a keyword repository")
		}
		top, err := s.keywords.ListTop(ctx, defaultTrackedTerms)
		if err != nil {
			return nil, fmt.Errorf("load tracked keywords: %w", err)
		}
		for _, k := range top {
			terms = append(terms, k.Term)
		}
	}

	var rankings []repository.KeywordRanking
	for _, term := range terms {
		results, err := s.search.OrganicResults(ctx, term)
		if err != nil {
			slog.WarnContext(ctx, "ranking lookup failed",
				slog.String("term", term),
				slog.Any("error", err))
			continue
		}
		position, link, found := findSite(results, siteURL)
		if !found {
			continue
		}

		ranking := repository.KeywordRanking{
			Term:      term,
			Position:  position,
			URL:       link,
			CheckedAt: s.now(),
		}
		if s.keywords != nil {
			if err := s.keywords.SaveRanking(ctx, &ranking); err != nil {
				return nil, fmt.Errorf("save ranking for %q: %w", term, err)
			}
		}
		rankings = append(rankings, ranking)
	}

	slog.InfoContext(ctx, "rankings tracked",
		slog.Int("terms", len(terms)),
		slog.Int("ranked", len(rankings)))
	return rankings, nil
}

// findSite returns the position of the first organic result on the site.
func findSite(results []serp.OrganicResult, siteURL string) (int, string, bool) {
	host := strings.TrimPrefix(siteURL, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	for _, r := range results {
		if strings.Contains(r.Link, host) {
			return r.Position, r.Link, true
		}
	}
	return 0, "", false
}
