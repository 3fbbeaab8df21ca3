// Package optimizer analyzes and rewrites storefront product listings.
// A heuristic audit scores each listing, then the content generator
// produces an optimized title, description, and tag set for it.
package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/catalog"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/repository"
	"contentforge/internal/utils/text"
)

// maxOptimizedTitleRunes caps rewritten titles so search results show them
// in full.
const maxOptimizedTitleRunes = 70

// optimizedScore is the target score a rewritten listing is assumed to
// reach.
const optimizedScore = 90.0

// DescriptionGenerator produces optimized product copy. Satisfied by the
// content usecase service.
type DescriptionGenerator interface {
	GenerateProductDescription(ctx context.Context, product *entity.Product, keywords []string) (*entity.Content, string, error)
}

// Service optimizes product listings. The product repository may be nil;
// optimizations are then only returned, not persisted.
type Service struct {
	gen      DescriptionGenerator
	products repository.ProductRepository
	brand    config.BrandConfig
	now      func() time.Time
}

// NewService wires an optimizer service.
func NewService(gen DescriptionGenerator, products repository.ProductRepository, brand config.BrandConfig) *Service {
	return &Service{
		gen:      gen,
		products: products,
		brand:    brand,
		now:      time.Now,
	}
}

// OptimizeProduct audits one listing and generates optimized copy for it.
// Empty targetKeywords are derived from the product itself.
func (s *Service) OptimizeProduct(ctx context.Context, product *entity.Product, targetKeywords []string) (*entity.Optimization, error) {
	if err := apierr.Require(product != nil && product.Handle != "" && product.Title != "", "product handle and title are required"); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "optimizing product",
		slog.String("handle", product.Handle),
		slog.String("title", product.Title))

	analysis := s.AnalyzeListing(product)
	if len(targetKeywords) == 0 {
		targetKeywords = s.extractKeywords(product)
	}

	generated, _, err := s.gen.GenerateProductDescription(ctx, product, targetKeywords)
	if err != nil {
		return nil, err
	}

	optimizedTitle := titleFromBody(generated.Body, product.Title)

	var notes []string
	if analysis.Score < 80 {
		notes = append(notes, fmt.Sprintf("SEO score improved from %.1f to 90+", analysis.Score))
	}
	if text.CountRunes(optimizedTitle) > analysis.TitleLength {
		notes = append(notes, "Title optimized for SEO length")
	}
	if len(targetKeywords) > 0 &&
		strings.Contains(strings.ToLower(optimizedTitle), strings.ToLower(targetKeywords[0])) {
		notes = append(notes, "Primary keyword added to title")
	}

	opt := &entity.Optimization{
		ProductHandle:        product.Handle,
		OriginalTitle:        product.Title,
		OptimizedTitle:       optimizedTitle,
		OriginalDescription:  product.Description,
		OptimizedDescription: generated.Body,
		MetaDescription:      generated.MetaDescription,
		SuggestedTags:        s.generateTags(product, targetKeywords),
		OriginalScore:        analysis.Score,
		OptimizedScore:       optimizedScore,
		ImprovementNotes:     notes,
		CreatedAt:            s.now(),
	}

	if s.products != nil {
		if err := s.products.Upsert(ctx, product); err != nil {
			return nil, fmt.Errorf("save product: %w", err)
		}
		if err := s.products.SaveOptimization(ctx, opt); err != nil {
			return nil, fmt.Errorf("save optimization: %w", err)
		}
	}

	slog.InfoContext(ctx, "product optimized",
		slog.String("handle", product.Handle),
		slog.String("optimized_title", opt.OptimizedTitle))
	return opt, nil
}

// OptimizeCatalog loads a storefront product export and optimizes every
// product in it. Products missing a handle or title are skipped, and a
// product whose optimization fails is logged and skipped; the rest of the
// catalog proceeds.
func (s *Service) OptimizeCatalog(ctx context.Context, csvPath string) ([]*entity.Optimization, error) {
	products, err := catalog.Load(csvPath)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "optimizing catalog",
		slog.String("path", csvPath),
		slog.Int("products", len(products)))

	results := make([]*entity.Optimization, 0, len(products))
	for _, product := range products {
		if product.Handle == "" || product.Title == "" {
			slog.WarnContext(ctx, "skipping product with missing data",
				slog.String("handle", product.Handle))
			continue
		}

		opt, err := s.OptimizeProduct(ctx, product, nil)
		if err != nil {
			slog.ErrorContext(ctx, "product optimization failed",
				slog.String("handle", product.Handle),
				slog.Any("error", err))
			continue
		}
		results = append(results, opt)
	}

	metrics.UpdateProductsTotal(len(products))
	slog.InfoContext(ctx, "catalog optimization complete",
		slog.Int("optimized", len(results)),
		slog.Int("total", len(products)))
	return results, nil
}

// extractKeywords derives target keywords from the product itself: its
// type, matching brand categories, the brand name, and its first tags.
func (s *Service) extractKeywords(product *entity.Product) []string {
	var keywords []string

	if product.ProductType != "" {
		keywords = append(keywords, strings.ToLower(product.ProductType))
	}

	title := strings.ToLower(product.Title)
	description := strings.ToLower(product.Description)
	for _, category := range s.brand.Categories {
		c := strings.ToLower(category)
		if strings.Contains(title, c) || strings.Contains(description, c) {
			keywords = append(keywords, category)
		}
	}

	keywords = append(keywords, strings.ToLower(s.brand.Name))

	tags := product.Tags
	if len(tags) > 3 {
		tags = tags[:3]
	}
	for _, tag := range tags {
		keywords = append(keywords, strings.ToLower(tag))
	}

	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	return keywords
}

// generateTags builds the suggested tag set: keywords, product attributes,
// then generic use-case and benefit tags, deduplicated in insertion order.
func (s *Service) generateTags(product *entity.Product, keywords []string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, k := range keywords {
		add(k)
	}
	add(product.ProductType)
	add(s.brand.Name)

	for _, useCase := range []string{"home cooking", "meal prep", "kitchen essentials"} {
		add(useCase)
	}
	for _, benefit := range []string{"durable", "premium quality"} {
		add(benefit)
	}

	if len(tags) > 15 {
		tags = tags[:15]
	}
	return tags
}

// titleFromBody extracts the headline from generated markdown copy: the
// first line minus its heading marker, capped for search display.
func titleFromBody(body, fallback string) string {
	line := body
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		line = body[:idx]
	}
	title := strings.TrimSpace(strings.TrimPrefix(line, "# "))
	if title == "" {
		title = fallback
	}
	if runes := []rune(title); len(runes) > maxOptimizedTitleRunes {
		title = string(runes[:maxOptimizedTitleRunes])
	}
	return title
}
