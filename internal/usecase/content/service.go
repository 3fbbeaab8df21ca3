// Package content implements AI-assisted generation of marketing copy:
// blog posts, product descriptions, and social media posts. Generated
// pieces are persisted to the database and written to disk for hand-off
// to publishing tools.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/generator"
	"contentforge/internal/infra/store"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/observability/slo"
	"contentforge/internal/repository"
	"contentforge/internal/utils/text"
)

// defaultProductWordCount is the standard product description length.
const defaultProductWordCount = 300

// tokenPricing is USD per million tokens, rough public list prices used
// only for budget tracking.
var tokenPricing = map[string]struct{ input, output float64 }{
	"claude": {3.00, 15.00},
	"openai": {2.50, 10.00},
}

// Service generates marketing content through an AI provider and persists
// the results. The repositories may be nil, in which case pieces are only
// written to disk; this keeps one-shot CLI runs usable without a database.
type Service struct {
	gen      generator.Generator
	contents repository.ContentRepository
	usage    repository.APIUsageRepository
	files    *store.ContentStore
	brand    config.BrandConfig
	cfg      config.ContentConfig
}

// NewService wires a content service.
func NewService(
	gen generator.Generator,
	contents repository.ContentRepository,
	usage repository.APIUsageRepository,
	files *store.ContentStore,
	brand config.BrandConfig,
	cfg config.ContentConfig,
) *Service {
	return &Service{
		gen:      gen,
		contents: contents,
		usage:    usage,
		files:    files,
		brand:    brand,
		cfg:      cfg,
	}
}

// blogResponse is the JSON document the model is instructed to return for
// blog posts.
type blogResponse struct {
	Title                  string   `json:"title"`
	Content                string   `json:"content"`
	MetaDescription        string   `json:"meta_description"`
	SuggestedInternalLinks []string `json:"suggested_internal_links"`
	PrimaryKeyword         string   `json:"primary_keyword"`
	SecondaryKeywords      []string `json:"secondary_keywords"`
}

type productResponse struct {
	Headline            string   `json:"headline"`
	ShortDescription    string   `json:"short_description"`
	LongDescription     string   `json:"long_description"`
	FeaturesAndBenefits []string `json:"features_and_benefits"`
	MetaDescription     string   `json:"meta_description"`
	BulletPoints        []string `json:"bullet_points"`
	SuggestedTags       []string `json:"suggested_tags"`
}

type socialResponse struct {
	Caption         string   `json:"caption"`
	Hashtags        []string `json:"hashtags"`
	CallToAction    string   `json:"call_to_action"`
	ImageSuggestion string   `json:"image_suggestion"`
	PostingTips     string   `json:"posting_tips"`
}

// GenerateBlogPost produces an SEO-optimized blog post about topic and
// returns the stored content along with the path of the JSON file written
// for it. A zero wordCount falls back to the configured minimum.
func (s *Service) GenerateBlogPost(ctx context.Context, topic string, keywords []string, wordCount int) (*entity.Content, string, error) {
	if err := apierr.Require(topic != "", "topic cannot be empty"); err != nil {
		return nil, "", err
	}
	if err := apierr.Require(len(keywords) > 0, "at least one keyword is required"); err != nil {
		return nil, "", err
	}
	if err := apierr.Require(wordCount >= 0, "word count cannot be negative"); err != nil {
		return nil, "", err
	}
	if wordCount == 0 {
		wordCount = s.cfg.MinWordCount
	}

	slog.InfoContext(ctx, "generating blog post",
		slog.String("topic", topic),
		slog.Int("word_count", wordCount))

	res, err := s.gen.Complete(ctx, systemPrompt(s.brand), blogPrompt(topic, keywords, wordCount, s.brand))
	if err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeBlogPost), false, 0)
		return nil, "", err
	}

	var doc blogResponse
	if err := decodeResponse(res.Text, &doc); err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeBlogPost), false, res.Duration)
		return nil, "", err
	}
	if err := requireFields(map[string]string{
		"title":            doc.Title,
		"content":          doc.Content,
		"meta_description": doc.MetaDescription,
	}); err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeBlogPost), false, res.Duration)
		return nil, "", err
	}

	resultKeywords := doc.SecondaryKeywords
	if len(resultKeywords) == 0 {
		resultKeywords = keywords
	}

	piece := &entity.Content{
		Type:            entity.ContentTypeBlogPost,
		Title:           doc.Title,
		Body:            doc.Content,
		MetaDescription: doc.MetaDescription,
		Keywords:        resultKeywords,
		WordCount:       text.CountWords(doc.Content),
		Status:          entity.ContentStatusDraft,
		CreatedAt:       time.Now(),
	}

	path, err := s.persist(ctx, piece, "generate_blog_post", res)
	if err != nil {
		return nil, "", err
	}

	metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeBlogPost), true, res.Duration)
	metrics.RecordGenerationWords(piece.WordCount)
	slog.InfoContext(ctx, "blog post generated",
		slog.String("title", piece.Title),
		slog.Int("words", piece.WordCount),
		slog.String("path", path))
	return piece, path, nil
}

// GenerateProductDescription produces marketing copy for a catalog product.
// The returned content body is assembled markdown: headline, short and long
// description, then a features list.
func (s *Service) GenerateProductDescription(ctx context.Context, product *entity.Product, keywords []string) (*entity.Content, string, error) {
	if err := apierr.Require(product != nil && product.Title != "", "product title cannot be empty"); err != nil {
		return nil, "", err
	}
	if len(keywords) == 0 {
		keywords = product.Tags
	}

	slog.InfoContext(ctx, "generating product description",
		slog.String("handle", product.Handle),
		slog.String("title", product.Title))

	productContext, err := json.MarshalIndent(map[string]any{
		"title":  product.Title,
		"vendor": product.Vendor,
		"type":   product.ProductType,
		"tags":   product.Tags,
		"price":  product.Price,
	}, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal product context: %w", err)
	}

	prompt := productPrompt(product.Title, string(productContext), keywords, defaultProductWordCount)
	res, err := s.gen.Complete(ctx, systemPrompt(s.brand), prompt)
	if err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeProductDescription), false, 0)
		return nil, "", err
	}

	var doc productResponse
	if err := decodeResponse(res.Text, &doc); err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeProductDescription), false, res.Duration)
		return nil, "", err
	}
	if err := requireFields(map[string]string{
		"headline":         doc.Headline,
		"long_description": doc.LongDescription,
		"meta_description": doc.MetaDescription,
	}); err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeProductDescription), false, res.Duration)
		return nil, "", err
	}

	body := assembleProductBody(doc)
	piece := &entity.Content{
		Type:            entity.ContentTypeProductDescription,
		Title:           doc.Headline,
		Body:            body,
		MetaDescription: doc.MetaDescription,
		Keywords:        keywords,
		WordCount:       text.CountWords(body),
		Status:          entity.ContentStatusDraft,
		CreatedAt:       time.Now(),
	}

	path, err := s.persist(ctx, piece, "generate_product_description", res)
	if err != nil {
		return nil, "", err
	}

	metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeProductDescription), true, res.Duration)
	metrics.RecordGenerationWords(piece.WordCount)
	return piece, path, nil
}

// GenerateSocialPost produces one post for the given platform. An empty
// platform defaults to instagram; unknown platforms still generate with a
// generic length target.
func (s *Service) GenerateSocialPost(ctx context.Context, topic string, keywords []string, platform string) (*entity.SocialPost, error) {
	if err := apierr.Require(topic != "", "topic cannot be empty"); err != nil {
		return nil, err
	}
	if platform == "" {
		platform = "instagram"
	}

	slog.InfoContext(ctx, "generating social post",
		slog.String("topic", topic),
		slog.String("platform", platform))

	res, err := s.gen.Complete(ctx, systemPrompt(s.brand), socialPrompt(topic, keywords, platform, s.brand))
	if err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeSocialMedia), false, 0)
		return nil, err
	}

	var doc socialResponse
	if err := decodeResponse(res.Text, &doc); err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeSocialMedia), false, res.Duration)
		return nil, err
	}
	if err := requireFields(map[string]string{"caption": doc.Caption}); err != nil {
		metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeSocialMedia), false, res.Duration)
		return nil, err
	}

	post := &entity.SocialPost{
		Platform:        platform,
		Caption:         doc.Caption,
		Hashtags:        doc.Hashtags,
		CallToAction:    doc.CallToAction,
		ImageSuggestion: doc.ImageSuggestion,
		CreatedAt:       time.Now(),
	}

	if s.contents != nil {
		piece := &entity.Content{
			Type:      entity.ContentTypeSocialMedia,
			Title:     topic,
			Body:      doc.Caption,
			Keywords:  keywords,
			WordCount: text.CountWords(doc.Caption),
			Status:    entity.ContentStatusDraft,
			Platform:  platform,
			CreatedAt: post.CreatedAt,
		}
		if err := s.contents.Create(ctx, piece); err != nil {
			return nil, fmt.Errorf("save social post: %w", err)
		}
	}
	s.recordUsage(ctx, "generate_social_post", res)

	metrics.RecordGeneration(s.gen.Name(), string(entity.ContentTypeSocialMedia), true, res.Duration)
	return post, nil
}

// RefreshLibraryGauges republishes the content library gauges from the
// database: per-type totals and the age of the newest piece. Gauge
// refresh never fails the caller; without a repository it is a no-op.
func (s *Service) RefreshLibraryGauges(ctx context.Context) {
	if s.contents == nil {
		return
	}

	stats, err := s.contents.StatsByType(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load content stats", slog.Any("error", err))
	} else {
		for _, st := range stats {
			metrics.UpdateContentTotal(string(st.Type), int(st.Count))
		}
	}

	recent, err := s.contents.ListRecent(ctx, 1)
	if err != nil {
		slog.WarnContext(ctx, "failed to load newest content", slog.Any("error", err))
		return
	}
	if len(recent) > 0 {
		slo.UpdateContentFreshness(time.Since(recent[0].CreatedAt).Hours())
	}
}

// persist stores the piece in the database (when configured), writes the
// JSON file, and records API usage.
func (s *Service) persist(ctx context.Context, piece *entity.Content, operation string, res *generator.Result) (string, error) {
	if s.contents != nil {
		if err := s.contents.Create(ctx, piece); err != nil {
			return "", fmt.Errorf("save content: %w", err)
		}
	}

	var path string
	if s.files != nil {
		var err error
		if path, err = s.files.SaveContent(piece); err != nil {
			return "", fmt.Errorf("write content file: %w", err)
		}
	}

	s.recordUsage(ctx, operation, res)
	return path, nil
}

func (s *Service) recordUsage(ctx context.Context, operation string, res *generator.Result) {
	if s.usage == nil || res == nil {
		return
	}
	usage := &entity.APIUsage{
		Provider:      s.gen.Name(),
		Model:         res.Model,
		Operation:     operation,
		InputTokens:   res.InputTokens,
		OutputTokens:  res.OutputTokens,
		EstimatedCost: estimateCost(s.gen.Name(), res.InputTokens, res.OutputTokens),
		CreatedAt:     time.Now(),
	}
	// Usage tracking never fails a generation that already succeeded.
	if err := s.usage.Record(ctx, usage); err != nil {
		slog.WarnContext(ctx, "failed to record API usage",
			slog.String("operation", operation),
			slog.Any("error", err))
	}
}

func estimateCost(provider string, inputTokens, outputTokens int64) float64 {
	p, ok := tokenPricing[provider]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*p.input + float64(outputTokens)/1e6*p.output
}

// decodeResponse parses a model response that should be a JSON document,
// stripping a markdown code fence first if the model added one.
func decodeResponse(raw string, v any) error {
	if err := json.Unmarshal([]byte(text.StripCodeFence(raw)), v); err != nil {
		return apierr.API("model returned invalid JSON", err)
	}
	return nil
}

// requireFields checks that the model filled every required field.
func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return apierr.API(fmt.Sprintf("model response missing required field: %s", name), nil)
		}
	}
	return nil
}

func assembleProductBody(doc productResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Headline)
	if doc.ShortDescription != "" {
		fmt.Fprintf(&b, "%s\n\n", doc.ShortDescription)
	}
	fmt.Fprintf(&b, "%s\n", doc.LongDescription)
	if len(doc.FeaturesAndBenefits) > 0 {
		b.WriteString("\n## Key Features & Benefits\n")
		for _, item := range doc.FeaturesAndBenefits {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	return b.String()
}
