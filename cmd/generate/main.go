// Package main provides a CLI command for one-shot content generation.
// Usage: contentforge-generate --topic "..." --keywords "a,b" [--type blog|social] [--platform instagram] [--words N] [--output json]
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
	"contentforge/internal/infra/generator"
	"contentforge/internal/infra/store"
	"contentforge/internal/usecase/content"
)

// BlogOutput represents the JSON output format for a generated blog post.
type BlogOutput struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Body            string   `json:"body"`
	Keywords        []string `json:"keywords"`
	WordCount       int      `json:"word_count"`
	SEOScore        float64  `json:"seo_score"`
	Path            string   `json:"path"`
}

// SocialOutput represents the JSON output format for a generated social post.
type SocialOutput struct {
	Platform        string   `json:"platform"`
	Caption         string   `json:"caption"`
	Hashtags        []string `json:"hashtags"`
	CallToAction    string   `json:"call_to_action"`
	ImageSuggestion string   `json:"image_suggestion"`
}

func main() {
	var (
		contentType  string
		topic        string
		keywordsCSV  string
		wordCount    int
		platform     string
		outputFormat string
	)

	flag.StringVar(&contentType, "type", "blog", "Content type: blog or social")
	flag.StringVar(&topic, "topic", "", "Topic to write about (required)")
	flag.StringVar(&keywordsCSV, "keywords", "", "Comma-separated target keywords (required)")
	flag.IntVar(&wordCount, "words", 1000, "Target word count for blog posts")
	flag.StringVar(&platform, "platform", "instagram", "Platform for social posts: instagram or pinterest")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if topic == "" || keywordsCSV == "" {
		fmt.Fprintln(os.Stderr, "Error: --topic and --keywords are required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: contentforge-generate --topic \"...\" --keywords \"a,b\" [--type blog|social] [--platform instagram] [--words N] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  contentforge-generate --topic \"How to sharpen a chef knife\" --keywords \"knife sharpening,knife care\"")
		fmt.Fprintln(os.Stderr, "  contentforge-generate --type social --platform pinterest --topic \"Meal prep basics\" --keywords \"meal prep\"")
		fmt.Fprintln(os.Stderr, "  contentforge-generate --topic \"Knife skills\" --keywords \"knife skills\" --words 1500 --output json")
		os.Exit(1)
	}
	if contentType != "blog" && contentType != "social" {
		fmt.Fprintf(os.Stderr, "Error: Invalid type '%s' (must be 'blog' or 'social')\n", contentType)
		os.Exit(1)
	}

	keywords := splitKeywords(keywordsCSV)

	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	gen, err := generator.NewClaude(cfg.Claude)
	if err != nil {
		logger.Error("failed to create generator", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to create generator: %v\n", err)
		os.Exit(1)
	}

	files := store.NewContentStore(cfg.Content.OutputPath)
	svc := content.NewService(gen, nil, nil, files, cfg.Brand, cfg.Content)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("Generating content",
		slog.String("type", contentType),
		slog.String("topic", topic),
		slog.Int("keywords", len(keywords)))

	switch contentType {
	case "blog":
		post, path, err := svc.GenerateBlogPost(ctx, topic, keywords, wordCount)
		if err != nil {
			logger.Error("generation failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Generation failed: %v\n", err)
			os.Exit(1)
		}
		if outputFormat == "json" {
			outputBlogJSON(post, path)
		} else {
			outputBlogText(post, path)
		}
	case "social":
		post, err := svc.GenerateSocialPost(ctx, topic, keywords, platform)
		if err != nil {
			logger.Error("generation failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Generation failed: %v\n", err)
			os.Exit(1)
		}
		if outputFormat == "json" {
			outputSocialJSON(post)
		} else {
			outputSocialText(post)
		}
	}
}

func splitKeywords(csv string) []string {
	var keywords []string
	for _, k := range strings.Split(csv, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// outputBlogText prints a blog post in human-readable format.
func outputBlogText(post *entity.Content, path string) {
	fmt.Printf("Title: %s\n", post.Title)
	fmt.Printf("Meta description: %s\n", post.MetaDescription)
	fmt.Printf("Words: %d  SEO score: %.1f\n", post.WordCount, post.SEOScore)
	fmt.Printf("Saved to: %s\n\n", path)
	fmt.Println(post.Body)
}

// outputBlogJSON prints a blog post in JSON format.
func outputBlogJSON(post *entity.Content, path string) {
	encodeJSON(BlogOutput{
		Title:           post.Title,
		MetaDescription: post.MetaDescription,
		Body:            post.Body,
		Keywords:        post.Keywords,
		WordCount:       post.WordCount,
		SEOScore:        post.SEOScore,
		Path:            path,
	})
}

// outputSocialText prints a social post in human-readable format.
func outputSocialText(post *entity.SocialPost) {
	fmt.Printf("Platform: %s\n\n", post.Platform)
	fmt.Println(post.Caption)
	fmt.Println()
	fmt.Printf("Hashtags: %s\n", strings.Join(post.Hashtags, " "))
	fmt.Printf("Call to action: %s\n", post.CallToAction)
	if post.ImageSuggestion != "" {
		fmt.Printf("Image suggestion: %s\n", post.ImageSuggestion)
	}
}

// outputSocialJSON prints a social post in JSON format.
func outputSocialJSON(post *entity.SocialPost) {
	encodeJSON(SocialOutput{
		Platform:        post.Platform,
		Caption:         post.Caption,
		Hashtags:        post.Hashtags,
		CallToAction:    post.CallToAction,
		ImageSuggestion: post.ImageSuggestion,
	})
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
