// Package store writes pipeline outputs to the filesystem: generated
// content as JSON documents and SEO reports as JSON or CSV. The database is
// the source of truth; these files exist for hand-off to publishing tools.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"contentforge/internal/domain/entity"
	"contentforge/internal/utils/text"
)

// ContentStore persists generated content pieces as JSON files named
// YYYYMMDD_slug.json under the configured output directory.
type ContentStore struct {
	outputPath string
	now        func() time.Time
}

// NewContentStore creates a store rooted at outputPath. The directory is
// created on first write.
func NewContentStore(outputPath string) *ContentStore {
	return &ContentStore{outputPath: outputPath, now: time.Now}
}

// contentDocument is the on-disk shape of a content piece.
type contentDocument struct {
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	WordCount       int       `json:"word_count"`
	SEOScore        float64   `json:"seo_score,omitempty"`
	Status          string    `json:"status"`
	Platform        string    `json:"platform,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveContent writes one content piece and returns the file path.
func (s *ContentStore) SaveContent(content *entity.Content) (string, error) {
	if err := os.MkdirAll(s.outputPath, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	slug := text.Slugify(content.Title)
	if slug == "" {
		slug = string(content.Type)
	}
	name := fmt.Sprintf("%s_%s.json", s.now().Format("20060102"), slug)
	path := filepath.Join(s.outputPath, name)

	doc := contentDocument{
		Type:            string(content.Type),
		Title:           content.Title,
		Body:            content.Body,
		MetaDescription: content.MetaDescription,
		Keywords:        content.Keywords,
		WordCount:       content.WordCount,
		SEOScore:        content.SEOScore,
		Status:          string(content.Status),
		Platform:        content.Platform,
		CreatedAt:       content.CreatedAt,
	}

	if err := writeJSON(path, doc); err != nil {
		return "", err
	}

	slog.Debug("content saved",
		slog.String("path", path),
		slog.String("type", string(content.Type)))
	return path, nil
}

// SaveSocialPosts writes a day's social posts as one JSON document.
func (s *ContentStore) SaveSocialPosts(posts []entity.SocialPost) (string, error) {
	if err := os.MkdirAll(s.outputPath, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := fmt.Sprintf("%s_social_posts.json", s.now().Format("20060102"))
	path := filepath.Join(s.outputPath, name)

	if err := writeJSON(path, posts); err != nil {
		return "", err
	}
	return path, nil
}

// ReportStore persists SEO reports under the configured reports directory.
type ReportStore struct {
	reportsPath string
	now         func() time.Time
}

// NewReportStore creates a report store rooted at reportsPath.
func NewReportStore(reportsPath string) *ReportStore {
	return &ReportStore{reportsPath: reportsPath, now: time.Now}
}

// SaveJSON writes an arbitrary report document as name_YYYYMMDD.json and
// returns the file path.
func (s *ReportStore) SaveJSON(name string, report any) (string, error) {
	if err := os.MkdirAll(s.reportsPath, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(s.reportsPath,
		fmt.Sprintf("%s_%s.json", name, s.now().Format("20060102")))
	if err := writeJSON(path, report); err != nil {
		return "", err
	}
	return path, nil
}

// SaveCalendarCSV writes the content calendar as a spreadsheet-friendly CSV.
func (s *ReportStore) SaveCalendarCSV(entries []entity.CalendarEntry) (string, error) {
	if err := os.MkdirAll(s.reportsPath, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(s.reportsPath,
		fmt.Sprintf("content_calendar_%s.csv", s.now().Format("20060102")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create calendar file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := []string{
		"month", "week", "topic_cluster", "primary_keyword", "search_volume",
		"difficulty", "content_type", "target_intent", "priority", "estimated_traffic",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write calendar header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Month),
			strconv.Itoa(e.Week),
			e.TopicCluster,
			e.PrimaryKeyword,
			strconv.Itoa(e.SearchVolume),
			strconv.FormatFloat(e.Difficulty, 'f', 1, 64),
			e.ContentType,
			string(e.TargetIntent),
			e.Priority,
			strconv.Itoa(e.EstimatedTraffic),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write calendar row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush calendar: %w", err)
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
