package store

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentforge/internal/domain/entity"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
}

func TestSaveContentWritesDatedSlugFile(t *testing.T) {
	dir := t.TempDir()
	s := NewContentStore(dir)
	s.now = fixedNow

	path, err := s.SaveContent(&entity.Content{
		Type:      entity.ContentTypeBlogPost,
		Title:     "How to Sharpen a Chef Knife",
		Body:      "body",
		Keywords:  []string{"chef knife"},
		WordCount: 900,
		Status:    entity.ContentStatusDraft,
		CreatedAt: fixedNow(),
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260820_how-to-sharpen-a-chef-knife.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "blog_post", doc["type"])
	assert.Equal(t, "How to Sharpen a Chef Knife", doc["title"])
	assert.Equal(t, float64(900), doc["word_count"])
}

func TestSaveContentFallsBackToTypeSlug(t *testing.T) {
	dir := t.TempDir()
	s := NewContentStore(dir)
	s.now = fixedNow

	path, err := s.SaveContent(&entity.Content{
		Type:   entity.ContentTypeEmail,
		Title:  "!!!",
		Status: entity.ContentStatusDraft,
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260820_email.json"), path)
}

func TestSaveSocialPosts(t *testing.T) {
	dir := t.TempDir()
	s := NewContentStore(dir)
	s.now = fixedNow

	path, err := s.SaveSocialPosts([]entity.SocialPost{
		{Platform: "instagram", Caption: "New knives just dropped", Hashtags: []string{"#knives"}},
		{Platform: "pinterest", Caption: "Kitchen storage ideas"},
	})

	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var posts []entity.SocialPost
	require.NoError(t, json.Unmarshal(data, &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "instagram", posts[0].Platform)
}

func TestSaveJSONReport(t *testing.T) {
	dir := t.TempDir()
	s := NewReportStore(dir)
	s.now = fixedNow

	path, err := s.SaveJSON("seo_audit", map[string]int{"pages": 12})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "seo_audit_20260820.json"), path)
}

func TestSaveCalendarCSV(t *testing.T) {
	dir := t.TempDir()
	s := NewReportStore(dir)
	s.now = fixedNow

	path, err := s.SaveCalendarCSV([]entity.CalendarEntry{
		{
			Month: 1, Week: 1, TopicCluster: "knife care",
			PrimaryKeyword: "how to sharpen knives", SearchVolume: 4400,
			Difficulty: 42.5, ContentType: "how-to guide",
			TargetIntent: entity.IntentInformational, Priority: "Medium",
			EstimatedTraffic: 660,
		},
	})

	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "primary_keyword", records[0][3])
	assert.Equal(t, "how to sharpen knives", records[1][3])
	assert.Equal(t, "42.5", records[1][5])
}
