package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentforge/internal/config"
	"contentforge/internal/infra/store"
)

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- type: blog_post
  topic: Knife Care Basics
  keywords: [knife care, knife maintenance]
  word_count: 900
- type: social_post
  topic: Quick honing tip
  keywords: [knife skills]
  platform: pinterest
`), 0o644))

	plan, err := LoadPlan(path)

	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "blog_post", plan[0].Type)
	assert.Equal(t, 900, plan[0].WordCount)
	assert.Equal(t, "pinterest", plan[1].Platform)
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadPlanBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("topic: [unclosed"), 0o644))

	_, err := LoadPlan(path)
	require.Error(t, err)
}

func TestGenerateBatch(t *testing.T) {
	gen := &fakeGenerator{response: blogJSON}
	svc, contents, _ := newTestService(t, gen)

	plan := Plan{
		{Type: "blog_post", Topic: "Knife Care", Keywords: []string{"knife care"}, WordCount: 900},
		{Type: "video_script", Topic: "Unsupported"},
		{Type: "blog_post", Topic: "Meal Prep", Keywords: []string{"meal prep"}},
	}
	results := svc.GenerateBatch(context.Background(), plan, 1)

	require.Len(t, results, 3)
	assert.Equal(t, "success", results[0].Status)
	assert.Equal(t, "Knife Care Made Simple", results[0].Title)
	assert.NotEmpty(t, results[0].FilePath)

	assert.Equal(t, "error", results[1].Status)
	assert.Contains(t, results[1].Error, "video_script")

	assert.Equal(t, "success", results[2].Status)
	assert.Len(t, contents.created, 2)
}

func TestGenerateBatchIsolatesFailures(t *testing.T) {
	// A generator that always fails must not abort the batch.
	gen := &fakeGenerator{response: "not json"}
	svc, _, _ := newTestService(t, gen)

	results := svc.GenerateBatch(context.Background(), Plan{
		{Type: "blog_post", Topic: "A", Keywords: []string{"k"}},
		{Type: "blog_post", Topic: "B", Keywords: []string{"k"}},
	}, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "error", results[0].Status)
	assert.Equal(t, "error", results[1].Status)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateBatchEmptyPlan(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeGenerator{response: blogJSON})

	results := svc.GenerateBatch(context.Background(), nil, 4)

	assert.Empty(t, results)
}

func TestStarterPlan(t *testing.T) {
	plan := StarterPlan()

	require.Len(t, plan, 5)
	for _, item := range plan {
		assert.Equal(t, "blog_post", item.Type)
		assert.NotEmpty(t, item.Keywords)
		assert.Positive(t, item.WordCount)
	}
}

func TestBuildBatchReport(t *testing.T) {
	report := BuildBatchReport([]BatchResult{
		{Type: "blog_post", Topic: "A", Status: "success"},
		{Type: "blog_post", Topic: "B", Status: "error", Error: "boom"},
		{Type: "social_post", Topic: "C", Status: "success"},
	})

	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 2, report.Summary.Successful)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, "66.7%", report.Summary.SuccessRate)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestBuildBatchReportEmpty(t *testing.T) {
	report := BuildBatchReport(nil)
	assert.Equal(t, "0%", report.Summary.SuccessRate)
}

func TestGenerateBatchConcurrencyFloor(t *testing.T) {
	svc := NewService(&fakeGenerator{response: blogJSON}, nil, nil,
		store.NewContentStore(t.TempDir()), testBrand(),
		config.ContentConfig{MinWordCount: 800, MaxWordCount: 1500})

	results := svc.GenerateBatch(context.Background(), Plan{
		{Type: "blog_post", Topic: "A", Keywords: []string{"k"}},
	}, 0)

	require.Len(t, results, 1)
	assert.Equal(t, "success", results[0].Status)
}
