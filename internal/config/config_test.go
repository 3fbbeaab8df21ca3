package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 4000, cfg.Claude.MaxTokens)
	assert.Equal(t, 50, cfg.Claude.RequestsPerMinute)
	assert.Equal(t, 120*time.Second, cfg.Claude.Timeout)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "./data/generated_content", cfg.Content.OutputPath)
	assert.Equal(t, "./logs/alerts.log", cfg.Content.AlertsPath)
	assert.Equal(t, 800, cfg.Content.MinWordCount)
	assert.Equal(t, "United States", cfg.SEO.Location)
	assert.Contains(t, cfg.Brand.Categories, "kitchen knives")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CLAUDE_MAX_TOKENS", "2000")
	t.Setenv("CLAUDE_TIMEOUT", "90s")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("BRAND_CATEGORIES", "cutting boards, aprons")
	t.Setenv("PRODUCTS_CSV", "/srv/exports/products.csv")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2000, cfg.Claude.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.Claude.Timeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, []string{"cutting boards", "aprons"}, cfg.Brand.Categories)
	assert.Equal(t, "/srv/exports/products.csv", cfg.Content.ProductsCSV)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("CLAUDE_MAX_TOKENS", "lots")
	t.Setenv("CLAUDE_TIMEOUT", "soon")
	t.Setenv("SERP_MAX_RPS", "fast")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Claude.MaxTokens)
	assert.Equal(t, 120*time.Second, cfg.Claude.Timeout)
	assert.InDelta(t, 1.0, cfg.SEO.SERPMaxRPS, 1e-9)
}

func TestLoadRejectsInvalidBounds(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative max tokens", key: "CLAUDE_MAX_TOKENS", value: "-1"},
		{name: "zero rpm", key: "CLAUDE_REQUESTS_PER_MINUTE", value: "0"},
		{name: "max below min word count", key: "MAX_WORD_COUNT", value: "100"},
		{name: "negative serp rps", key: "SERP_MAX_RPS", value: "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "contentforge",
		User:     "postgres",
		Password: "secret",
		SSLMode:  "disable",
	}.DSN()

	assert.Equal(t, "host=localhost port=5432 dbname=contentforge user=postgres password=secret sslmode=disable", dsn)
}

func TestMissing(t *testing.T) {
	cfg := &Config{}

	assert.ElementsMatch(t, []string{"ANTHROPIC_API_KEY", "DB_PASSWORD"}, cfg.Missing())

	cfg.Claude.APIKey = "sk-test"
	cfg.Database.Password = "secret"
	assert.Empty(t, cfg.Missing())
}
