// Package config loads and validates the application configuration from
// environment variables. The configuration is built once at process start
// and passed explicitly into each component constructor; there is no
// ambient global.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the root configuration for the automation pipeline.
type Config struct {
	Environment string
	LogLevel    string

	Claude   ClaudeConfig
	OpenAI   OpenAIConfig
	Database DatabaseConfig
	Brand    BrandConfig
	Content  ContentConfig
	SEO      SEOConfig
}

// ClaudeConfig holds Anthropic API settings.
type ClaudeConfig struct {
	APIKey string
	Model  string
	// MaxTokens is the response token cap for generation calls.
	MaxTokens int
	// RequestsPerMinute is the outbound rate budget for the API.
	RequestsPerMinute int
	// Timeout is the per-call deadline.
	Timeout time.Duration
}

// OpenAIConfig holds settings for the OpenAI fallback generator.
type OpenAIConfig struct {
	APIKey            string
	Model             string
	MaxTokens         int
	RequestsPerMinute int
	Timeout           time.Duration
}

// DatabaseConfig holds relational store connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN returns the connection string for the pgx stdlib driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode)
}

// BrandConfig carries the brand guidelines injected into every prompt.
type BrandConfig struct {
	Name           string
	Tagline        string
	Voice          string
	TargetAudience string
	Categories     []string
}

// ContentConfig controls content generation defaults and output paths.
type ContentConfig struct {
	OutputPath  string
	ReportsPath string
	// ProductsCSV points at the storefront product export consumed by
	// the catalog optimizer.
	ProductsCSV string
	// AlertsPath is the file operational alerts are appended to.
	AlertsPath   string
	MinWordCount int
	MaxWordCount int
	PostsPerDay  int
}

// SEOConfig holds search ranking data source settings.
type SEOConfig struct {
	SERPAPIKey string
	SERPMaxRPS float64
	Location   string
	// Domain is the storefront domain whose rankings are tracked during
	// the scheduled audit. Empty disables rank tracking.
	Domain string
	// PagesCSV and QueriesCSV point at search-console export files
	// used by the performance audit.
	PagesCSV   string
	QueriesCSV string
}

// Load builds the configuration from environment variables, reading an
// optional .env file first. Defaults are applied for everything except
// credentials.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Claude: ClaudeConfig{
			APIKey:            os.Getenv("ANTHROPIC_API_KEY"),
			Model:             getEnvOrDefault("CLAUDE_MODEL", ""),
			MaxTokens:         getEnvInt("CLAUDE_MAX_TOKENS", 4000),
			RequestsPerMinute: getEnvInt("CLAUDE_REQUESTS_PER_MINUTE", 50),
			Timeout:           getEnvDuration("CLAUDE_TIMEOUT", 120*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:            os.Getenv("OPENAI_API_KEY"),
			Model:             getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
			MaxTokens:         getEnvInt("OPENAI_MAX_TOKENS", 4000),
			RequestsPerMinute: getEnvInt("OPENAI_REQUESTS_PER_MINUTE", 60),
			Timeout:           getEnvDuration("OPENAI_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnvOrDefault("DB_NAME", "contentforge"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Brand: BrandConfig{
			Name:           getEnvOrDefault("BRAND_NAME", "Acme Kitchen"),
			Tagline:        getEnvOrDefault("BRAND_TAGLINE", "Simplicity, Elegance, Functionality"),
			Voice:          getEnvOrDefault("BRAND_VOICE", "professional, warm, helpful"),
			TargetAudience: getEnvOrDefault("TARGET_AUDIENCE", "quality-conscious home cooks"),
			Categories:     splitList(getEnvOrDefault("BRAND_CATEGORIES", "kitchen knives,kitchen shears,knife sets,storage solutions")),
		},
		Content: ContentConfig{
			OutputPath:   getEnvOrDefault("CONTENT_OUTPUT_PATH", "./data/generated_content"),
			ReportsPath:  getEnvOrDefault("REPORTS_PATH", "./reports"),
			ProductsCSV:  getEnvOrDefault("PRODUCTS_CSV", "./data/products_export.csv"),
			AlertsPath:   getEnvOrDefault("ALERTS_PATH", "./logs/alerts.log"),
			MinWordCount: getEnvInt("MIN_WORD_COUNT", 800),
			MaxWordCount: getEnvInt("MAX_WORD_COUNT", 1500),
			PostsPerDay:  getEnvInt("SOCIAL_POSTS_PER_DAY", 3),
		},
		SEO: SEOConfig{
			SERPAPIKey: os.Getenv("SERPAPI_KEY"),
			SERPMaxRPS: getEnvFloat("SERP_MAX_RPS", 1.0),
			Location:   getEnvOrDefault("SEO_LOCATION", "United States"),
			Domain:     getEnvOrDefault("SEO_DOMAIN", ""),
			PagesCSV:   getEnvOrDefault("GSC_PAGES_CSV", "./data/gsc_pages.csv"),
			QueriesCSV: getEnvOrDefault("GSC_QUERIES_CSV", "./data/gsc_queries.csv"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for configuration values that are always wrong. Missing
// credentials are reported by Missing instead, so development environments
// without API keys can still run dry paths and tests.
func (c *Config) Validate() error {
	if c.Claude.MaxTokens <= 0 {
		return fmt.Errorf("CLAUDE_MAX_TOKENS must be positive, got %d", c.Claude.MaxTokens)
	}
	if c.Claude.RequestsPerMinute <= 0 {
		return fmt.Errorf("CLAUDE_REQUESTS_PER_MINUTE must be positive, got %d", c.Claude.RequestsPerMinute)
	}
	if c.Content.MinWordCount <= 0 || c.Content.MaxWordCount < c.Content.MinWordCount {
		return fmt.Errorf("word count bounds invalid: min=%d max=%d",
			c.Content.MinWordCount, c.Content.MaxWordCount)
	}
	if c.SEO.SERPMaxRPS <= 0 {
		return fmt.Errorf("SERP_MAX_RPS must be positive, got %v", c.SEO.SERPMaxRPS)
	}
	return nil
}

// Missing returns the names of required credentials that are not set.
func (c *Config) Missing() []string {
	var missing []string
	if c.Claude.APIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if c.Database.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	return missing
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses integer environment variable with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat parses float environment variable with default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration parses duration environment variable with default.
// Supports formats like "30s", "1m", "2h".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
