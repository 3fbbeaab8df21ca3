package db

import "database/sql"

// MigrateUp creates the pipeline schema if it does not exist yet.
func MigrateUp(db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS generated_content (
    id               SERIAL PRIMARY KEY,
    content_type     VARCHAR(30) NOT NULL,
    title            TEXT NOT NULL,
    body             TEXT NOT NULL,
    meta_description TEXT,
    keywords         TEXT[],
    word_count       INTEGER NOT NULL DEFAULT 0,
    seo_score        DOUBLE PRECISION NOT NULL DEFAULT 0,
    status           VARCHAR(20) NOT NULL DEFAULT 'draft',
    platform         VARCHAR(30) NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS keywords (
    id            SERIAL PRIMARY KEY,
    term          TEXT NOT NULL UNIQUE,
    search_volume INTEGER NOT NULL DEFAULT 0,
    difficulty    DOUBLE PRECISION NOT NULL DEFAULT 0,
    cpc           DOUBLE PRECISION NOT NULL DEFAULT 0,
    intent        VARCHAR(20) NOT NULL DEFAULT 'informational',
    relevance     DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at    TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS keyword_rankings (
    id         SERIAL PRIMARY KEY,
    term       TEXT NOT NULL,
    position   INTEGER NOT NULL,
    url        TEXT NOT NULL DEFAULT '',
    checked_at TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS products (
    id           SERIAL PRIMARY KEY,
    handle       TEXT NOT NULL UNIQUE,
    title        TEXT NOT NULL,
    description  TEXT,
    vendor       TEXT,
    product_type TEXT,
    tags         TEXT[],
    price        DOUBLE PRECISION NOT NULL DEFAULT 0,
    sku          TEXT,
    images       TEXT[],
    updated_at   TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS product_optimizations (
    id                    SERIAL PRIMARY KEY,
    product_handle        TEXT NOT NULL REFERENCES products(handle),
    original_title        TEXT,
    optimized_title       TEXT,
    original_description  TEXT,
    optimized_description TEXT,
    meta_description      TEXT,
    suggested_tags        TEXT[],
    original_score        DOUBLE PRECISION NOT NULL DEFAULT 0,
    optimized_score       DOUBLE PRECISION NOT NULL DEFAULT 0,
    improvement_notes     TEXT[],
    created_at            TIMESTAMPTZ DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS task_execution_log (
    id            SERIAL PRIMARY KEY,
    task_name     TEXT NOT NULL,
    status        VARCHAR(20) NOT NULL,
    details       TEXT NOT NULL DEFAULT '',
    error_message TEXT NOT NULL DEFAULT '',
    started_at    TIMESTAMPTZ NOT NULL,
    finished_at   TIMESTAMPTZ NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS api_usage (
    id             SERIAL PRIMARY KEY,
    provider       VARCHAR(20) NOT NULL,
    model          TEXT NOT NULL DEFAULT '',
    operation      TEXT NOT NULL DEFAULT '',
    input_tokens   BIGINT NOT NULL DEFAULT 0,
    output_tokens  BIGINT NOT NULL DEFAULT 0,
    estimated_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ DEFAULT now()
)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_generated_content_created_at ON generated_content(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_generated_content_type ON generated_content(content_type)`,
		`CREATE INDEX IF NOT EXISTS idx_keyword_rankings_term ON keyword_rankings(term, checked_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_task_log_started_at ON task_execution_log(started_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_api_usage_created_at ON api_usage(created_at DESC)`,
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
