package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"contentforge/internal/domain/entity"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/repository"
)

type ContentRepo struct {
	db Querier
}

func NewContentRepo(db Querier) repository.ContentRepository {
	return &ContentRepo{db: db}
}

func (repo *ContentRepo) Create(ctx context.Context, content *entity.Content) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_content", time.Since(start)) }()

	if content.CreatedAt.IsZero() {
		content.CreatedAt = time.Now()
	}

	const query = `
INSERT INTO generated_content
    (content_type, title, body, meta_description, keywords, word_count, seo_score, status, platform, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		string(content.Type), content.Title, content.Body, content.MetaDescription,
		pq.Array(content.Keywords), content.WordCount, content.SEOScore,
		string(content.Status), content.Platform, content.CreatedAt,
	).Scan(&content.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ContentRepo) Get(ctx context.Context, id int64) (*entity.Content, error) {
	const query = `
SELECT id, content_type, title, body, meta_description, keywords, word_count, seo_score, status, platform, created_at
FROM generated_content
WHERE id = $1
LIMIT 1`
	var content entity.Content
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&content.ID, &content.Type, &content.Title, &content.Body, &content.MetaDescription,
		pq.Array(&content.Keywords), &content.WordCount, &content.SEOScore,
		&content.Status, &content.Platform, &content.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &content, nil
}

func (repo *ContentRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Content, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_content", time.Since(start)) }()

	const query = `
SELECT id, content_type, title, body, meta_description, keywords, word_count, seo_score, status, platform, created_at
FROM generated_content
ORDER BY created_at DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanContentRows(rows, limit)
}

func (repo *ContentRepo) ListByType(ctx context.Context, contentType entity.ContentType) ([]*entity.Content, error) {
	const query = `
SELECT id, content_type, title, body, meta_description, keywords, word_count, seo_score, status, platform, created_at
FROM generated_content
WHERE content_type = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, string(contentType))
	if err != nil {
		return nil, fmt.Errorf("ListByType: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanContentRows(rows, 50)
}

func (repo *ContentRepo) UpdateStatus(ctx context.Context, id int64, status entity.ContentStatus) error {
	const query = `UPDATE generated_content SET status = $1 WHERE id = $2`
	result, err := repo.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateStatus: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *ContentRepo) StatsByType(ctx context.Context) ([]repository.ContentStats, error) {
	const query = `
SELECT content_type, COUNT(*), COALESCE(AVG(seo_score), 0)
FROM generated_content
GROUP BY content_type
ORDER BY content_type`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("StatsByType: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := make([]repository.ContentStats, 0, 4)
	for rows.Next() {
		var s repository.ContentStats
		if err := rows.Scan(&s.Type, &s.Count, &s.AvgScore); err != nil {
			return nil, fmt.Errorf("StatsByType: Scan: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func scanContentRows(rows *sql.Rows, capacity int) ([]*entity.Content, error) {
	contents := make([]*entity.Content, 0, capacity)
	for rows.Next() {
		var content entity.Content
		if err := rows.Scan(
			&content.ID, &content.Type, &content.Title, &content.Body, &content.MetaDescription,
			pq.Array(&content.Keywords), &content.WordCount, &content.SEOScore,
			&content.Status, &content.Platform, &content.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content row: %w", err)
		}
		contents = append(contents, &content)
	}
	return contents, rows.Err()
}
