package postgres

import (
	"context"
	"fmt"
	"time"

	"contentforge/internal/domain/entity"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/repository"
)

type KeywordRepo struct {
	db Querier
}

func NewKeywordRepo(db Querier) repository.KeywordRepository {
	return &KeywordRepo{db: db}
}

func (repo *KeywordRepo) Upsert(ctx context.Context, keyword *entity.Keyword) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert_keyword", time.Since(start)) }()

	const query = `
INSERT INTO keywords (term, search_volume, difficulty, cpc, intent, relevance, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (term) DO UPDATE SET
    search_volume = EXCLUDED.search_volume,
    difficulty    = EXCLUDED.difficulty,
    cpc           = EXCLUDED.cpc,
    intent        = EXCLUDED.intent,
    relevance     = EXCLUDED.relevance,
    updated_at    = now()`
	_, err := repo.db.ExecContext(ctx, query,
		keyword.Term, keyword.SearchVolume, keyword.Difficulty,
		keyword.CPC, string(keyword.Intent), keyword.Relevance)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *KeywordRepo) List(ctx context.Context) ([]*entity.Keyword, error) {
	const query = `
SELECT term, search_volume, difficulty, cpc, intent, relevance
FROM keywords
ORDER BY term`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keywords := make([]*entity.Keyword, 0, 100)
	for rows.Next() {
		var k entity.Keyword
		if err := rows.Scan(&k.Term, &k.SearchVolume, &k.Difficulty, &k.CPC, &k.Intent, &k.Relevance); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		keywords = append(keywords, &k)
	}
	return keywords, rows.Err()
}

func (repo *KeywordRepo) ListTop(ctx context.Context, limit int) ([]*entity.Keyword, error) {
	const query = `
SELECT term, search_volume, difficulty, cpc, intent, relevance
FROM keywords
ORDER BY relevance * search_volume DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListTop: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keywords := make([]*entity.Keyword, 0, limit)
	for rows.Next() {
		var k entity.Keyword
		if err := rows.Scan(&k.Term, &k.SearchVolume, &k.Difficulty, &k.CPC, &k.Intent, &k.Relevance); err != nil {
			return nil, fmt.Errorf("ListTop: Scan: %w", err)
		}
		keywords = append(keywords, &k)
	}
	return keywords, rows.Err()
}

func (repo *KeywordRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM keywords`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *KeywordRepo) SaveRanking(ctx context.Context, ranking *repository.KeywordRanking) error {
	if ranking.CheckedAt.IsZero() {
		ranking.CheckedAt = time.Now()
	}

	const query = `
INSERT INTO keyword_rankings (term, position, url, checked_at)
VALUES ($1, $2, $3, $4)`
	_, err := repo.db.ExecContext(ctx, query,
		ranking.Term, ranking.Position, ranking.URL, ranking.CheckedAt)
	if err != nil {
		return fmt.Errorf("SaveRanking: %w", err)
	}
	return nil
}

func (repo *KeywordRepo) RankingHistory(ctx context.Context, term string, limit int) ([]*repository.KeywordRanking, error) {
	const query = `
SELECT term, position, url, checked_at
FROM keyword_rankings
WHERE term = $1
ORDER BY checked_at DESC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("RankingHistory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rankings := make([]*repository.KeywordRanking, 0, limit)
	for rows.Next() {
		var r repository.KeywordRanking
		if err := rows.Scan(&r.Term, &r.Position, &r.URL, &r.CheckedAt); err != nil {
			return nil, fmt.Errorf("RankingHistory: Scan: %w", err)
		}
		rankings = append(rankings, &r)
	}
	return rankings, rows.Err()
}
