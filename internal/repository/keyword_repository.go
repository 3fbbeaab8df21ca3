package repository

import (
	"context"
	"time"

	"contentforge/internal/domain/entity"
)

// KeywordRanking is one observed search position for a tracked keyword.
type KeywordRanking struct {
	Term      string
	Position  int
	URL       string
	CheckedAt time.Time
}

// KeywordRepository persists researched keywords and their ranking history.
type KeywordRepository interface {
	// Upsert inserts the keyword or refreshes its metrics when the term
	// already exists.
	Upsert(ctx context.Context, keyword *entity.Keyword) error
	List(ctx context.Context) ([]*entity.Keyword, error)
	// ListTop returns the highest-priority keywords, relevance-weighted
	// volume descending.
	ListTop(ctx context.Context, limit int) ([]*entity.Keyword, error)
	Count(ctx context.Context) (int64, error)
	SaveRanking(ctx context.Context, ranking *KeywordRanking) error
	// RankingHistory returns observations for a term, newest first.
	RankingHistory(ctx context.Context, term string, limit int) ([]*KeywordRanking, error)
}
