package repository

import (
	"context"

	"contentforge/internal/domain/entity"
)

// ContentStats summarizes stored content for the dashboard and metrics.
type ContentStats struct {
	Type     entity.ContentType
	Count    int64
	AvgScore float64
}

// ContentRepository persists generated marketing content.
type ContentRepository interface {
	// Create stores a new content piece and fills in its generated ID.
	Create(ctx context.Context, content *entity.Content) error
	Get(ctx context.Context, id int64) (*entity.Content, error)
	// ListRecent returns up to limit pieces, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.Content, error)
	ListByType(ctx context.Context, contentType entity.ContentType) ([]*entity.Content, error)
	UpdateStatus(ctx context.Context, id int64, status entity.ContentStatus) error
	// StatsByType returns per-type counts and average quality scores.
	StatsByType(ctx context.Context) ([]ContentStats, error)
}
