package repository

import (
	"context"

	"contentforge/internal/domain/entity"
)

// ProductRepository persists catalog products and their optimization history.
type ProductRepository interface {
	// Upsert inserts the product or refreshes its fields when the handle
	// already exists.
	Upsert(ctx context.Context, product *entity.Product) error
	Get(ctx context.Context, handle string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	SaveOptimization(ctx context.Context, opt *entity.Optimization) error
	// ListOptimizations returns past optimizations for a product, newest first.
	ListOptimizations(ctx context.Context, handle string) ([]*entity.Optimization, error)
}
