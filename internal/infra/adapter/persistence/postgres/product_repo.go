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

type ProductRepo struct {
	db Querier
}

func NewProductRepo(db Querier) repository.ProductRepository {
	return &ProductRepo{db: db}
}

func (repo *ProductRepo) Upsert(ctx context.Context, product *entity.Product) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert_product", time.Since(start)) }()

	const query = `
INSERT INTO products (handle, title, description, vendor, product_type, tags, price, sku, images, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (handle) DO UPDATE SET
    title        = EXCLUDED.title,
    description  = EXCLUDED.description,
    vendor       = EXCLUDED.vendor,
    product_type = EXCLUDED.product_type,
    tags         = EXCLUDED.tags,
    price        = EXCLUDED.price,
    sku          = EXCLUDED.sku,
    images       = EXCLUDED.images,
    updated_at   = now()`
	_, err := repo.db.ExecContext(ctx, query,
		product.Handle, product.Title, product.Description, product.Vendor,
		product.ProductType, pq.Array(product.Tags), product.Price,
		product.SKU, pq.Array(product.Images))
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *ProductRepo) Get(ctx context.Context, handle string) (*entity.Product, error) {
	const query = `
SELECT handle, title, description, vendor, product_type, tags, price, sku, images
FROM products
WHERE handle = $1
LIMIT 1`
	var product entity.Product
	err := repo.db.QueryRowContext(ctx, query, handle).Scan(
		&product.Handle, &product.Title, &product.Description, &product.Vendor,
		&product.ProductType, pq.Array(&product.Tags), &product.Price,
		&product.SKU, pq.Array(&product.Images))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &product, nil
}

func (repo *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	const query = `
SELECT handle, title, description, vendor, product_type, tags, price, sku, images
FROM products
ORDER BY handle`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*entity.Product, 0, 50)
	for rows.Next() {
		var product entity.Product
		if err := rows.Scan(
			&product.Handle, &product.Title, &product.Description, &product.Vendor,
			&product.ProductType, pq.Array(&product.Tags), &product.Price,
			&product.SKU, pq.Array(&product.Images)); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}

func (repo *ProductRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM products`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ProductRepo) SaveOptimization(ctx context.Context, opt *entity.Optimization) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_optimization", time.Since(start)) }()

	if opt.CreatedAt.IsZero() {
		opt.CreatedAt = time.Now()
	}

	const query = `
INSERT INTO product_optimizations
    (product_handle, original_title, optimized_title, original_description, optimized_description,
     meta_description, suggested_tags, original_score, optimized_score, improvement_notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := repo.db.ExecContext(ctx, query,
		opt.ProductHandle, opt.OriginalTitle, opt.OptimizedTitle,
		opt.OriginalDescription, opt.OptimizedDescription, opt.MetaDescription,
		pq.Array(opt.SuggestedTags), opt.OriginalScore, opt.OptimizedScore,
		pq.Array(opt.ImprovementNotes), opt.CreatedAt)
	if err != nil {
		return fmt.Errorf("SaveOptimization: %w", err)
	}
	return nil
}

func (repo *ProductRepo) ListOptimizations(ctx context.Context, handle string) ([]*entity.Optimization, error) {
	const query = `
SELECT product_handle, original_title, optimized_title, original_description, optimized_description,
       meta_description, suggested_tags, original_score, optimized_score, improvement_notes, created_at
FROM product_optimizations
WHERE product_handle = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, handle)
	if err != nil {
		return nil, fmt.Errorf("ListOptimizations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	opts := make([]*entity.Optimization, 0, 10)
	for rows.Next() {
		var opt entity.Optimization
		if err := rows.Scan(
			&opt.ProductHandle, &opt.OriginalTitle, &opt.OptimizedTitle,
			&opt.OriginalDescription, &opt.OptimizedDescription, &opt.MetaDescription,
			pq.Array(&opt.SuggestedTags), &opt.OriginalScore, &opt.OptimizedScore,
			pq.Array(&opt.ImprovementNotes), &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListOptimizations: Scan: %w", err)
		}
		opts = append(opts, &opt)
	}
	return opts, rows.Err()
}
