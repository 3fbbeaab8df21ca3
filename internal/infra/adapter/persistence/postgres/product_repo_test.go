package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/adapter/persistence/postgres"
)

func TestProductRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := postgres.NewProductRepo(db)
	err := repo.Upsert(context.Background(), &entity.Product{
		Handle: "chef-knife-8in", Title: "8in Chef Knife",
		Description: "forged steel", Vendor: "Acme",
		ProductType: "kitchen knives", Tags: []string{"knife", "chef"},
		Price: 89.99, SKU: "CK-8", Images: []string{"https://example.com/ck8.jpg"},
	})
	if err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestProductRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := &entity.Product{
		Handle: "chef-knife-8in", Title: "8in Chef Knife",
		Description: "forged steel", Vendor: "Acme",
		ProductType: "kitchen knives", Tags: []string{"knife", "chef"},
		Price: 89.99, SKU: "CK-8", Images: []string{"https://example.com/ck8.jpg"},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT handle`)).
		WithArgs("chef-knife-8in").
		WillReturnRows(sqlmock.NewRows([]string{
			"handle", "title", "description", "vendor", "product_type",
			"tags", "price", "sku", "images",
		}).AddRow(
			want.Handle, want.Title, want.Description, want.Vendor, want.ProductType,
			"{knife,chef}", want.Price, want.SKU, "{https://example.com/ck8.jpg}",
		))

	repo := postgres.NewProductRepo(db)
	got, err := repo.Get(context.Background(), "chef-knife-8in")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestProductRepo_GetNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT handle`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"handle"}))

	repo := postgres.NewProductRepo(db)
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestProductRepo_SaveOptimization(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO product_optimizations`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := postgres.NewProductRepo(db)
	err := repo.SaveOptimization(context.Background(), &entity.Optimization{
		ProductHandle:  "chef-knife-8in",
		OriginalTitle:  "Knife",
		OptimizedTitle: "8in Forged Chef Knife for Home Cooks",
		OriginalScore:  45, OptimizedScore: 85,
		SuggestedTags:    []string{"chef knife", "forged"},
		ImprovementNotes: []string{"expanded title", "added keyword"},
	})
	if err != nil {
		t.Fatalf("SaveOptimization err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
