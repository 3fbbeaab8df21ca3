package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"contentforge/internal/domain/entity"
	"contentforge/internal/infra/adapter/persistence/postgres"
	"contentforge/internal/repository"
)

func TestKeywordRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO keywords`)).
		WithArgs("kitchen knives", 8500, 65.0, 1.80, "commercial", 1.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := postgres.NewKeywordRepo(db)
	err := repo.Upsert(context.Background(), &entity.Keyword{
		Term: "kitchen knives", SearchVolume: 8500, Difficulty: 65.0,
		CPC: 1.80, Intent: entity.IntentCommercial, Relevance: 1.0,
	})
	if err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestKeywordRepo_ListTop(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`ORDER BY relevance \* search_volume DESC`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"term", "search_volume", "difficulty", "cpc", "intent", "relevance",
		}).AddRow("best chef knife", 12000, 70.0, 2.50, "transactional", 0.9))

	repo := postgres.NewKeywordRepo(db)
	got, err := repo.ListTop(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListTop err=%v", err)
	}

	want := []*entity.Keyword{{
		Term: "best chef knife", SearchVolume: 12000, Difficulty: 70.0,
		CPC: 2.50, Intent: entity.IntentTransactional, Relevance: 0.9,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywordRepo_SaveRanking(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	checked := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO keyword_rankings`)).
		WithArgs("kitchen knives", 12, "https://example.com/knives", checked).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := postgres.NewKeywordRepo(db)
	err := repo.SaveRanking(context.Background(), &repository.KeywordRanking{
		Term: "kitchen knives", Position: 12,
		URL: "https://example.com/knives", CheckedAt: checked,
	})
	if err != nil {
		t.Fatalf("SaveRanking err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestKeywordRepo_RankingHistory(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(`FROM keyword_rankings`).
		WithArgs("kitchen knives", 30).
		WillReturnRows(sqlmock.NewRows([]string{"term", "position", "url", "checked_at"}).
			AddRow("kitchen knives", 12, "https://example.com/knives", now).
			AddRow("kitchen knives", 15, "https://example.com/knives", now.Add(-24*time.Hour)))

	repo := postgres.NewKeywordRepo(db)
	got, err := repo.RankingHistory(context.Background(), "kitchen knives", 30)
	if err != nil || len(got) != 2 {
		t.Fatalf("RankingHistory err=%v len=%d", err, len(got))
	}
	if got[0].Position != 12 {
		t.Fatalf("unexpected first position: %d", got[0].Position)
	}
}

func TestKeywordRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM keywords`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	repo := postgres.NewKeywordRepo(db)
	count, err := repo.Count(context.Background())
	if err != nil || count != 42 {
		t.Fatalf("Count err=%v count=%d", err, count)
	}
}
