// Package postgres implements the repository interfaces on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql operations the repositories use.
// It is satisfied by *sql.DB directly and by the circuit breaker wrapper
// in internal/resilience/circuitbreaker, which production wiring prefers.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
