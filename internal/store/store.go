package store

import (
	"context"
	"database/sql"
	"strings"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds all SQL queries for the application.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// IsUniqueViolation reports whether err is a SQLite unique constraint
// failure. Both the modernc and mattn drivers surface the constraint
// name in the error text.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
