package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row lookup misses.
var ErrNotFound = errors.New("repository: not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
