package database

import (
	"context"
	"database/sql"
)

// Connection is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it, so repositories work the same inside
// and outside a transaction.
type Connection interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
