package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql operations the stores need.
// Both *sql.DB and *sql.Tx satisfy it, so a store can run against the
// pool directly or inside a transaction handed to it via WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}
