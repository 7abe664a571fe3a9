// Package dbx provides the small database abstraction shared by the
// repositories: an interface implemented by both *sql.DB and *sql.Tx, so a
// repository can run against a plain connection pool or inside a transaction
// without knowing which.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
