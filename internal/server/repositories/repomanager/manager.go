package repomanager

import (
	"context"
	"database/sql"

	"github.com/zavier/pulsetempo/internal/dbx"
	"github.com/zavier/pulsetempo/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes the schema migration hook run at startup.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
