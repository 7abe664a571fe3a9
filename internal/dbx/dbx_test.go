package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)
	return db
}

// insertAndCount exercises a DBTX without knowing whether it is a pool or a
// transaction handle.
func insertAndCount(ctx context.Context, db DBTX, v string) (int, error) {
	if _, err := db.ExecContext(ctx, `INSERT INTO t(v) VALUES (?)`, v); err != nil {
		return 0, err
	}
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM t WHERE v = ?`, v).Scan(&n)
	return n, err
}

func TestDBTX_SatisfiedByDB(t *testing.T) {
	db := setupDB(t)

	n, err := insertAndCount(context.Background(), db, "pool")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDBTX_SatisfiedByTx(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	n, err := insertAndCount(ctx, tx, "tx")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, tx.Rollback())

	// the rollback must leave no trace behind
	var after int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t WHERE v = 'tx'`).Scan(&after))
	require.Equal(t, 0, after)
}
