package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zavier/pulsetempo/internal/common"
	"github.com/zavier/pulsetempo/internal/dbx"
	"github.com/zavier/pulsetempo/internal/server/models"
)

const userColumns = `id, apple_sub, email, username, password_hash, first_name, last_name, created_at`

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx). Uniqueness of apple_sub, email and username is
// enforced by database unique indexes, never by in-process locking, because
// multiple server instances may run concurrently.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.AppleSub, &user.Email, &user.Username,
		&user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByAppleSub(ctx context.Context, sub string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE apple_sub = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, sub))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

// CreateFederated inserts a row for a first federated login. Two concurrent
// first logins with the same subject must converge on one row: the insert
// skips on conflict and the loser re-reads the winner's row. A uniqueness
// violation on another column (an email already registered to a different
// account) surfaces as common.ErrorAlreadyExists.
func (r *PostgresRepository) CreateFederated(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.NewString()

	query := `
		INSERT INTO users (id, apple_sub, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (apple_sub) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.AppleSub, user.Email, user.FirstName, user.LastName).Scan(&user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// lost the first-login race, the committed row wins
		return r.GetByAppleSub(ctx, *user.AppleSub)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// CreateLocal inserts a locally registered user. The caller pre-checks email
// and username, but the race loser still lands here: the unique indexes are
// the authority and a violation maps to common.ErrorAlreadyExists.
func (r *PostgresRepository) CreateLocal(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.NewString()

	query := `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName).Scan(&user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
