// Package users provides the PostgreSQL-backed user directory: the single
// identity store behind all authentication flows.
package users

import (
	"context"

	"github.com/zavier/pulsetempo/internal/server/models"
)

// Repository is the user directory: lookups over the three optional unique
// identity attributes plus conflict-safe creation for each signup path.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByAppleSub(ctx context.Context, sub string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByIdentifier matches the identifier against either email or
	// username; local login clients do not declare which one they supplied.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)

	// CreateFederated inserts a user for a first federated login. When a
	// concurrent request already created a row for the same subject, the
	// winner's row is returned instead of an error.
	CreateFederated(ctx context.Context, user *models.User) (*models.User, error)

	// CreateLocal inserts a locally registered user. A uniqueness violation
	// on any identity column yields common.ErrorAlreadyExists.
	CreateLocal(ctx context.Context, user *models.User) (*models.User, error)
}
