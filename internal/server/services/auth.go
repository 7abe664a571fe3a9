// Package services contains server-side business logic. This file implements
// AuthService, which composes the identity verifier, password hasher, user
// directory and token service into the four authentication flows.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/zavier/pulsetempo/internal/common"
	"github.com/zavier/pulsetempo/internal/cryptox"
	"github.com/zavier/pulsetempo/internal/server/apple"
	"github.com/zavier/pulsetempo/internal/server/auth"
	"github.com/zavier/pulsetempo/internal/server/models"
	"github.com/zavier/pulsetempo/internal/server/repositories/users"
)

// IdentityVerifier validates a federated identity token and extracts the
// provider's stable subject and optional email.
type IdentityVerifier interface {
	Verify(ctx context.Context, identityToken string) (*apple.Identity, error)
}

// AuthService provides the authentication flows:
//   - AppleLogin: federated login-or-register
//   - Register / Login: local accounts
//   - Refresh: refresh-token exchange
//
// Each request is handled independently; there is no cross-request state.
type AuthService struct {
	users    users.Repository
	verifier IdentityVerifier
	tokens   *auth.Service
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(users users.Repository, verifier IdentityVerifier, tokens *auth.Service) *AuthService {
	return &AuthService{users: users, verifier: verifier, tokens: tokens}
}

// AppleLogin verifies the identity token, resolves or creates the user by the
// provider's subject, and issues a token pair. The provider's email claim is
// preferred over any client-supplied email. Two concurrent first logins for
// the same subject converge on a single row; both receive pairs for the same
// user id.
func (s *AuthService) AppleLogin(ctx context.Context, identityToken string, email, firstName, lastName *string) (*auth.Pair, error) {
	ident, err := s.verifier.Verify(ctx, identityToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByAppleSub(ctx, ident.Subject)
	if errors.Is(err, common.ErrorNotFound) {
		newUser := &models.User{
			AppleSub:  &ident.Subject,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		}
		if ident.Email != "" {
			newUser.Email = &ident.Email
		}
		user, err = s.users.CreateFederated(ctx, newUser)
	}
	if err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user.ID)
}

// Register creates a local account. Conflicts are reported per attribute:
// common.ErrEmailTaken or common.ErrUsernameTaken. A uniqueness race lost at
// insert time surfaces as common.ErrorAlreadyExists; no row is created.
func (s *AuthService) Register(ctx context.Context, email, username, password string, firstName, lastName *string) (*auth.Pair, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.CreateLocal(ctx, &models.User{
		Email:        &email,
		Username:     &username,
		PasswordHash: &hash,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user.ID)
}

// Login resolves the identifier against email or username and verifies the
// password. An unknown identifier, a federated-only account (no password
// hash) and a wrong password all yield the same common.ErrInvalidCredentials
// so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*auth.Pair, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == nil || !cryptox.CheckPassword(password, *user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.tokens.IssuePair(user.ID)
}

// Refresh exchanges a valid refresh token for a fresh pair. The old refresh
// token stays valid until its natural expiry; there is no revocation store.
// A subject that no longer resolves to a user yields common.ErrorNotFound.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.Pair, error) {
	subject, err := s.tokens.Decode(refreshToken, auth.KindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user.ID)
}

// CurrentUser loads the profile of an already-authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
