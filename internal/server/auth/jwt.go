// Package auth implements the token service: issuing and validating the
// signed, self-contained access and refresh tokens returned by every
// successful authentication flow. Tokens are HS256-signed JWTs carrying the
// user id as the subject; validity is determined entirely by signature and
// expiry, there is no server-side revocation store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zavier/pulsetempo/internal/common"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// refreshTag is the claim value marking refresh tokens. Access tokens omit
// the tag entirely; its absence is what identifies them.
const refreshTag = "refresh"

// Claims are the statements carried by every issued token.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type,omitempty"`
}

// Pair bundles a short-lived access token and a long-lived refresh token.
// The two are independent and carry no reference to each other.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Service issues and validates token pairs with a single symmetric secret
// shared by issuance and validation.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService constructs a token service. The secret is process-wide
// configuration, loaded once at startup.
func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) issue(userID string, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		TokenType: tokenType,
	})
	return token.SignedString(s.secret)
}

// IssueAccess mints a short-lived access token for the given user.
func (s *Service) IssueAccess(userID string) (string, error) {
	return s.issue(userID, "", s.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the given user.
func (s *Service) IssueRefresh(userID string) (string, error) {
	return s.issue(userID, refreshTag, s.refreshTTL)
}

// IssuePair mints the access/refresh pair returned by every successful flow.
func (s *Service) IssuePair(userID string) (*Pair, error) {
	access, err := s.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Decode validates the token's signature, expiry and kind tag, and returns
// its subject. An access token is never accepted where a refresh token is
// required, and vice versa. Expired tokens yield common.ErrTokenExpired;
// every other failure yields common.ErrInvalidToken.
func (s *Service) Decode(tokenString string, kind Kind) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	want := ""
	if kind == KindRefresh {
		want = refreshTag
	}
	if claims.TokenType != want || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
