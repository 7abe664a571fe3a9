// Package apple verifies Sign in with Apple identity tokens against Apple's
// published signing keys and extracts the stable subject identifier (and
// optional email) used to resolve the user.
package apple

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/zavier/pulsetempo/internal/common"
)

// Identity is the result of a successful verification.
type Identity struct {
	// Subject is Apple's stable opaque identifier for the user.
	Subject string

	// Email is the email claim, empty when Apple does not share it.
	Email string
}

// Verifier validates identity tokens issued by Apple. The JWKS is fetched
// from Apple's well-known endpoint and cached with background refresh; the
// key set rotates infrequently.
type Verifier struct {
	keys     keyfunc.Keyfunc
	issuer   string
	audience string
}

// NewVerifier fetches the provider's key set and returns a verifier bound to
// the expected issuer and audience (the app's bundle identifier). The
// initial fetch happens here so startup fails fast on an unreachable key
// endpoint; ctx also bounds the background refresh goroutine.
func NewVerifier(ctx context.Context, jwksURL, issuer, audience string) (*Verifier, error) {
	keys, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("fetching identity provider keys: %w", err)
	}
	return &Verifier{keys: keys, issuer: issuer, audience: audience}, nil
}

type identityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Verify checks the token's signature against the key matching its key-id
// header and validates issuer, audience and expiry. Claims from a token that
// fails any check are never returned; all failures map to
// common.ErrIdentityVerification so callers treat them as authentication
// failures without retrying.
func (v *Verifier) Verify(ctx context.Context, identityToken string) (*Identity, error) {
	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(identityToken, claims, v.keys.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIdentityVerification, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", common.ErrIdentityVerification)
	}
	return &Identity{Subject: claims.Subject, Email: claims.Email}, nil
}
