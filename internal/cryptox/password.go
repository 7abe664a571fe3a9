// Package cryptox implements password hashing for local accounts using
// bcrypt. Digests are self-describing (algorithm and cost are embedded),
// so verification needs no extra configuration.
package cryptox

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only consumes the first 72 bytes of input, so longer passwords are
// truncated up front to keep hashing and verification consistent.
const maxPasswordBytes = 72

// truncatePassword cuts the password to maxPasswordBytes of its UTF-8
// encoding. Bytes of a rune split by the cut are dropped rather than kept
// as an invalid trailing sequence.
func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r == utf8.RuneError && size <= 1 {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return b
}

// HashPassword returns a bcrypt digest of the password at the default cost.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the password matches the digest. It returns
// false for a mismatch, a malformed digest, or a digest produced by an
// unsupported scheme; it never fails in any other way.
func CheckPassword(password string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncatePassword(password)) == nil
}
