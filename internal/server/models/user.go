package models

import "time"

// User is the single identity entity. A user may be reachable through any of
// three independent, individually optional unique attributes: the Apple
// subject, the email, or the username. PasswordHash is set if and only if
// the user can log in locally; its absence marks a federated-only account.
type User struct {
	ID           string
	AppleSub     *string
	Email        *string
	Username     *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
}
