// Package identity resolves credentials against the external identity
// provider. Token issuance and password verification stay with the provider;
// the application only consumes the resulting session token.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when a sign-in attempt is refused.
	// The error does not reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a session token is absent, malformed,
	// expired or rejected by the provider
	ErrInvalidToken = errors.New("invalid or expired session")
)

// User is a verified identity as reported by the provider
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of a successful password sign-in
type Session struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// Resolver is the capability interface for the external identity provider.
// Core logic depends on this interface so it can be tested with a fake.
type Resolver interface {
	// SignInWithPassword exchanges email+password for a session token.
	// Refused attempts fail with ErrInvalidCredentials.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// ResolveToken verifies a session token and returns the identity it
	// belongs to. Invalid tokens fail with ErrInvalidToken.
	ResolveToken(ctx context.Context, token string) (*User, error)
}
