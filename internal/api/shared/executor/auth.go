package executor

import (
	"context"
	"errors"

	apierrors "github.com/stoneyard/remnant-portal/internal/api/shared/errors"
	"github.com/stoneyard/remnant-portal/internal/identity"
)

// Login exchanges email+password for a provider session. A refused attempt
// yields a uniform unauthorized error that does not reveal which field was
// wrong.
func (e *executor) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	session, err := e.resolver.SignInWithPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apierrors.NewUnauthorizedError("Invalid credentials")
		}
		return nil, apierrors.NewInternalError("Login failed", err.Error())
	}
	return session, nil
}
