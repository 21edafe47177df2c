package domain

import "errors"

var (
	// ErrRemnantNotFound is returned when a referenced remnant does not exist
	// or is excluded from customer-facing listings
	ErrRemnantNotFound = errors.New("remnant not found")

	// ErrHoldNotFound is returned when a referenced hold request does not exist
	ErrHoldNotFound = errors.New("hold request not found")

	// ErrHoldAlreadyResolved is returned when an approve/reject call targets a
	// hold that is already in a terminal state
	ErrHoldAlreadyResolved = errors.New("hold request already resolved")

	// ErrPendingHoldExists is returned when a remnant already carries an
	// outstanding pending hold request
	ErrPendingHoldExists = errors.New("remnant already has a pending hold request")

	// ErrRemnantUnavailable is returned when a hold is requested against a
	// remnant that is not in the Available state
	ErrRemnantUnavailable = errors.New("remnant is not available")
)
