package store

import (
	"context"
	"time"

	"github.com/stoneyard/remnant-portal/internal/domain"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

// RemnantFilter holds the optional criteria for customer-facing listings.
// Zero values impose no constraint; criteria combine with AND across
// dimensions and OR within Materials.
type RemnantFilter struct {
	// Materials restricts to remnants whose material is any of the given values
	Materials []string
	// Stone is a case-insensitive substring match on the stone name
	Stone string
	// Status is a case-insensitive substring match on the display status
	Status string
	// Color is a case-insensitive equality match on the color tag
	Color string
	// MinWidth and MinHeight are inclusive lower bounds; nil means not provided
	MinWidth  *float64
	MinHeight *float64
	// Owner restricts to a single owner scope; empty means all owners
	Owner string
}

// RemnantUpdate holds the admin-editable remnant fields. Nil fields are left
// untouched.
type RemnantUpdate struct {
	Material  *string
	Name      *string
	Status    *domain.RemnantStatus
	OwnerName *string
}

// Store defines the interface for database operations
type Store interface {
	// ListRemnants retrieves active, non-deleted remnants matching the filter,
	// ordered by id descending
	ListRemnants(ctx context.Context, filter RemnantFilter) ([]schema.Remnant, error)
	// ListAllRemnants retrieves the full remnant set for administration,
	// including inactive and soft-deleted rows
	ListAllRemnants(ctx context.Context) ([]schema.Remnant, error)
	// GetRemnantByID retrieves a remnant by id, or nil when absent
	GetRemnantByID(ctx context.Context, id int64) (*schema.Remnant, error)
	// UpdateRemnant applies a partial admin update to a remnant
	UpdateRemnant(ctx context.Context, id int64, update RemnantUpdate) error
	// DeleteRemnant soft-deletes a remnant
	DeleteRemnant(ctx context.Context, id int64) error

	// CreateHoldRequest persists a pending hold and moves the remnant to
	// Pending in a single transaction. Fails with domain.ErrRemnantNotFound,
	// domain.ErrRemnantUnavailable or domain.ErrPendingHoldExists.
	CreateHoldRequest(ctx context.Context, remnantID int64, clientName, clientContact string) (*schema.HoldRequest, error)
	// ApproveHoldRequest transitions a pending hold to approved and the linked
	// remnant to On Hold in a single transaction. Fails with
	// domain.ErrHoldNotFound or domain.ErrHoldAlreadyResolved.
	ApproveHoldRequest(ctx context.Context, holdID int64, approvedAt time.Time) (*schema.HoldRequest, error)
	// RejectHoldRequest transitions a pending hold to rejected and the linked
	// remnant back to Available in a single transaction. Fails with
	// domain.ErrHoldNotFound or domain.ErrHoldAlreadyResolved.
	RejectHoldRequest(ctx context.Context, holdID int64) (*schema.HoldRequest, error)
	// ListHoldRequests retrieves all holds joined with remnant display fields,
	// ordered by creation time descending
	ListHoldRequests(ctx context.Context) ([]schema.HoldRequestWithRemnant, error)

	// GetUserOwner retrieves the role/owner mapping for a provider subject,
	// or nil when no mapping exists
	GetUserOwner(ctx context.Context, userID string) (*schema.UserOwner, error)
}
