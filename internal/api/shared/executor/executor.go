// Package executor carries the business logic behind the REST handlers:
// remnant filtering, the hold request lifecycle and provider sign-in.
package executor

import (
	"context"

	"github.com/stoneyard/remnant-portal/internal/api/shared/dto"
	"github.com/stoneyard/remnant-portal/internal/identity"
	"github.com/stoneyard/remnant-portal/internal/store"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

// Executor is the interface for the API executor
type Executor interface {
	// ListRemnants retrieves the customer-facing remnant listing for the filter
	ListRemnants(ctx context.Context, filter store.RemnantFilter) ([]schema.Remnant, error)
	// ListAllRemnants retrieves the full remnant set for administration
	ListAllRemnants(ctx context.Context) ([]schema.Remnant, error)
	// UpdateRemnant applies a partial admin update to a remnant
	UpdateRemnant(ctx context.Context, id int64, req dto.UpdateRemnantRequest) error
	// DeleteRemnant soft-deletes a remnant
	DeleteRemnant(ctx context.Context, id int64) error

	// CreateHold creates a pending hold request and marks the remnant Pending
	CreateHold(ctx context.Context, req dto.CreateHoldRequestBody) (*schema.HoldRequest, error)
	// ApproveHold transitions a pending hold to approved and the remnant to On Hold
	ApproveHold(ctx context.Context, holdID int64) (*schema.HoldRequest, error)
	// RejectHold transitions a pending hold to rejected and the remnant to Available
	RejectHold(ctx context.Context, holdID int64) (*schema.HoldRequest, error)
	// ListHolds retrieves all hold requests with remnant display fields, newest first
	ListHolds(ctx context.Context) ([]schema.HoldRequestWithRemnant, error)

	// Login exchanges email+password for a provider session
	Login(ctx context.Context, email, password string) (*identity.Session, error)
}

type executor struct {
	store    store.Store
	resolver identity.Resolver
}

// NewExecutor creates a new executor over the data store and identity provider
func NewExecutor(store store.Store, resolver identity.Resolver) Executor {
	return &executor{store: store, resolver: resolver}
}
