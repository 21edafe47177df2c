package executor

import (
	"context"
	"errors"
	"time"

	"github.com/stoneyard/remnant-portal/internal/api/shared/dto"
	apierrors "github.com/stoneyard/remnant-portal/internal/api/shared/errors"
	"github.com/stoneyard/remnant-portal/internal/domain"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

// CreateHold creates a pending hold request and marks the remnant Pending.
// Both writes happen in one store transaction, so there is no partial-applied
// state to report back.
func (e *executor) CreateHold(ctx context.Context, req dto.CreateHoldRequestBody) (*schema.HoldRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	hold, err := e.store.CreateHoldRequest(ctx, req.RemnantID, req.ClientName, req.ClientContact)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRemnantNotFound):
			return nil, apierrors.NewNotFoundError("Remnant not found")
		case errors.Is(err, domain.ErrPendingHoldExists):
			return nil, apierrors.NewConflictError("Remnant already has a pending hold request")
		case errors.Is(err, domain.ErrRemnantUnavailable):
			return nil, apierrors.NewConflictError("Remnant is not available for holds")
		default:
			return nil, apierrors.NewDatabaseError("Failed to create hold request", err.Error())
		}
	}
	return hold, nil
}

// ApproveHold transitions a pending hold to approved and the remnant to On Hold
func (e *executor) ApproveHold(ctx context.Context, holdID int64) (*schema.HoldRequest, error) {
	hold, err := e.store.ApproveHoldRequest(ctx, holdID, time.Now().UTC())
	if err != nil {
		return nil, mapHoldError(err, "approve")
	}
	return hold, nil
}

// RejectHold transitions a pending hold to rejected and the remnant to Available
func (e *executor) RejectHold(ctx context.Context, holdID int64) (*schema.HoldRequest, error) {
	hold, err := e.store.RejectHoldRequest(ctx, holdID)
	if err != nil {
		return nil, mapHoldError(err, "reject")
	}
	return hold, nil
}

// ListHolds retrieves all hold requests with remnant display fields
func (e *executor) ListHolds(ctx context.Context) ([]schema.HoldRequestWithRemnant, error) {
	holds, err := e.store.ListHoldRequests(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to fetch hold requests", err.Error())
	}
	if holds == nil {
		holds = []schema.HoldRequestWithRemnant{}
	}
	return holds, nil
}

func mapHoldError(err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrHoldNotFound):
		return apierrors.NewNotFoundError("Hold request not found")
	case errors.Is(err, domain.ErrHoldAlreadyResolved):
		return apierrors.NewConflictError("Hold request already resolved")
	default:
		return apierrors.NewDatabaseError("Failed to "+action+" hold request", err.Error())
	}
}
