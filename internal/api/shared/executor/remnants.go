package executor

import (
	"context"
	"errors"

	"github.com/stoneyard/remnant-portal/internal/api/shared/dto"
	apierrors "github.com/stoneyard/remnant-portal/internal/api/shared/errors"
	"github.com/stoneyard/remnant-portal/internal/domain"
	"github.com/stoneyard/remnant-portal/internal/store"
	"github.com/stoneyard/remnant-portal/internal/store/schema"
)

// ListRemnants retrieves the customer-facing remnant listing for the filter.
// Storage errors surface as a generic database error; no partial result set
// is ever returned.
func (e *executor) ListRemnants(ctx context.Context, filter store.RemnantFilter) ([]schema.Remnant, error) {
	remnants, err := e.store.ListRemnants(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to fetch remnants", err.Error())
	}
	if remnants == nil {
		remnants = []schema.Remnant{}
	}
	return remnants, nil
}

// ListAllRemnants retrieves the full remnant set for administration
func (e *executor) ListAllRemnants(ctx context.Context) ([]schema.Remnant, error) {
	remnants, err := e.store.ListAllRemnants(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to fetch remnants", err.Error())
	}
	if remnants == nil {
		remnants = []schema.Remnant{}
	}
	return remnants, nil
}

// UpdateRemnant applies a partial admin update to a remnant
func (e *executor) UpdateRemnant(ctx context.Context, id int64, req dto.UpdateRemnantRequest) error {
	update := store.RemnantUpdate{
		Material:  req.Material,
		Name:      req.Name,
		OwnerName: req.OwnerName,
	}
	if req.Status != nil {
		status := domain.RemnantStatus(*req.Status)
		update.Status = &status
	}

	err := e.store.UpdateRemnant(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrRemnantNotFound) {
			return apierrors.NewNotFoundError("Remnant not found")
		}
		return apierrors.NewDatabaseError("Failed to update remnant", err.Error())
	}
	return nil
}

// DeleteRemnant soft-deletes a remnant
func (e *executor) DeleteRemnant(ctx context.Context, id int64) error {
	err := e.store.DeleteRemnant(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRemnantNotFound) {
			return apierrors.NewNotFoundError("Remnant not found")
		}
		return apierrors.NewDatabaseError("Failed to delete remnant", err.Error())
	}
	return nil
}
