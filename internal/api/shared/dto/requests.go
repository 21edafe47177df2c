package dto

import (
	"errors"
	"strings"

	"github.com/stoneyard/remnant-portal/internal/domain"
)

// CreateHoldRequestBody is the body of POST /api/hold_requests
type CreateHoldRequestBody struct {
	RemnantID     int64  `json:"remnant_id"`
	ClientName    string `json:"client_name"`
	ClientContact string `json:"client_contact"`
}

// Validate checks the request body for required fields
func (r *CreateHoldRequestBody) Validate() error {
	if r.RemnantID <= 0 {
		return errors.New("remnant_id is required")
	}
	if strings.TrimSpace(r.ClientName) == "" {
		return errors.New("client_name is required")
	}
	if strings.TrimSpace(r.ClientContact) == "" {
		return errors.New("client_contact is required")
	}
	return nil
}

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request body for required fields
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

// UpdateRemnantRequest is the body of POST /api/admin_remnants/:id.
// Nil fields are left untouched.
type UpdateRemnantRequest struct {
	Material  *string `json:"material,omitempty"`
	Name      *string `json:"name,omitempty"`
	Status    *string `json:"status,omitempty"`
	OwnerName *string `json:"owner_name,omitempty"`
}

// Validate checks that a provided status is one of the known display statuses
func (r *UpdateRemnantRequest) Validate() error {
	if r.Status == nil {
		return nil
	}
	switch domain.RemnantStatus(*r.Status) {
	case domain.RemnantStatusAvailable, domain.RemnantStatusPending,
		domain.RemnantStatusOnHold, domain.RemnantStatusSold:
		return nil
	default:
		return errors.New("unknown remnant status: " + *r.Status)
	}
}
