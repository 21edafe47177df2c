package dto

import "github.com/stoneyard/remnant-portal/internal/store/schema"

// MessageResponse is a simple confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

// HoldCreatedResponse is returned by POST /api/hold_requests
type HoldCreatedResponse struct {
	Message     string             `json:"message"`
	HoldRequest schema.HoldRequest `json:"holdRequest"`
}

// MeResponse is returned by GET /api/me
type MeResponse struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	OwnerName string `json:"owner_name"`
}
