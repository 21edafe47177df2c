package domain

import "strings"

// RemnantStatus represents the display status of a remnant
type RemnantStatus string

const (
	// RemnantStatusAvailable means the remnant can be browsed and held
	RemnantStatusAvailable RemnantStatus = "Available"
	// RemnantStatusPending means a hold request is awaiting admin review
	RemnantStatusPending RemnantStatus = "Pending"
	// RemnantStatusOnHold means an admin approved a hold for the remnant
	RemnantStatusOnHold RemnantStatus = "On Hold"
	// RemnantStatusSold means the remnant has been sold
	RemnantStatusSold RemnantStatus = "Sold"
)

// HoldStatus represents the lifecycle state of a hold request
type HoldStatus string

const (
	// HoldStatusPending is the initial state of a customer hold request
	HoldStatusPending HoldStatus = "pending"
	// HoldStatusApproved is the terminal state after an admin approves
	HoldStatusApproved HoldStatus = "approved"
	// HoldStatusRejected is the terminal state after an admin rejects
	HoldStatusRejected HoldStatus = "rejected"
)

// Terminal reports whether no further transitions are permitted from the status
func (s HoldStatus) Terminal() bool {
	return s == HoldStatusApproved || s == HoldStatusRejected
}

// RoleAdmin is the role required for the administration surface
const RoleAdmin = "admin"

// OwnerAll is the sentinel owner scope that removes the owner constraint
const OwnerAll = "ALL"

// NormalizeOwner trims an owner scope and maps the sentinel to the empty string,
// so an empty result always means "no owner constraint"
func NormalizeOwner(owner string) string {
	owner = strings.TrimSpace(owner)
	if strings.EqualFold(owner, OwnerAll) {
		return ""
	}
	return owner
}
