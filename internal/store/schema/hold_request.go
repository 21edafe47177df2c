package schema

import (
	"time"

	"github.com/stoneyard/remnant-portal/internal/domain"
)

// HoldRequest represents the hold_requests table - a customer-initiated
// reservation request against a remnant. Rows are never deleted; resolved
// requests remain as an audit trail.
//
// At most one pending request may exist per remnant, enforced by the partial
// unique index uniq_hold_requests_pending_remnant (see db/init_pg_db.sql).
type HoldRequest struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RemnantID int64 `gorm:"column:remnant_id;not null;index" json:"remnant_id"`
	// ClientName and ClientContact identify the requesting customer
	ClientName    string `gorm:"column:client_name;not null;type:text" json:"client_name"`
	ClientContact string `gorm:"column:client_contact;not null;type:text" json:"client_contact"`
	// Status follows pending -> approved | rejected, both terminal
	Status domain.HoldStatus `gorm:"column:status;not null;type:text;default:'pending'" json:"status"`
	// ApprovedAt is set only when the request is approved
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null;default:now();index" json:"created_at"`
}

// TableName specifies the table name for the HoldRequest model
func (HoldRequest) TableName() string {
	return "hold_requests"
}

// HoldRequestWithRemnant is the denormalized admin listing row joining a hold
// request with the display fields of its remnant
type HoldRequestWithRemnant struct {
	HoldRequest
	RemnantMaterial string `gorm:"column:remnant_material" json:"remnant_material"`
	RemnantName     string `gorm:"column:remnant_name" json:"remnant_name"`
	RemnantOwner    string `gorm:"column:remnant_owner" json:"remnant_owner"`
}
