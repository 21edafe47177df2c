package schema

import (
	"time"

	"gorm.io/gorm"

	"github.com/stoneyard/remnant-portal/internal/domain"
)

// Remnant represents the remnants table - a single piece of stone inventory
type Remnant struct {
	// ID is the stable inventory identifier
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// Material is the material category (Quartz, Granite, Marble, ...)
	Material string `gorm:"column:material;not null;type:text;index" json:"material"`
	// Name is the stone display name
	Name string `gorm:"column:name;not null;type:text" json:"name"`
	// Color is the categorical color tag used by the color filter
	Color string `gorm:"column:color;type:text" json:"color"`
	// Width and Height are the nominal dimensions in inches
	Width  float64 `gorm:"column:width;not null" json:"width"`
	Height float64 `gorm:"column:height;not null" json:"height"`
	// LShape marks a remnant with a secondary rectangular extension
	LShape bool `gorm:"column:l_shape;not null;default:false" json:"l_shape"`
	// LWidth and LHeight describe the secondary extension when LShape is set
	LWidth  *float64 `gorm:"column:l_width" json:"l_width,omitempty"`
	LHeight *float64 `gorm:"column:l_height" json:"l_height,omitempty"`
	// Thickness is the slab thickness in centimeters
	Thickness float64 `gorm:"column:thickness" json:"thickness"`
	// Status must always reflect the most recent resolved hold request
	Status domain.RemnantStatus `gorm:"column:status;not null;type:text;default:'Available'" json:"status"`
	// Image is the image reference shown on the card
	Image string `gorm:"column:image;type:text" json:"image"`
	// OwnerName is the tenant/location partition tag
	OwnerName string `gorm:"column:owner_name;type:text;index" json:"owner_name"`
	// IsActive excludes a remnant from customer-facing listings when false
	IsActive bool `gorm:"column:is_active;not null;default:true" json:"is_active"`
	// LastSeenAt records when the inventory sync last observed this remnant
	LastSeenAt *time.Time     `gorm:"column:last_seen_at" json:"last_seen_at,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`

	// Associations
	HoldRequests []HoldRequest `gorm:"foreignKey:RemnantID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the Remnant model
func (Remnant) TableName() string {
	return "remnants"
}
