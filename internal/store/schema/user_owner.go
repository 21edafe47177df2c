package schema

// UserOwner represents the user_owners table - the local role/owner mapping for
// an identity verified by the external provider. Provisioned out of band and
// read-only from the application's perspective.
type UserOwner struct {
	// UserID is the provider subject for the authenticated identity
	UserID string `gorm:"column:user_id;primaryKey;type:text" json:"user_id"`
	// Role gates access to the administration surface (e.g. "admin")
	Role string `gorm:"column:role;not null;type:text" json:"role"`
	// OwnerName is the owner scope the identity belongs to
	OwnerName string `gorm:"column:owner_name;not null;type:text" json:"owner_name"`
}

// TableName specifies the table name for the UserOwner model
func (UserOwner) TableName() string {
	return "user_owners"
}
