package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a role in the role-based access control (RBAC) system.
// Roles are collections of permissions that can be assigned to users.
type Role struct {
	// ID is the server assigned identifier (uuid).
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Name is the unique name of the role (e.g., "admin", "editor").
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	// Description is an optional human-readable description of the role's purpose.
	Description *string `gorm:"size:255" json:"description"`
	// CreatedAt is the timestamp when the role was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
	// PermissionIDs are the ids of the permissions bound to the role.
	// Derived from role_permissions, never stored on the role row.
	PermissionIDs []string `gorm:"-" json:"permissions"`
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate assigns the identifier.
func (r *Role) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}

	return nil
}
