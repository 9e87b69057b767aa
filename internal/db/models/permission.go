package models

import (
	"time"

	"gorm.io/gorm"
)

// Permission is a named access right, e.g. "edit:articles".
// Permissions are bound to roles through role_permissions.
type Permission struct {
	// ID is the server assigned identifier (uuid).
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Name is the unique permission name.
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	// Description optionally explains what this permission grants.
	Description *string `gorm:"size:255" json:"description"`
	// CreatedAt is the timestamp when the permission was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Permission model.
// This overrides GORM's default pluralized table naming.
func (Permission) TableName() string {
	return "permissions"
}

// BeforeCreate assigns the identifier.
func (p *Permission) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}

	return nil
}
