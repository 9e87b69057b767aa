// Package models contains database model definitions.
package models

import "github.com/google/uuid"

// NewID returns a new random record identifier.
func NewID() string {
	return uuid.NewString()
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Permission{},
		&Role{},
		&RolePermission{},
		&UserRole{},
	}
}
