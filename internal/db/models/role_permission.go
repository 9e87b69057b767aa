package models

import "time"

// RolePermission represents the many-to-many relationship between roles and permissions.
// The composite primary key keeps each (role, permission) pair unique.
// When either side is deleted, the mapping is removed as well (CASCADE).
type RolePermission struct {
	// RoleID is the ID of the role in this mapping.
	RoleID string `gorm:"primaryKey;size:36;column:role_id"`
	// PermissionID is the ID of the permission in this mapping.
	PermissionID string `gorm:"primaryKey;size:36;column:permission_id;index"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the permission was granted to the role.
	CreatedAt time.Time
}

// TableName specifies the database table name for the RolePermission model.
// This overrides GORM's default pluralized table naming.
func (RolePermission) TableName() string {
	return "role_permissions"
}
