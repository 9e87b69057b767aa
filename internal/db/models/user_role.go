package models

import "time"

// UserRole represents the many-to-many relationship between users and roles.
// Assigning roles to a user replaces the whole set for that user.
type UserRole struct {
	// UserID is the ID of the user in this membership.
	UserID string `gorm:"primaryKey;size:36;column:user_id"`
	// RoleID is the ID of the role in this membership.
	RoleID string `gorm:"primaryKey;size:36;column:role_id;index"`
	// User is the associated user (loaded via foreign key).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the role was granted to the user.
	CreatedAt time.Time
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}
