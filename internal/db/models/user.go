package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a login account of the console.
// Users are created on signup and read on login. Their roles live in user_roles.
type User struct {
	// ID is the server assigned identifier (uuid).
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Email is the unique login name, compared case-sensitively as stored.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	// Password is the salted one-way hash. The plaintext is never stored.
	Password string `gorm:"size:255;not null" json:"-"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the identifier.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}

	return nil
}
