package directory

import "errors"

var (
	// ErrPermissionNameRequired is returned when a permission name is empty or blank.
	ErrPermissionNameRequired = errors.New("permission name is required")
	// ErrPermissionExists is returned when a permission name is already taken.
	ErrPermissionExists = errors.New("permission already exists")
	// ErrPermissionNotFound is returned for an unknown permission id.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrRoleNameRequired is returned when a role name is empty or blank.
	ErrRoleNameRequired = errors.New("role name is required")
	// ErrRoleExists is returned when a role name is already taken.
	ErrRoleExists = errors.New("role already exists")
	// ErrRoleNotFound is returned for an unknown role id.
	ErrRoleNotFound = errors.New("role not found")

	// ErrUserNotFound is returned for an unknown user id.
	ErrUserNotFound = errors.New("user not found")
)
