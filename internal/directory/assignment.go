package directory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rbac-console/rbac-console/internal/db/models"
)

// RoleWithPermissions is a role and the permissions bound to it.
type RoleWithPermissions struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Permissions []models.Permission `json:"permissions"`
}

// UserWithRoles is a user and the roles granted to them.
type UserWithRoles struct {
	ID    string        `json:"id"`
	Email string        `json:"email"`
	Roles []models.Role `json:"roles"`
}

// UserWithPermissions is a user and the permissions their roles grant.
type UserWithPermissions struct {
	ID          string              `json:"id"`
	Email       string              `json:"email"`
	Permissions []models.Permission `json:"permissions"`
}

// AssignPermissionsToRole binds permissionIDs to the role. Pairs that already
// exist are skipped, bindings not listed are kept.
func (s *Service) AssignPermissionsToRole(ctx context.Context, roleID string, permissionIDs []string) error {
	ids := uniqueIDs(permissionIDs)

	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := roleExists(tx, roleID); err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := allExist(tx, &models.Permission{}, ids, ErrPermissionNotFound); err != nil {
			return err
		}

		now := s.now()
		bindings := make([]models.RolePermission, len(ids))

		for i, id := range ids {
			bindings[i] = models.RolePermission{RoleID: roleID, PermissionID: id, CreatedAt: now}
		}

		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(&bindings).Error
		if err != nil {
			return fmt.Errorf("failed to bind permissions: %w", err)
		}

		return nil
	})
}

// RemovePermissionFromRole unbinds a single permission. Removing a pair that
// does not exist is not an error.
func (s *Service) RemovePermissionFromRole(ctx context.Context, roleID, permissionID string) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := roleExists(tx, roleID); err != nil {
			return err
		}

		err := tx.Where("role_id = ? AND permission_id = ?", roleID, permissionID).
			Delete(&models.RolePermission{}).Error
		if err != nil {
			return fmt.Errorf("failed to unbind permission: %w", err)
		}

		return nil
	})
}

// RolePermissions returns the role with its permissions materialised.
func (s *Service) RolePermissions(ctx context.Context, roleID string) (*RoleWithPermissions, error) {
	db := s.session(ctx)

	var role models.Role
	if err := db.First(&role, whereID, roleID).Error; err != nil {
		return nil, roleReadError(err)
	}

	permissions := make([]models.Permission, 0)

	err := db.Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name").
		Find(&permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}

	return &RoleWithPermissions{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
	}, nil
}

// AssignRolesToUser replaces the roles of the user with roleIDs.
// An empty list removes every role.
func (s *Service) AssignRolesToUser(ctx context.Context, userID string, roleIDs []string) error {
	ids := uniqueIDs(roleIDs)

	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, userID); err != nil {
			return err
		}

		if len(ids) > 0 {
			if err := allExist(tx, &models.Role{}, ids, ErrRoleNotFound); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to clear user roles: %w", err)
		}

		if len(ids) == 0 {
			return nil
		}

		now := s.now()
		memberships := make([]models.UserRole, len(ids))

		for i, id := range ids {
			memberships[i] = models.UserRole{UserID: userID, RoleID: id, CreatedAt: now}
		}

		if err := tx.Omit(clause.Associations).Create(&memberships).Error; err != nil {
			return fmt.Errorf("failed to assign roles: %w", err)
		}

		return nil
	})
}

// UserRoles returns the user with their roles materialised.
func (s *Service) UserRoles(ctx context.Context, userID string) (*UserWithRoles, error) {
	db := s.session(ctx)

	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}

	roles := make([]models.Role, 0)

	err = db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}

	if err := fillPermissionIDs(db, roles); err != nil {
		return nil, err
	}

	return &UserWithRoles{ID: user.ID, Email: user.Email, Roles: roles}, nil
}

// UserPermissions returns the distinct permissions granted to the user
// through all of their roles.
func (s *Service) UserPermissions(ctx context.Context, userID string) (*UserWithPermissions, error) {
	db := s.session(ctx)

	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}

	permissions := make([]models.Permission, 0)

	err = db.Model(&models.Permission{}).
		Distinct("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("permissions.name").
		Find(&permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user permissions: %w", err)
	}

	return &UserWithPermissions{ID: user.ID, Email: user.Email, Permissions: permissions}, nil
}

func roleExists(tx *gorm.DB, id string) error {
	var role models.Role
	if err := tx.Select("id").First(&role, whereID, id).Error; err != nil {
		return roleReadError(err)
	}

	return nil
}

func findUser(tx *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := tx.Select("id", "email").First(&user, whereID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}

// allExist returns notFound unless every id matches a row of model.
// ids must be free of duplicates.
func allExist(tx *gorm.DB, model interface{}, ids []string, notFound error) error {
	var count int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}

	if count != int64(len(ids)) {
		return notFound
	}

	return nil
}
