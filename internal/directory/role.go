package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/db/models"
)

// RoleUpdate holds the fields to change. Nil fields are left as they are.
type RoleUpdate struct {
	Name        *string
	Description *string
}

// CreateRole stores a new role with a unique name and no permissions.
func (s *Service) CreateRole(ctx context.Context, name string, description *string) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}

	role := models.Role{
		Name:          name,
		Description:   normalizeDescription(description),
		CreatedAt:     s.now(),
		PermissionIDs: []string{},
	}

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Role{}, name, "")
		if err != nil {
			return err
		}

		if taken {
			return ErrRoleExists
		}

		return tx.Create(&role).Error
	})
	if err != nil {
		return nil, roleWriteError(err)
	}

	return &role, nil
}

// GetRole returns the role with id including its permission ids.
func (s *Service) GetRole(ctx context.Context, id string) (*models.Role, error) {
	db := s.session(ctx)

	var role models.Role
	if err := db.First(&role, whereID, id).Error; err != nil {
		return nil, roleReadError(err)
	}

	roles := []models.Role{role}
	if err := fillPermissionIDs(db, roles); err != nil {
		return nil, err
	}

	return &roles[0], nil
}

// ListRoles returns all roles with their permission ids, newest first.
func (s *Service) ListRoles(ctx context.Context) ([]models.Role, error) {
	db := s.session(ctx)

	roles := make([]models.Role, 0)
	if err := db.Order(orderNewestFirst).Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	if err := fillPermissionIDs(db, roles); err != nil {
		return nil, err
	}

	return roles, nil
}

// UpdateRole applies a partial update to the role with id.
func (s *Service) UpdateRole(ctx context.Context, id string, update RoleUpdate) (*models.Role, error) {
	var role models.Role

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&role, whereID, id).Error; err != nil {
			return roleReadError(err)
		}

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return ErrRoleNameRequired
			}

			taken, err := nameTaken(tx, &models.Role{}, name, id)
			if err != nil {
				return err
			}

			if taken {
				return ErrRoleExists
			}

			role.Name = name
		}

		if update.Description != nil {
			role.Description = normalizeDescription(update.Description)
		}

		if err := tx.Save(&role).Error; err != nil {
			return err
		}

		roles := []models.Role{role}
		if err := fillPermissionIDs(tx, roles); err != nil {
			return err
		}

		role = roles[0]

		return nil
	})
	if err != nil {
		return nil, roleWriteError(err)
	}

	return &role, nil
}

// DeleteRole removes the role with id together with its permission bindings
// and user memberships.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Select("id").First(&role, whereID, id).Error; err != nil {
			return roleReadError(err)
		}

		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to delete permission bindings: %w", err)
		}

		if err := tx.Where("role_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to delete user memberships: %w", err)
		}

		if err := tx.Delete(&models.Role{}, whereID, id).Error; err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}

		return nil
	})
}

// fillPermissionIDs loads the permission ids of every role in one query.
// Roles without permissions get an empty, non-nil slice.
func fillPermissionIDs(tx *gorm.DB, roles []models.Role) error {
	if len(roles) == 0 {
		return nil
	}

	ids := make([]string, len(roles))
	for i := range roles {
		ids[i] = roles[i].ID
		roles[i].PermissionIDs = []string{}
	}

	var bindings []models.RolePermission
	if err := tx.Where("role_id IN ?", ids).Order("created_at").Find(&bindings).Error; err != nil {
		return fmt.Errorf("failed to load role permissions: %w", err)
	}

	byRole := make(map[string][]string, len(roles))
	for _, b := range bindings {
		byRole[b.RoleID] = append(byRole[b.RoleID], b.PermissionID)
	}

	for i := range roles {
		if pids, ok := byRole[roles[i].ID]; ok {
			roles[i].PermissionIDs = pids
		}
	}

	return nil
}

func roleReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoleNotFound
	}

	return err
}

// roleWriteError maps a lost unique race to ErrRoleExists.
func roleWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoleExists
	}

	return err
}
