package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/db/models"
)

// PermissionUpdate holds the fields to change. Nil fields are left as they are.
type PermissionUpdate struct {
	Name        *string
	Description *string
}

// CreatePermission stores a new permission with a unique name.
func (s *Service) CreatePermission(ctx context.Context, name string, description *string) (*models.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPermissionNameRequired
	}

	permission := models.Permission{
		Name:        name,
		Description: normalizeDescription(description),
		CreatedAt:   s.now(),
	}

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Permission{}, name, "")
		if err != nil {
			return err
		}

		if taken {
			return ErrPermissionExists
		}

		return tx.Create(&permission).Error
	})
	if err != nil {
		return nil, permissionWriteError(err)
	}

	return &permission, nil
}

// GetPermission returns the permission with id.
func (s *Service) GetPermission(ctx context.Context, id string) (*models.Permission, error) {
	var permission models.Permission
	if err := s.session(ctx).First(&permission, whereID, id).Error; err != nil {
		return nil, permissionReadError(err)
	}

	return &permission, nil
}

// ListPermissions returns all permissions, newest first.
func (s *Service) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	permissions := make([]models.Permission, 0)
	if err := s.session(ctx).Order(orderNewestFirst).Find(&permissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	return permissions, nil
}

// UpdatePermission applies a partial update to the permission with id.
func (s *Service) UpdatePermission(ctx context.Context, id string, update PermissionUpdate) (*models.Permission, error) {
	var permission models.Permission

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&permission, whereID, id).Error; err != nil {
			return permissionReadError(err)
		}

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return ErrPermissionNameRequired
			}

			taken, err := nameTaken(tx, &models.Permission{}, name, id)
			if err != nil {
				return err
			}

			if taken {
				return ErrPermissionExists
			}

			permission.Name = name
		}

		if update.Description != nil {
			permission.Description = normalizeDescription(update.Description)
		}

		return tx.Save(&permission).Error
	})
	if err != nil {
		return nil, permissionWriteError(err)
	}

	return &permission, nil
}

// DeletePermission removes the permission with id and every role binding to it.
func (s *Service) DeletePermission(ctx context.Context, id string) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		var permission models.Permission
		if err := tx.Select("id").First(&permission, whereID, id).Error; err != nil {
			return permissionReadError(err)
		}

		if err := tx.Where("permission_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to delete role bindings: %w", err)
		}

		if err := tx.Delete(&models.Permission{}, whereID, id).Error; err != nil {
			return fmt.Errorf("failed to delete permission: %w", err)
		}

		return nil
	})
}

func permissionReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPermissionNotFound
	}

	return err
}

// permissionWriteError maps a lost unique race to ErrPermissionExists.
func permissionWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPermissionExists
	}

	return err
}
