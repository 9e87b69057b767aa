// Package role provides the role CRUD and role permission endpoints.
package role

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/db/models"
	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/web/handler"
)

const (
	// Path is the base path for roles.
	Path = "/roles"
	// ItemPath is the path of a single role.
	ItemPath = Path + "/:" + handler.ParamID
	// PermissionsPath lists and assigns the permissions of a role.
	PermissionsPath = ItemPath + "/permissions"
	// PermissionPath removes one permission from a role.
	PermissionPath = PermissionsPath + "/:" + ParamPermissionID

	// ParamPermissionID is the route parameter holding a permission id.
	ParamPermissionID = "permissionId"

	// MsgDeleted acknowledges a delete.
	MsgDeleted = "Role deleted"
	// MsgPermissionsAssigned acknowledges a permission assignment.
	MsgPermissionsAssigned = "Permissions assigned to role"
	// MsgPermissionRemoved acknowledges the removal of a permission.
	MsgPermissionRemoved = "Permission removed from role"
	// MsgPermissionIDsNotArray is returned when permissionIds is missing or not an array.
	MsgPermissionIDsNotArray = "permissionIds must be an array"

	msgFailedList     = "Failed to load roles"
	msgFailedGet      = "Failed to load role"
	msgFailedCreate   = "Failed to create role"
	msgFailedUpdate   = "Failed to update role"
	msgFailedDelete   = "Failed to delete role"
	msgFailedAssign   = "Failed to assign permissions"
	msgFailedRemove   = "Failed to remove permission"
	msgFailedLoadPerm = "Failed to load role permissions"
)

// Directory stores roles and their permission bindings.
type Directory interface {
	CreateRole(ctx context.Context, name string, description *string) (*models.Role, error)
	GetRole(ctx context.Context, id string) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	UpdateRole(ctx context.Context, id string, update directory.RoleUpdate) (*models.Role, error)
	DeleteRole(ctx context.Context, id string) error

	RolePermissions(ctx context.Context, roleID string) (*directory.RoleWithPermissions, error)
	AssignPermissionsToRole(ctx context.Context, roleID string, permissionIDs []string) error
	RemovePermissionFromRole(ctx context.Context, roleID, permissionID string) error
}

// Service provides CRUD operations for roles.
type Service struct {
	dir Directory
}

type createInput struct {
	Name        string  `json:"name" validate:"max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type updateInput struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type assignInput struct {
	PermissionIDs json.RawMessage `json:"permissionIds"`
}

// New creates the role handler.
func New(dir Directory) *Service {
	if dir == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	return &Service{dir: dir}
}

// Init registers routes.
func (s *Service) Init(router fiber.Router) {
	router.Get(Path, s.List)
	router.Post(Path, s.Create)
	router.Get(ItemPath, s.Get)
	router.Put(ItemPath, s.Update)
	router.Delete(ItemPath, s.Delete)

	router.Get(PermissionsPath, s.Permissions)
	router.Post(PermissionsPath, s.AssignPermissions)
	router.Delete(PermissionPath, s.RemovePermission)
}

// List returns all roles with their permission ids, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := s.dir.ListRoles(c.UserContext())
	if err != nil {
		return handler.Error(c, err, msgFailedList)
	}

	return c.JSON(roles)
}

// Get returns a single role.
func (s *Service) Get(c *fiber.Ctx) error {
	role, err := s.dir.GetRole(c.UserContext(), c.Params(handler.ParamID))
	if err != nil {
		return handler.Error(c, err, msgFailedGet)
	}

	return c.JSON(role)
}

// Create stores a new role.
func (s *Service) Create(c *fiber.Ctx) error {
	input := new(createInput)
	if err := bind(c, input); err != nil {
		return inputError(c, err)
	}

	role, err := s.dir.CreateRole(c.UserContext(), input.Name, input.Description)
	if err != nil {
		return handler.Error(c, err, msgFailedCreate)
	}

	log.Info().Str("role", role.Name).Msg("role created")

	return c.Status(fiber.StatusCreated).JSON(role)
}

// Update changes name and/or description of a role.
func (s *Service) Update(c *fiber.Ctx) error {
	input := new(updateInput)
	if err := bind(c, input); err != nil {
		return inputError(c, err)
	}

	role, err := s.dir.UpdateRole(c.UserContext(), c.Params(handler.ParamID), directory.RoleUpdate{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return handler.Error(c, err, msgFailedUpdate)
	}

	return c.JSON(role)
}

// Delete removes a role with its bindings and memberships.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params(handler.ParamID)
	if err := s.dir.DeleteRole(c.UserContext(), id); err != nil {
		return handler.Error(c, err, msgFailedDelete)
	}

	log.Info().Str("role", id).Msg("role deleted")

	return handler.Message(c, fiber.StatusOK, MsgDeleted)
}

// Permissions returns the role with its permissions.
func (s *Service) Permissions(c *fiber.Ctx) error {
	role, err := s.dir.RolePermissions(c.UserContext(), c.Params(handler.ParamID))
	if err != nil {
		return handler.Error(c, err, msgFailedLoadPerm)
	}

	return c.JSON(role)
}

// AssignPermissions adds permissions to a role. Existing bindings are kept.
func (s *Service) AssignPermissions(c *fiber.Ctx) error {
	input := new(assignInput)
	if err := handler.Bind(c, input); err != nil {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	ids, err := handler.IDList(input.PermissionIDs)
	if err != nil {
		return handler.Message(c, fiber.StatusBadRequest, MsgPermissionIDsNotArray)
	}

	roleID := c.Params(handler.ParamID)
	if err := s.dir.AssignPermissionsToRole(c.UserContext(), roleID, ids); err != nil {
		return handler.Error(c, err, msgFailedAssign)
	}

	log.Info().Str("role", roleID).Strs("permissions", ids).Msg("permissions assigned")

	return handler.Message(c, fiber.StatusOK, MsgPermissionsAssigned)
}

// RemovePermission removes one permission from a role.
func (s *Service) RemovePermission(c *fiber.Ctx) error {
	roleID := c.Params(handler.ParamID)
	permissionID := c.Params(ParamPermissionID)

	if err := s.dir.RemovePermissionFromRole(c.UserContext(), roleID, permissionID); err != nil {
		return handler.Error(c, err, msgFailedRemove)
	}

	return handler.Message(c, fiber.StatusOK, MsgPermissionRemoved)
}

func bind(c *fiber.Ctx, input interface{}) error {
	if err := handler.Bind(c, input); err != nil {
		return err
	}

	return handler.Validate(input)
}

func inputError(c *fiber.Ctx, err error) error {
	var verr *handler.ValidationError
	if errors.As(err, &verr) {
		return handler.Message(c, fiber.StatusBadRequest, verr.Error())
	}

	return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
}
