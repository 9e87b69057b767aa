// Package user provides the user role membership endpoints.
package user

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/web/handler"
	authmiddleware "github.com/rbac-console/rbac-console/internal/web/middleware/auth"
)

const (
	// Path is the base path for users.
	Path = "/users"
	// RolesPath lists and replaces the roles of a user.
	RolesPath = Path + "/:" + handler.ParamID + "/roles"
	// PermissionsPath lists the effective permissions of a user.
	PermissionsPath = Path + "/:" + handler.ParamID + "/permissions"

	// MsgRolesAssigned acknowledges a role assignment.
	MsgRolesAssigned = "Roles assigned to user"
	// MsgRoleIDsNotArray is returned when roleIds is missing or not an array.
	MsgRoleIDsNotArray = "roleIds must be an array"

	msgFailedLoadRoles = "Failed to load user roles"
	msgFailedAssign    = "Failed to assign roles"
	msgFailedLoadPerms = "Failed to load user permissions"
)

// Directory stores role memberships.
type Directory interface {
	UserRoles(ctx context.Context, userID string) (*directory.UserWithRoles, error)
	AssignRolesToUser(ctx context.Context, userID string, roleIDs []string) error
	UserPermissions(ctx context.Context, userID string) (*directory.UserWithPermissions, error)
}

// Service manages the roles of users.
type Service struct {
	dir Directory
}

type assignInput struct {
	RoleIDs json.RawMessage `json:"roleIds"`
}

// New creates the user handler.
func New(dir Directory) *Service {
	if dir == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	return &Service{dir: dir}
}

// Init registers routes.
func (s *Service) Init(router fiber.Router) {
	router.Get(RolesPath, s.Roles)
	router.Post(RolesPath, s.AssignRoles)
	router.Get(PermissionsPath, s.Permissions)
}

// Roles returns the user with their roles.
func (s *Service) Roles(c *fiber.Ctx) error {
	user, err := s.dir.UserRoles(c.UserContext(), c.Params(handler.ParamID))
	if err != nil {
		return handler.Error(c, err, msgFailedLoadRoles)
	}

	return c.JSON(user)
}

// AssignRoles replaces the roles of a user with the given list.
func (s *Service) AssignRoles(c *fiber.Ctx) error {
	input := new(assignInput)
	if err := handler.Bind(c, input); err != nil {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	ids, err := handler.IDList(input.RoleIDs)
	if err != nil {
		return handler.Message(c, fiber.StatusBadRequest, MsgRoleIDsNotArray)
	}

	userID := c.Params(handler.ParamID)
	if err := s.dir.AssignRolesToUser(c.UserContext(), userID, ids); err != nil {
		return handler.Error(c, err, msgFailedAssign)
	}

	log.Info().
		Str("user", userID).
		Strs("roles", ids).
		Str("by", authmiddleware.Subject(c)).
		Msg("user roles replaced")

	return handler.Message(c, fiber.StatusOK, MsgRolesAssigned)
}

// Permissions returns the distinct permissions the roles of a user grant.
// The list is informational, no request is authorised against it.
func (s *Service) Permissions(c *fiber.Ctx) error {
	user, err := s.dir.UserPermissions(c.UserContext(), c.Params(handler.ParamID))
	if err != nil {
		return handler.Error(c, err, msgFailedLoadPerms)
	}

	return c.JSON(user)
}
