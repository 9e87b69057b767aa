// Package permission provides the permission CRUD endpoints.
package permission

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/db/models"
	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/web/handler"
)

const (
	// Path is the base path for permissions.
	Path = "/permissions"
	// ItemPath is the path of a single permission.
	ItemPath = Path + "/:" + handler.ParamID

	// MsgDeleted acknowledges a delete.
	MsgDeleted = "Permission deleted"

	msgFailedList   = "Failed to load permissions"
	msgFailedGet    = "Failed to load permission"
	msgFailedCreate = "Failed to create permission"
	msgFailedUpdate = "Failed to update permission"
	msgFailedDelete = "Failed to delete permission"
)

// Directory stores permissions.
type Directory interface {
	CreatePermission(ctx context.Context, name string, description *string) (*models.Permission, error)
	GetPermission(ctx context.Context, id string) (*models.Permission, error)
	ListPermissions(ctx context.Context) ([]models.Permission, error)
	UpdatePermission(ctx context.Context, id string, update directory.PermissionUpdate) (*models.Permission, error)
	DeletePermission(ctx context.Context, id string) error
}

// Service provides CRUD operations for permissions.
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

// New creates the permission handler.
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
}

// List returns all permissions, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	permissions, err := s.dir.ListPermissions(c.UserContext())
	if err != nil {
		return handler.Error(c, err, msgFailedList)
	}

	return c.JSON(permissions)
}

// Get returns a single permission.
func (s *Service) Get(c *fiber.Ctx) error {
	permission, err := s.dir.GetPermission(c.UserContext(), c.Params(handler.ParamID))
	if err != nil {
		return handler.Error(c, err, msgFailedGet)
	}

	return c.JSON(permission)
}

// Create stores a new permission.
func (s *Service) Create(c *fiber.Ctx) error {
	input := new(createInput)
	if err := bind(c, input); err != nil {
		return inputError(c, err)
	}

	permission, err := s.dir.CreatePermission(c.UserContext(), input.Name, input.Description)
	if err != nil {
		return handler.Error(c, err, msgFailedCreate)
	}

	log.Info().Str("permission", permission.Name).Msg("permission created")

	return c.Status(fiber.StatusCreated).JSON(permission)
}

// Update changes name and/or description of a permission.
func (s *Service) Update(c *fiber.Ctx) error {
	input := new(updateInput)
	if err := bind(c, input); err != nil {
		return inputError(c, err)
	}

	permission, err := s.dir.UpdatePermission(c.UserContext(), c.Params(handler.ParamID), directory.PermissionUpdate{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return handler.Error(c, err, msgFailedUpdate)
	}

	return c.JSON(permission)
}

// Delete removes a permission and its role bindings.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params(handler.ParamID)
	if err := s.dir.DeletePermission(c.UserContext(), id); err != nil {
		return handler.Error(c, err, msgFailedDelete)
	}

	log.Info().Str("permission", id).Msg("permission deleted")

	return handler.Message(c, fiber.StatusOK, MsgDeleted)
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
