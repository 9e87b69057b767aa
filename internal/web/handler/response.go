package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/auth"
	"github.com/rbac-console/rbac-console/internal/directory"
)

// MessageResponse is the body of every error and of acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

type problem struct {
	err     error
	status  int
	message string
}

// problems maps domain errors to their status and client message.
// Order matters where errors wrap each other.
var problems = []problem{ //nolint:gochecknoglobals
	{auth.ErrEmptyCredentials, fiber.StatusBadRequest, "Email and password are required"},
	{auth.ErrUserExists, fiber.StatusBadRequest, "User already exists"},
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid credentials"},

	{directory.ErrPermissionNameRequired, fiber.StatusBadRequest, "Permission name is required"},
	{directory.ErrPermissionExists, fiber.StatusBadRequest, "Permission already exists"},
	{directory.ErrPermissionNotFound, fiber.StatusNotFound, "Permission not found"},
	{directory.ErrRoleNameRequired, fiber.StatusBadRequest, "Role name is required"},
	{directory.ErrRoleExists, fiber.StatusBadRequest, "Role already exists"},
	{directory.ErrRoleNotFound, fiber.StatusNotFound, "Role not found"},
	{directory.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
}

// Message writes {message} with status.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(MessageResponse{Message: message})
}

// Error answers a failed operation. Known domain errors get their own status
// and message, everything else is logged and answered with 500 and fallback.
func Error(c *fiber.Ctx, err error, fallback string) error {
	for _, p := range problems {
		if errors.Is(err, p.err) {
			return Message(c, p.status, p.message)
		}
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(fallback)

	return Message(c, fiber.StatusInternalServerError, fallback)
}

// ErrorHandler renders errors escaping the handlers as {message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Message(c, fe.Code, fe.Message)
	}

	return Error(c, err, fiber.ErrInternalServerError.Message)
}
