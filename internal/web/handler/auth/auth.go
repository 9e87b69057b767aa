// Package auth provides the public login and signup endpoints.
package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/db/models"
	"github.com/rbac-console/rbac-console/internal/web/handler"
)

const (
	// Path is the authentication namespace below the API prefix.
	Path = "/auth"
	// LoginPath is the login route.
	LoginPath = Path + "/login"
	// SignupPath is the signup route.
	SignupPath = Path + "/signup"

	// MsgCredentialsRequired is returned when email or password is missing.
	MsgCredentialsRequired = "Email and password are required"
	// MsgLoginFailed is returned on unexpected login failures.
	MsgLoginFailed = "Login failed"
	// MsgSignupFailed is returned on unexpected signup failures.
	MsgSignupFailed = "Signup failed"
)

// Provider authenticates and registers users.
type Provider interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Signup(ctx context.Context, email, password string) (*models.User, error)
}

// Service handles login and signup.
type Service struct {
	provider Provider
}

type credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupResponse is the body of a successful signup.
type SignupResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// New creates the auth handler.
func New(provider Provider) *Service {
	if provider == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
	}

	return &Service{provider: provider}
}

// Init registers the auth routes.
func (s *Service) Init(router fiber.Router) {
	router.Post(LoginPath, s.Login)
	router.Post(SignupPath, s.Signup)
}

// Login verifies the credentials and returns a bearer token.
func (s *Service) Login(c *fiber.Ctx) error {
	input, err := bindCredentials(c)
	if err != nil {
		return credentialsError(c, err)
	}

	token, _, err := s.provider.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return handler.Error(c, err, MsgLoginFailed)
	}

	return c.JSON(TokenResponse{Token: token})
}

// Signup registers a new user.
func (s *Service) Signup(c *fiber.Ctx) error {
	input, err := bindCredentials(c)
	if err != nil {
		return credentialsError(c, err)
	}

	user, err := s.provider.Signup(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return handler.Error(c, err, MsgSignupFailed)
	}

	log.Info().Str("user", user.Email).Msg("user signed up")

	return c.Status(fiber.StatusCreated).JSON(SignupResponse{ID: user.ID, Email: user.Email})
}

func bindCredentials(c *fiber.Ctx) (*credentials, error) {
	input := new(credentials)
	if err := handler.Bind(c, input); err != nil {
		return nil, err
	}

	if err := handler.Validate(input); err != nil {
		return nil, err
	}

	return input, nil
}

// credentialsError answers a bad body or a missing field. Length limits are
// left to the users table.
func credentialsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, handler.ErrInvalidBody) {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	return handler.Message(c, fiber.StatusBadRequest, MsgCredentialsRequired)
}
