package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db     *gorm.DB
	hasher *PasswordHasher
	tokens *TokenIssuer

	// dummyHash is verified against when the email is unknown, so a failed
	// login costs the same whether or not the account exists.
	dummyHash string
}

const whereEmail = "email = ?"

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB, hasher *PasswordHasher, tokens *TokenIssuer) (*LocalProvider, error) {
	if db == nil || hasher == nil || tokens == nil {
		return nil, errors.New("db, hasher and tokens must not be nil")
	}

	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}

	return &LocalProvider{
		db:        db,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// Signup creates a user with a hashed password.
func (p *LocalProvider) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	db := p.db.WithContext(ctx)

	var existing models.User

	err := db.Where(whereEmail, email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := p.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
	}

	if err := db.Create(&user).Error; err != nil {
		// a concurrent signup won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate checks email and password against the local database.
// Both failure causes wrap ErrInvalidCredentials.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var user models.User

	err := p.db.WithContext(ctx).Where(whereEmail, email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, _ = p.hasher.Verify(password, p.dummyHash)

		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	match, err := p.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, err
	}

	if !match {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// Login authenticates the user and issues a bearer token.
func (p *LocalProvider) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := p.Authenticate(ctx, email, password)

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidCredentials):
		loginAttempts.WithLabelValues(resultRejected).Inc()
		log.Info().Str("reason", err.Error()).Msg("login rejected")

		return "", nil, err
	default:
		loginAttempts.WithLabelValues(resultError).Inc()

		return "", nil, err
	}

	token, err := p.tokens.Issue(user.ID, user.Email)
	if err != nil {
		loginAttempts.WithLabelValues(resultError).Inc()

		return "", nil, err
	}

	loginAttempts.WithLabelValues(resultSuccess).Inc()

	return token, user, nil
}

// GetUserByEmail retrieves a user by email.
func (p *LocalProvider) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := p.db.WithContext(ctx).Where(whereEmail, email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}

// CountUsers returns the number of accounts.
func (p *LocalProvider) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	err := p.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error

	return count, err
}
