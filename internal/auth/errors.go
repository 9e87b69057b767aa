package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPassword is returned when hashing or checking an empty plaintext.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrEmptyCredentials is returned when email or password is missing.
	ErrEmptyCredentials = errors.New("email and password are required")

	// ErrUserExists is returned when signing up with an email that is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is the common cause of every failed login.
	// Callers must not tell ErrUserNotFound and ErrInvalidPassword apart to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrInvalidCredentials)

	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	// ErrUnknownHashAlgorithm is returned for an unsupported hash setting or stored hash format.
	ErrUnknownHashAlgorithm = errors.New("unknown password hash algorithm")

	// ErrEmptySecret is returned when constructing a token issuer without a signing secret.
	ErrEmptySecret = errors.New("token signing secret must not be empty")

	// ErrInvalidToken is returned when a token is malformed, badly signed or expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry. It matches ErrInvalidToken.
	ErrExpiredToken = fmt.Errorf("%w: token expired", ErrInvalidToken)
)
