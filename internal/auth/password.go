package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hash algorithms.
const (
	HashBcrypt   = "bcrypt"
	HashArgon2id = "argon2id"

	// DefaultBcryptCost is the work factor used when none is configured.
	DefaultBcryptCost = 10

	argon2idPrefix = "$argon2id$"

	// bcrypt only reads this many bytes of the password.
	bcryptMaxLen = 72
)

// PasswordHasher hashes new passwords with one algorithm and verifies
// hashes of every supported algorithm, so changing the setting does not
// lock out existing users.
type PasswordHasher struct {
	algorithm  string
	bcryptCost int
}

// NewPasswordHasher returns a hasher for algorithm (bcrypt or argon2id).
// A bcryptCost of zero selects DefaultBcryptCost.
func NewPasswordHasher(algorithm string, bcryptCost int) (*PasswordHasher, error) {
	switch algorithm {
	case HashBcrypt, HashArgon2id:
	case "":
		algorithm = HashBcrypt
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownHashAlgorithm, algorithm)
	}

	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &PasswordHasher{algorithm: algorithm, bcryptCost: bcryptCost}, nil
}

// Algorithm returns the algorithm used for new hashes.
func (h *PasswordHasher) Algorithm() string {
	return h.algorithm
}

// Hash returns the salted one-way hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	if h.algorithm == HashArgon2id {
		hash, err := argon2id.CreateHash(plaintext, argon2id.DefaultParams)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}

		return hash, nil
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil),
// errors are reserved for malformed hashes and library faults.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	if plaintext == "" {
		return false, ErrEmptyPassword
	}

	if strings.HasPrefix(hash, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(plaintext, hash)
		if err != nil {
			return false, fmt.Errorf("failed to verify password: %w", err)
		}

		return match, nil
	}

	if !isBcrypt(hash) {
		return false, ErrUnknownHashAlgorithm
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}

	return true, nil
}

// bcryptInput cuts plaintext to the bytes bcrypt uses; newer x/crypto
// rejects longer input instead of ignoring the tail.
func bcryptInput(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > bcryptMaxLen {
		b = b[:bcryptMaxLen]
	}

	return b
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
