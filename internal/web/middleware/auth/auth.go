package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authsvc "github.com/rbac-console/rbac-console/internal/auth"
)

const (
	// LocalsClaims is the fiber.Locals key holding the verified *auth.Claims.
	LocalsClaims = "claims"

	// MsgUnauthorized is returned when the bearer header is missing or malformed.
	MsgUnauthorized = "Unauthorized"
	// MsgInvalidToken is returned when the bearer token does not verify.
	MsgInvalidToken = "Invalid or expired token"

	authNamespace = "/auth"
	bearerScheme  = "Bearer"
)

// Class is the gate decision for a request path.
type Class int

const (
	// NotGated paths are not handled by the gate at all.
	NotGated Class = iota
	// Public paths pass without a token.
	Public
	// Protected paths require a valid bearer token.
	Protected
)

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (*authsvc.Claims, error)
}

// Config configures the gate.
type Config struct {
	Verifier    Verifier
	APIPrefix   string
	AssetPrefix string
}

// Classify returns the gate class of path. Matching ignores case and works
// on whole path segments, so "/api" does not match "/apis".
func (cfg Config) Classify(path string) Class {
	path = strings.ToLower(path)
	api := normalizePrefix(cfg.APIPrefix)

	switch {
	case hasSegmentPrefix(path, api+authNamespace):
		return Public
	case path == "" || path == "/":
		return Public
	case cfg.AssetPrefix != "" && hasSegmentPrefix(path, normalizePrefix(cfg.AssetPrefix)):
		return Public
	case hasSegmentPrefix(path, api):
		return Protected
	default:
		return NotGated
	}
}

// New returns the gate middleware.
func New(cfg Config) fiber.Handler {
	if cfg.Verifier == nil {
		log.Fatal().Msg("auth gate requires a token verifier")
	}

	return func(c *fiber.Ctx) error {
		if cfg.Classify(c.Path()) != Protected {
			return c.Next()
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return reject(c, MsgUnauthorized)
		}

		claims, err := cfg.Verifier.Verify(token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("rejected bearer token")
			return reject(c, MsgInvalidToken)
		}

		c.Locals(LocalsClaims, claims)

		return c.Next()
	}
}

// ClaimsFromContext returns the claims stored by the gate.
func ClaimsFromContext(c *fiber.Ctx) (*authsvc.Claims, bool) {
	claims, ok := c.Locals(LocalsClaims).(*authsvc.Claims)
	return claims, ok && claims != nil
}

// Subject returns the email of the authenticated user or "" for anonymous requests.
func Subject(c *fiber.Ctx) string {
	if claims, ok := ClaimsFromContext(c); ok {
		return claims.Email
	}

	return ""
}

func reject(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func normalizePrefix(prefix string) string {
	prefix = strings.ToLower(strings.TrimRight(prefix, "/"))
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	return prefix
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
