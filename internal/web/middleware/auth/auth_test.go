package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "github.com/rbac-console/rbac-console/internal/auth"
)

func TestClassify(t *testing.T) {
	cfg := Config{APIPrefix: "/api", AssetPrefix: "/static"}

	tests := []struct {
		path string
		want Class
	}{
		{"/api/auth/login", Public},
		{"/API/Auth/signup", Public},
		{"/api/auth", Public},
		{"/", Public},
		{"/static/app.css", Public},
		{"/api/permissions", Protected},
		{"/api/roles/1/permissions", Protected},
		{"/Api/Roles", Protected},
		{"/api", Protected},
		{"/api/authz", Protected},
		{"/apis", NotGated},
		{"/staticfoo", NotGated},
		{"/dashboard", NotGated},
		{"/metrics", NotGated},
		{"/checkalive", NotGated},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Classify(tt.path))
		})
	}
}

func TestClassifyCustomPrefix(t *testing.T) {
	cfg := Config{APIPrefix: "v1/", AssetPrefix: ""}

	assert.Equal(t, Public, cfg.Classify("/v1/auth/login"))
	assert.Equal(t, Protected, cfg.Classify("/v1/roles"))
	assert.Equal(t, NotGated, cfg.Classify("/api/roles"))
	assert.Equal(t, NotGated, cfg.Classify("/static/app.css"))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func newGatedApp(t *testing.T) (*fiber.App, *authsvc.TokenIssuer) {
	t.Helper()

	issuer, err := authsvc.NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(New(Config{Verifier: issuer, APIPrefix: "/api", AssetPrefix: "/static"}))

	app.Post("/api/auth/login", func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/api/permissions", func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}

		return c.SendString(claims.UserID)
	})
	app.Get("/dashboard", func(c *fiber.Ctx) error { return c.SendString("page") })

	return app, issuer
}

func messageOf(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Message
}

func TestGate(t *testing.T) {
	app, issuer := newGatedApp(t)

	token, err := issuer.Issue("user-1", "ops@example.com")
	require.NoError(t, err)

	other, err := authsvc.NewTokenIssuer([]byte("other-secret"))
	require.NoError(t, err)
	forged, err := other.Issue("user-1", "ops@example.com")
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/permissions", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, MsgUnauthorized, messageOf(t, resp))
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/api/permissions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Token "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, MsgUnauthorized, messageOf(t, resp))
	})

	t.Run("bad signature", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/api/permissions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, MsgInvalidToken, messageOf(t, resp))
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/api/permissions", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "user-1", string(body))
	})

	t.Run("public auth namespace", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/auth/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("pages are not gated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
