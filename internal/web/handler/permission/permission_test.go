package permission

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbac-console/rbac-console/internal/db/dbtest"
	"github.com/rbac-console/rbac-console/internal/db/models"
	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/web/handler"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	New(directory.NewService(dbtest.Open(t))).Init(app.Group("/api"))

	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

func message(t *testing.T, raw []byte) string {
	t.Helper()

	var m handler.MessageResponse
	require.NoError(t, json.Unmarshal(raw, &m))

	return m.Message
}

func TestCreateDuplicate(t *testing.T) {
	app := newTestApp(t)

	status, raw := call(t, app, fiber.MethodPost, "/api/permissions", `{"name":"edit:articles"}`)
	require.Equal(t, http.StatusCreated, status)

	var created models.Permission
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "edit:articles", created.Name)
	assert.Nil(t, created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	status, raw = call(t, app, fiber.MethodPost, "/api/permissions", `{"name":"edit:articles"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Permission already exists", message(t, raw))
}

func TestCreateValidation(t *testing.T) {
	app := newTestApp(t)

	status, raw := call(t, app, fiber.MethodPost, "/api/permissions", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Permission name is required", message(t, raw))

	status, raw = call(t, app, fiber.MethodPost, "/api/permissions", `[]`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, handler.MsgInvalidBody, message(t, raw))

	status, raw = call(t, app, fiber.MethodPost, "/api/permissions", `{"name":"`+strings.Repeat("x", 101)+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name must be at most 100 characters", message(t, raw))
}

func TestCRUD(t *testing.T) {
	app := newTestApp(t)

	_, raw := call(t, app, fiber.MethodPost, "/api/permissions", `{"name":"read","description":"may read"}`)

	var p models.Permission
	require.NoError(t, json.Unmarshal(raw, &p))

	status, raw := call(t, app, fiber.MethodPut, "/api/permissions/"+p.ID, `{"name":"read:all"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "read:all", p.Name)
	require.NotNil(t, p.Description)
	assert.Equal(t, "may read", *p.Description)

	status, raw = call(t, app, fiber.MethodGet, "/api/permissions", "")
	require.Equal(t, http.StatusOK, status)

	var list []models.Permission
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	status, raw = call(t, app, fiber.MethodDelete, "/api/permissions/"+p.ID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, MsgDeleted, message(t, raw))

	status, raw = call(t, app, fiber.MethodGet, "/api/permissions/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Permission not found", message(t, raw))
}

func TestMissingIDIsNotFound(t *testing.T) {
	app := newTestApp(t)

	for _, method := range []string{fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete} {
		status, raw := call(t, app, method, "/api/permissions/missing", `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, status, method)
		assert.Equal(t, "Permission not found", message(t, raw), method)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	app := newTestApp(t)

	status, raw := call(t, app, fiber.MethodGet, "/api/permissions", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}
