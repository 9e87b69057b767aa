package user

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/db/dbtest"
	"github.com/rbac-console/rbac-console/internal/db/models"
	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/web/handler"
)

type fixture struct {
	app *fiber.App
	db  *gorm.DB
	dir *directory.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	dir := directory.NewService(db)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	New(dir).Init(app.Group("/api"))

	return &fixture{app: app, db: db, dir: dir}
}

func (f *fixture) call(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	resp, err := f.app.Test(httptest.NewRequest(method, path, r), -1)
	require.NoError(t, err)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

func (f *fixture) role(t *testing.T, name string) string {
	t.Helper()

	r, err := f.dir.CreateRole(context.Background(), name, nil)
	require.NoError(t, err)

	return r.ID
}

func (f *fixture) user(t *testing.T) string {
	t.Helper()

	u := models.User{Email: "ops@example.com", Password: "$2a$04$hash"}
	require.NoError(t, f.db.Create(&u).Error)

	return u.ID
}

func roleNames(t *testing.T, raw []byte) []string {
	t.Helper()

	var got directory.UserWithRoles
	require.NoError(t, json.Unmarshal(raw, &got))

	names := make([]string, 0, len(got.Roles))
	for _, r := range got.Roles {
		names = append(names, r.Name)
	}

	return names
}

func TestAssignRolesReplaces(t *testing.T) {
	f := newFixture(t)

	x, y, z := f.role(t, "x"), f.role(t, "y"), f.role(t, "z")
	uid := f.user(t)
	path := "/api/users/" + uid + "/roles"

	status, _ := f.call(t, fiber.MethodPost, path, `{"roleIds":["`+x+`","`+y+`"]}`)
	require.Equal(t, http.StatusOK, status)

	status, raw := f.call(t, fiber.MethodPost, path, `{"roleIds":["`+z+`"]}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"`+MsgRolesAssigned+`"}`, string(raw))

	status, raw = f.call(t, fiber.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"z"}, roleNames(t, raw))

	status, _ = f.call(t, fiber.MethodPost, path, `{"roleIds":[]}`)
	require.Equal(t, http.StatusOK, status)

	_, raw = f.call(t, fiber.MethodGet, path, "")
	assert.Empty(t, roleNames(t, raw))
}

func TestAssignRolesRejects(t *testing.T) {
	f := newFixture(t)

	uid := f.user(t)
	path := "/api/users/" + uid + "/roles"

	status, raw := f.call(t, fiber.MethodPost, path, `{"roleIds":null}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"roleIds must be an array"}`, string(raw))

	status, raw = f.call(t, fiber.MethodPost, path, `{"roleIds":["missing"]}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Role not found"}`, string(raw))

	status, raw = f.call(t, fiber.MethodPost, "/api/users/missing/roles", `{"roleIds":[]}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"User not found"}`, string(raw))
}

func TestEffectivePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.dir.CreatePermission(ctx, "edit:articles", nil)
	require.NoError(t, err)

	rid := f.role(t, "editor")
	require.NoError(t, f.dir.AssignPermissionsToRole(ctx, rid, []string{p.ID}))

	uid := f.user(t)
	require.NoError(t, f.dir.AssignRolesToUser(ctx, uid, []string{rid}))

	status, raw := f.call(t, fiber.MethodGet, "/api/users/"+uid+"/permissions", "")
	require.Equal(t, http.StatusOK, status)

	var got directory.UserWithPermissions
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "ops@example.com", got.Email)
	require.Len(t, got.Permissions, 1)
	assert.Equal(t, "edit:articles", got.Permissions[0].Name)
}
