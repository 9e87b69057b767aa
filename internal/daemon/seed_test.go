package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rbac-console/rbac-console/internal/auth"
	"github.com/rbac-console/rbac-console/internal/config"
	"github.com/rbac-console/rbac-console/internal/db/dbtest"
	"github.com/rbac-console/rbac-console/internal/directory"
)

func newSeedDeps(t *testing.T) (*auth.LocalProvider, *directory.Service) {
	t.Helper()

	db := dbtest.Open(t)

	hasher, err := auth.NewPasswordHasher(auth.HashBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := auth.NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)

	provider, err := auth.NewLocalProvider(db, hasher, tokens)
	require.NoError(t, err)

	return provider, directory.NewService(db)
}

func TestSeedCreatesAdmin(t *testing.T) {
	provider, dir := newSeedDeps(t)
	ctx := context.Background()

	cfg := config.Seed{AdminEmail: "admin@example.com", AdminPassword: "changeme", AdminRole: "admin"}
	require.NoError(t, seed(ctx, cfg, provider, dir))

	_, user, err := provider.Login(ctx, "admin@example.com", "changeme")
	require.NoError(t, err)

	roles, err := dir.UserRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles.Roles, 1)
	assert.Equal(t, "admin", roles.Roles[0].Name)

	// a second run leaves the populated table alone
	require.NoError(t, seed(ctx, config.Seed{AdminEmail: "other@example.com"}, provider, dir))

	count, err := provider.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeedReusesExistingRole(t *testing.T) {
	provider, dir := newSeedDeps(t)
	ctx := context.Background()

	existing, err := dir.CreateRole(ctx, "admin", nil)
	require.NoError(t, err)

	require.NoError(t, seed(ctx, config.Seed{AdminEmail: "admin@example.com", AdminRole: "admin"}, provider, dir))

	user, err := provider.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)

	roles, err := dir.UserRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles.Roles, 1)
	assert.Equal(t, existing.ID, roles.Roles[0].ID)
}

func TestSeedDisabled(t *testing.T) {
	provider, dir := newSeedDeps(t)
	ctx := context.Background()

	require.NoError(t, seed(ctx, config.Seed{}, provider, dir))

	count, err := provider.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
