// Package dbtest provides a migrated throwaway database for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/db"
)

// Open returns a migrated sqlite database stored in the test's temp dir.
// A file is used instead of :memory: so every pooled connection sees the same
// data; concurrent writers wait on the busy timeout rather than failing.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenDialector(sqlite.Open(filepath.Join(t.TempDir(), "rbac.db")+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), 0)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}
