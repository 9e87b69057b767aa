package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbac-console/rbac-console/internal/config"
)

func TestCreate(t *testing.T) {
	base := config.DB{
		Host:     "db",
		Port:     5432,
		User:     "rbac",
		Password: "pw",
		Name:     "rbac",
	}

	tests := []struct {
		name   string
		engine string
		extras string
		url    string
		want   string
	}{
		{
			name:   "mysql",
			engine: config.EngineMySQL,
			extras: "parseTime=True",
			want:   "rbac:pw@tcp(db:5432)/rbac?parseTime=True",
		},
		{
			name:   "postgres",
			engine: config.EnginePostgres,
			extras: "sslmode=disable",
			want:   "host=db port=5432 user=rbac password=pw dbname=rbac sslmode=disable",
		},
		{
			name:   "sqlite file",
			engine: config.EngineSQLite,
			want:   "rbac",
		},
		{
			name:   "sqlite with pragmas",
			engine: config.EngineSQLite,
			extras: "_pragma=foreign_keys(1)",
			want:   "rbac?_pragma=foreign_keys(1)",
		},
		{
			name:   "database url wins",
			engine: config.EnginePostgres,
			url:    "postgres://rbac@db/rbac",
			want:   "postgres://rbac@db/rbac",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := base
			db.GormEngine = tt.engine
			db.Extras = tt.extras
			db.URL = tt.url

			assert.Equal(t, tt.want, Create(&config.Config{DB: db}))
		})
	}
}

func TestDialector(t *testing.T) {
	for _, engine := range []string{config.EngineMySQL, config.EnginePostgres, config.EngineSQLite} {
		d, err := Dialector(&config.Config{DB: config.DB{GormEngine: engine, Name: "x"}})
		require.NoError(t, err)
		assert.NotNil(t, d)
	}

	_, err := Dialector(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	assert.ErrorIs(t, err, config.ErrUnknownGormEngine)
}
