package config

// Supported values for DB.GormEngine.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or the file path for sqlite
	GormEngine string
	URL        string `toml:"-" json:"-"` // full DSN, set from DATABASE_URL

	SlowQueryThreshold int // milliseconds, 0 disables slow query logging
}
