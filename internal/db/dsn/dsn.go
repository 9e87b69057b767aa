// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/config"
)

// Create builds the Data Source Name from the configuration.
// A DATABASE_URL taken from the environment is used as is.
func Create(cfg *config.Config) string {
	if cfg.DB.URL != "" {
		return cfg.DB.URL
	}

	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
		)
		if cfg.DB.Extras != "" {
			out += " " + cfg.DB.Extras
		}

		return out
	case config.EngineSQLite:
		if cfg.DB.Extras == "" {
			return cfg.DB.Name
		}

		return cfg.DB.Name + "?" + cfg.DB.Extras
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Name,
			cfg.DB.Extras,
		)
	}
}

// Dialector returns the gorm driver selected by DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(Create(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(Create(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}
