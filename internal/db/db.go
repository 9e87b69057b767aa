// Package db opens and migrates the relational store.
package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/config"
	"github.com/rbac-console/rbac-console/internal/db/dsn"
	"github.com/rbac-console/rbac-console/internal/db/models"
	gormadapter "github.com/rbac-console/rbac-console/internal/logger/adapter/gorm"
)

// Open connects to the database configured in cfg.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	return OpenDialector(dialector, time.Duration(cfg.DB.SlowQueryThreshold)*time.Millisecond)
}

// OpenDialector connects with an explicit driver.
// Unique violations are translated to gorm.ErrDuplicatedKey.
func OpenDialector(dialector gorm.Dialector, slowQuery time.Duration) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormadapter.New(slowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
