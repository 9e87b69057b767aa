// Package daemon assembles the services of the console and runs them.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rbac-console/rbac-console/internal/auth"
	"github.com/rbac-console/rbac-console/internal/config"
	"github.com/rbac-console/rbac-console/internal/db"
	"github.com/rbac-console/rbac-console/internal/directory"
	"github.com/rbac-console/rbac-console/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	db         *gorm.DB
}

// Start serves http until a shutdown signal arrives.
func (d *Daemon) Start() error {
	done := make(chan error, 1)

	go func() {
		done <- d.webService.Start()
	}()

	go d.webService.WaitShutdown()

	err := <-done

	if sqlDB, dbErr := d.db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	return err
}

// New creates a new Daemon instance with the provided configuration.
// It connects and migrates the database and seeds the bootstrap admin.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(gdb); err != nil {
		return nil, err
	}

	deps, err := newDeps(cfg, gdb)
	if err != nil {
		return nil, err
	}

	if err = seed(context.Background(), cfg.Seed, deps.Provider, deps.Directory); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Str("passwordHash", cfg.Auth.PasswordHash).
		Msg("daemon initialised")

	webService := web.New(cfg, deps)
	webService.SetFastShutdown(cfg.DevMode)

	return &Daemon{
		webService: webService,
		db:         gdb,
	}, nil
}

func newDeps(cfg *config.Config, gdb *gorm.DB) (web.Deps, error) {
	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHash, cfg.Auth.BcryptCost)
	if err != nil {
		return web.Deps{}, err
	}

	tokens, err := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return web.Deps{}, err
	}

	provider, err := auth.NewLocalProvider(gdb, hasher, tokens)
	if err != nil {
		return web.Deps{}, err
	}

	return web.Deps{
		Provider:  provider,
		Tokens:    tokens,
		Directory: directory.NewService(gdb),
	}, nil
}
