package config

import (
	"github.com/rbac-console/rbac-console/internal/logger"
)

// Supported values for Auth.PasswordHash.
const (
	HashBcrypt   = "bcrypt"
	HashArgon2id = "argon2id"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	APIPrefix      string // route group of the JSON api, e.g. /api
	AssetPrefix    string // public static asset path, e.g. /static
	StaticDir      string // local directory served under AssetPrefix, empty disables
	CheckAliveURI  string // liveness probe path
}

// Auth holds credential and token settings.
type Auth struct {
	JWTSecret    string `toml:"-" json:"-"` // only read from JWT_SECRET
	PasswordHash string // bcrypt or argon2id
	BcryptCost   int
}

// Seed describes the optional bootstrap admin account.
type Seed struct {
	AdminEmail    string
	AdminPassword string
	AdminRole     string // role created and granted to the admin, empty skips
}
