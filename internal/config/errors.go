package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrJWTSecretMissing error if the JWT_SECRET environment variable is not set.
	ErrJWTSecretMissing = errors.New("environment variable JWT_SECRET must be set")

	// ErrUnknownPasswordHash error if auth.passwordHash names an unsupported algorithm.
	ErrUnknownPasswordHash = errors.New("toml config auth.passwordHash must be bcrypt or argon2id")

	// ErrUnknownGormEngine error if db.gormEngine names an unsupported driver.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")
)
