// Package config handles input from etc/*.toml files and the process environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON holds a JSON document merged over the TOML file.
	EnvConfigJSON = "RBAC_CONSOLE_CONFIG_JSON"

	// EnvJWTSecret is the environment variable holding the token signing secret.
	EnvJWTSecret = "JWT_SECRET"

	// EnvDatabaseURL overrides the DSN built from the [DB] section.
	EnvDatabaseURL = "DATABASE_URL"

	// EnvLogLevel overrides Log.LogLevel.
	EnvLogLevel = "LOG_LEVEL"

	defaultShutDownTime = 5
	defaultAPIPrefix    = "/api"
	defaultAssetPrefix  = "/static"
	defaultCheckAlive   = "/checkalive"
	defaultHash         = HashBcrypt
	defaultBcryptCost   = 10
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyEnv(&c, newEnv())

	return c, validate(&c)
}

// newEnv returns a viper instance bound to the environment variables we read.
func newEnv() *viper.Viper {
	v := viper.New()

	_ = v.BindEnv("jwt_secret", EnvJWTSecret)
	_ = v.BindEnv("database_url", EnvDatabaseURL)
	_ = v.BindEnv("log_level", EnvLogLevel)

	return v
}

// applyEnv copies environment values over the file configuration.
// The signing secret is only ever taken from the environment.
func applyEnv(c *Config, v *viper.Viper) {
	c.Auth.JWTSecret = strings.TrimSpace(v.GetString("jwt_secret"))

	if dbURL := v.GetString("database_url"); dbURL != "" {
		c.DB.URL = dbURL
	}

	if level := v.GetString("log_level"); level != "" {
		c.Log.LogLevel = level
	}
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Auth.JWTSecret == "" {
		return errors.Wrap(ErrJWTSecretMissing, invalidErrMessage)
	}

	switch c.Auth.PasswordHash {
	case "":
		c.Auth.PasswordHash = defaultHash
	case HashBcrypt, HashArgon2id:
	default:
		return errors.Wrap(ErrUnknownPasswordHash, invalidErrMessage)
	}

	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.APIPrefix == "" {
		c.Webserver.APIPrefix = defaultAPIPrefix
	}

	if c.Webserver.AssetPrefix == "" {
		c.Webserver.AssetPrefix = defaultAssetPrefix
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAlive
	}

	return nil
}
