// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/rbac-console/rbac-console/internal/config"
	"github.com/rbac-console/rbac-console/internal/logger"
)

var (
	configPath string // directory holding main.toml

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "rbac-console",
		Short: "rbac-console is a role based access control administration backend",
		Long: `rbac-console manages permissions, roles and their assignment to users
behind an email/password login that issues signed bearer tokens.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "directory of main.toml (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initialises logging.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}
