package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbac-console/rbac-console/internal/config"
)

func init() { //nolint: gochecknoinits
	configDumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Dump as JSON instead of TOML")

	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration without secrets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			out, err := dumpConfig(c, dumpJSON)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}
)

// dumpConfig renders c with every secret cleared.
func dumpConfig(c config.Config, asJSON bool) (string, error) {
	c.Auth.JWTSecret = ""
	c.DB.Password = ""
	c.DB.URL = ""
	c.Seed.AdminPassword = ""

	if asJSON {
		return config.DumpConfigJSON(&c)
	}

	return config.DumpConfig(&c)
}
