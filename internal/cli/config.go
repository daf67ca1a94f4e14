package cli

import (
	"github.com/spf13/cobra"

	"github.com/yegors/heliflight/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults, the config file, HELIFLIGHT_*
environment variables and flags have been applied.

	Examples:
	  heliflight config > heliflight.toml
	  HELIFLIGHT_LOG_LEVEL=debug heliflight config`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.LoadOptions{
			ConfigPath:    flagConfig,
			EnvFile:       flagEnvFile,
			FlagOverrides: flagOverrides(cmd.Flags()),
		})
		if err != nil {
			return err
		}
		return config.Encode(cmd.OutOrStdout(), cfg)
	},
}
