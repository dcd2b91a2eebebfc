package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
)

// configKeysHelp is appended to the get and set help.
func configKeysHelp() string {
	return "Keys:\n  " + strings.Join(config.Keys(), "\n  ")
}

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Sets a dotted key in the configuration file. The file is validated before it is saved.\n\n" + configKeysHelp(),
		Example: `  footprint config set output.precision 3
  footprint config set lookups.cache_ttl_seconds 12h`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFile()
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			value, _ := cfg.Get(args[0])
			cmd.Printf("Set %s = %s\n", args[0], value)
			return nil
		},
	}
}

// NewConfigGetCmd creates the config get command. It prints the effective
// value, including environment overrides.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a configuration value",
		Long:    "Prints the effective value of a dotted key.\n\n" + configKeysHelp(),
		Example: `  footprint config get output.default_format`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every configuration value",
		Example: `  footprint config list --output json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if outputFormat(cmd) == outputFormatJSON {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}
			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			}
			return nil
		},
	}
}
