package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at $FOOTPRINT_HOME/config.yaml for syntax and
semantic correctness: known output format and log level, a household of at
least one person, http(s) lookup endpoints, a positive request rate and a
three-letter upper-case currency.`,
		Example: `  # Validate current configuration
  footprint config validate

  # Validate and show detailed information
  footprint config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := loadConfigFile()
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cfg.ApplyEnvOverrides()

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Printf("Configuration file: %s\n", cfg.Path())
	cmd.Printf("Output:    %s, %d decimals\n", cfg.Output.DefaultFormat, cfg.Output.Precision)
	cmd.Printf("Logging:   level %s\n", cfg.Logging.Level)
	cmd.Printf("Household: %d people, distances in %s\n", cfg.Household.People, cfg.Household.DistanceUnit)
	cmd.Printf("Lookups:   %s, %s\n", cfg.Lookups.VehicleBaseURL, cfg.Lookups.GeocoderBaseURL)
	cmd.Printf("Payment:   %s, %dms simulated delay\n", cfg.Payment.Currency, cfg.Payment.DelayMS)
}
