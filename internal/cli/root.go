// Package cli implements the footprint command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the footprint CLI. It wires
// up logging and tracing and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "footprint",
		Short:         "Carbon footprint calculator",
		Long:          "footprint: estimate household and travel emissions in tonnes of CO2e and offset them",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFlag(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table or json (default from config)")
	cmd.AddCommand(
		newCalcCmd(), NewTotalCmd(), NewDashboardCmd(),
		newCampaignsCmd(), NewDonateCmd(),
		newVehicleCmd(), NewLocateCmd(),
		newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Household footprint for 2 people
  footprint calc house --electricity 3000 --gas 12000 --people 2

  # Two return economy flights of 3 hours
  footprint calc flight --short-haul-hours 3 --trips 2

  # Total every category described in a scenario file
  footprint total -f household.yaml --output json

  # Interactive dashboard with campaigns and donations
  footprint dashboard -f household.yaml

  # Browse vehicle menus
  footprint vehicle makes --year 2022

  # Initialize configuration
  footprint config init`

// newCalcCmd creates the calc command group with one subcommand per category.
func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the footprint of a single category",
	}
	cmd.AddCommand(
		NewCalcHouseCmd(), NewCalcFlightCmd(), NewCalcCarCmd(),
		NewCalcMotorbikeCmd(), NewCalcBusRailCmd(), NewCalcUnitsCmd(),
	)
	return cmd
}

// newCampaignsCmd creates the campaigns command group.
func newCampaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Browse offset campaigns",
		// Bare "campaigns" behaves like "campaigns list".
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCampaignsList(cmd, false)
		},
	}
	cmd.AddCommand(NewCampaignsListCmd(), NewCampaignsShowCmd())
	return cmd
}

// newVehicleCmd creates the vehicle lookup command group.
func newVehicleCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vehicle", Short: "Look up vehicle years, makes and models"}
	cmd.AddCommand(NewVehicleYearsCmd(), NewVehicleMakesCmd(), NewVehicleModelsCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Inspect and clear the lookup cache"}
	cmd.AddCommand(NewCacheInfoCmd(), NewCacheClearCmd())
	return cmd
}
