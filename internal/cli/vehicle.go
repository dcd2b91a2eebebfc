package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/vehicle"
)

// NewVehicleYearsCmd creates the "vehicle years" command.
func NewVehicleYearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "years",
		Short:   "List model years",
		Example: `  footprint vehicle years`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVehicleMenu(cmd, vehicle.FieldYear, vehicle.Selection{})
		},
	}
}

// NewVehicleMakesCmd creates the "vehicle makes" command.
func NewVehicleMakesCmd() *cobra.Command {
	var sel vehicle.Selection

	cmd := &cobra.Command{
		Use:     "makes",
		Short:   "List manufacturers for a model year",
		Example: `  footprint vehicle makes --year 2022`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVehicleMenu(cmd, vehicle.FieldMake, sel)
		},
	}
	cmd.Flags().StringVar(&sel.Year, "year", "", "model year")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

// NewVehicleModelsCmd creates the "vehicle models" command. With --all it
// fetches the models of every make for the year.
func NewVehicleModelsCmd() *cobra.Command {
	var (
		sel vehicle.Selection
		all bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models for a year and make",
		Example: `  footprint vehicle models --year 2022 --make Toyota
  footprint vehicle models --year 2022 --all --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				return runVehicleCatalog(cmd, sel.Year)
			}
			if sel.Make == "" {
				return fmt.Errorf("%w: --make is required unless --all is set", vehicle.ErrMissingSelection)
			}
			return runVehicleMenu(cmd, vehicle.FieldModel, sel)
		},
	}
	cmd.Flags().StringVar(&sel.Year, "year", "", "model year")
	cmd.Flags().StringVar(&sel.Make, "make", "", "manufacturer")
	cmd.Flags().BoolVar(&all, "all", false, "list the models of every make for the year")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func runVehicleMenu(cmd *cobra.Command, field vehicle.Field, sel vehicle.Selection) error {
	client, err := newVehicleClient(config.GetGlobalConfig())
	if err != nil {
		return err
	}
	opts, err := client.Options(cmd.Context(), field, sel)
	if err != nil {
		return err
	}

	if outputFormat(cmd) == outputFormatJSON {
		return writeJSON(cmd.OutOrStdout(), opts)
	}
	if len(opts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %ss found.\n", field)
		return nil
	}
	for _, o := range opts {
		fmt.Fprintln(cmd.OutOrStdout(), o.Text)
	}
	return nil
}

func runVehicleCatalog(cmd *cobra.Command, year string) error {
	client, err := newVehicleClient(config.GetGlobalConfig())
	if err != nil {
		return err
	}
	catalog, err := client.Catalog(cmd.Context(), year)
	if err != nil {
		return err
	}

	if outputFormat(cmd) == outputFormatJSON {
		return writeJSON(cmd.OutOrStdout(), catalog)
	}

	makes := make([]string, 0, len(catalog))
	for mk := range catalog {
		makes = append(makes, mk)
	}
	sort.Strings(makes)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Make\tModels")
	fmt.Fprintln(w, "----\t------")
	for _, mk := range makes {
		names := make([]string, len(catalog[mk]))
		for i, o := range catalog[mk] {
			names[i] = o.Text
		}
		fmt.Fprintf(w, "%s\t%s\n", mk, strings.Join(names, ", "))
	}
	return w.Flush()
}
