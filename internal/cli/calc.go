package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/units"
)

// unitHelp lists the accepted units of kind for a flag description.
func unitHelp(name string, kind units.Kind) string {
	return name + " unit: " + strings.Join(units.Units(kind), ", ")
}

// unitTable is the JSON shape of one row of "calc units".
type unitTable struct {
	Kind      units.Kind `json:"kind"`
	Canonical string     `json:"canonical"`
	Units     []string   `json:"units"`
}

// NewCalcUnitsCmd creates the "calc units" command, which lists the units
// accepted by the calculator flags and scenario files.
func NewCalcUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List accepted units per quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := units.Kinds()
			rows := make([]unitTable, 0, len(kinds))
			for _, k := range kinds {
				rows = append(rows, unitTable{Kind: k, Canonical: units.Canonical(k), Units: units.Units(k)})
			}
			if outputFormat(cmd) == outputFormatJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "Quantity\tCanonical\tAccepted")
			fmt.Fprintln(w, "--------\t---------\t--------")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Kind, r.Canonical, strings.Join(r.Units, ", "))
			}
			return w.Flush()
		},
	}
}

// runCalc runs one calculator and renders the result.
func runCalc(cmd *cobra.Command, in emissions.Input) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	tonnes, err := emissions.Calculate(in)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Str("category", in.Category().String()).Msg("calculation rejected")
		return err
	}
	log.Debug().Ctx(ctx).
		Str("category", in.Category().String()).
		Float64("tonnes", tonnes).
		Msg("calculation complete")
	return renderCategoryResult(cmd, in, tonnes)
}

// NewCalcHouseCmd creates the "calc house" command.
func NewCalcHouseCmd() *cobra.Command {
	in := emissions.DefaultHouseInput()

	cmd := &cobra.Command{
		Use:   "house",
		Short: "Household energy footprint per person",
		Example: `  footprint calc house --electricity 100 --gas 50
  footprint calc house --oil 200 --oil-unit "us gallons" --people 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("people") {
				in.People = config.GetGlobalConfig().Household.People
			}
			return runCalc(cmd, in)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.Electricity, "electricity", 0, "electricity in kWh")
	f.Float64Var(&in.Gas, "gas", 0, "natural gas usage")
	f.StringVar(&in.GasUnit, "gas-unit", in.GasUnit, unitHelp("gas", units.Gas))
	f.Float64Var(&in.Oil, "oil", 0, "heating oil usage")
	f.StringVar(&in.OilUnit, "oil-unit", in.OilUnit, unitHelp("oil", units.Oil))
	f.Float64Var(&in.Coal, "coal", 0, "coal usage")
	f.StringVar(&in.CoalUnit, "coal-unit", in.CoalUnit, unitHelp("coal", units.Coal))
	f.Float64Var(&in.LPG, "lpg", 0, "LPG usage")
	f.StringVar(&in.LPGUnit, "lpg-unit", in.LPGUnit, unitHelp("LPG", units.LPG))
	f.Float64Var(&in.Propane, "propane", 0, "propane usage")
	f.StringVar(&in.PropaneUnit, "propane-unit", in.PropaneUnit, unitHelp("propane", units.Propane))
	f.Float64Var(&in.Wood, "wood", 0, "wood usage")
	f.StringVar(&in.WoodUnit, "wood-unit", in.WoodUnit, unitHelp("wood", units.Wood))
	f.IntVar(&in.People, "people", in.People, "people in the household (default from config)")

	return cmd
}

// NewCalcFlightCmd creates the "calc flight" command.
func NewCalcFlightCmd() *cobra.Command {
	in := emissions.DefaultFlightInput()
	var class, flightType string

	cmd := &cobra.Command{
		Use:   "flight",
		Short: "Flight footprint from hours flown",
		Example: `  footprint calc flight --short-haul-hours 3 --trips 2
  footprint calc flight --long-haul-hours 9 --class Business --type One-way --radiative-forcing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Class = emissions.FlightClass(class)
			in.Type = emissions.FlightType(flightType)
			return runCalc(cmd, in)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.From, "from", "", "departure location, for display")
	f.StringVar(&in.To, "to", "", "destination, for display")
	f.StringVar(&in.Via, "via", "", "stopover, for display")
	f.StringVar(&class, "class", string(in.Class), "cabin class: Economy, Premium Economy, Business or First")
	f.StringVar(&flightType, "type", string(in.Type), "Return or One-way")
	f.IntVar(&in.Trips, "trips", in.Trips, "number of trips")
	f.BoolVar(&in.RadiativeForcing, "radiative-forcing", false, "include radiative forcing (x1.9)")
	f.Float64Var(&in.ShortHaulHours, "short-haul-hours", 0, "short-haul hours per trip")
	f.Float64Var(&in.LongHaulHours, "long-haul-hours", 0, "long-haul hours per trip")

	return cmd
}

// NewCalcCarCmd creates the "calc car" command.
func NewCalcCarCmd() *cobra.Command {
	in := emissions.DefaultCarInput()
	var efficiencyUnit, fuelType string

	cmd := &cobra.Command{
		Use:   "car",
		Short: "Car footprint from mileage and fuel efficiency",
		Example: `  footprint calc car --mileage 100 --efficiency 25
  footprint calc car --mileage 1000 --mileage-unit km --efficiency 6.5 --efficiency-unit L/100km`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("mileage-unit") {
				in.MileageUnit = config.GetGlobalConfig().Household.DistanceUnit
			}
			in.EfficiencyUnit = emissions.EfficiencyUnit(efficiencyUnit)
			in.FuelType = emissions.FuelType(fuelType)
			return runCalc(cmd, in)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.Mileage, "mileage", 0, "distance driven")
	f.StringVar(&in.MileageUnit, "mileage-unit", in.MileageUnit, "miles or km (default from config)")
	f.Float64Var(&in.Efficiency, "efficiency", 0, "fuel efficiency in --efficiency-unit")
	f.StringVar(&efficiencyUnit, "efficiency-unit", string(in.EfficiencyUnit),
		"g/km, L/100km, mpg (UK) or mpg (US)")
	f.StringVar(&fuelType, "fuel-type", string(in.FuelType), "petrol, diesel, lpg or cng")
	f.StringVar(&in.Year, "year", "", "model year, for display")
	f.StringVar(&in.Make, "make", "", "manufacturer, for display")
	f.StringVar(&in.Model, "model", "", "model, for display")

	return cmd
}

// NewCalcMotorbikeCmd creates the "calc motorbike" command.
func NewCalcMotorbikeCmd() *cobra.Command {
	var in emissions.MotorbikeInput

	cmd := &cobra.Command{
		Use:     "motorbike",
		Short:   "Motorbike footprint from miles ridden",
		Example: `  footprint calc motorbike --miles 100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, in)
		},
	}
	cmd.Flags().Float64Var(&in.Miles, "miles", 0, "miles ridden")
	return cmd
}

// NewCalcBusRailCmd creates the "calc bus-rail" command.
func NewCalcBusRailCmd() *cobra.Command {
	var in emissions.BusRailInput

	cmd := &cobra.Command{
		Use:     "bus-rail",
		Aliases: []string{"busrail", "transit"},
		Short:   "Public transport footprint from bus and rail miles",
		Example: `  footprint calc bus-rail --bus-miles 100 --rail-miles 100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, in)
		},
	}
	cmd.Flags().Float64Var(&in.BusMiles, "bus-miles", 0, "miles travelled by bus")
	cmd.Flags().Float64Var(&in.RailMiles, "rail-miles", 0, "miles travelled by rail")
	return cmd
}
