package scenario

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	validator "github.com/go-playground/validator/v10"

	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/units"
)

//nolint:gochecknoglobals // Built once, safe for concurrent use.
var getValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		panic(err)
	}
	_ = v.RegisterValidation("schema_version", func(fl validator.FieldLevel) bool {
		ver, verErr := semver.NewVersion(fl.Field().String())
		return verErr == nil && constraint.Check(ver)
	})

	v.RegisterStructValidation(validateHouse, emissions.HouseInput{})
	v.RegisterStructValidation(validateFlight, emissions.FlightInput{})
	v.RegisterStructValidation(validateCar, emissions.CarInput{})
	v.RegisterStructValidation(validateMotorbike, emissions.MotorbikeInput{})
	v.RegisterStructValidation(validateBusRail, emissions.BusRailInput{})
	return v
})

// Validate checks the document as a whole: a supported schema version and at
// least one section. Sections are checked one by one in ValidateSection so a
// bad section does not reject the others.
func (s *Scenario) Validate() error {
	if err := getValidator().Var(s.SchemaVersion, "required,schema_version"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "schema_version" {
			return fmt.Errorf("%w: %q does not satisfy %s", ErrUnsupportedSchema, s.SchemaVersion, SupportedSchema)
		}
		return fmt.Errorf("%w: schema_version is required", ErrInvalidScenario)
	}
	if len(s.Inputs()) == 0 {
		return ErrEmptyScenario
	}
	return nil
}

// ValidateSection checks units and enumerations and rejects negative
// quantities. Calculator-level errors such as zero people are left to the
// calculators.
func ValidateSection(in emissions.Input) error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	section := sectionName(in.Category())
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s.%s: failed %q (value %v)", section, fieldPath(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidScenario, strings.Join(msgs, "; "))
}

// sectionName returns the YAML key of a category's section.
func sectionName(c emissions.Category) string {
	if c == emissions.CategoryBusRail {
		return "bus_rail"
	}
	return c.String()
}

// fieldPath turns "HouseInput.gas_unit" into "gas_unit".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reportUnit(sl validator.StructLevel, kind units.Kind, value, field, structField string) {
	if value != "" && !units.Recognized(kind, value) {
		sl.ReportError(value, field, structField, "unit", string(kind))
	}
}

func reportNegative(sl validator.StructLevel, value float64, field, structField string) {
	if value < 0 {
		sl.ReportError(value, field, structField, "gte", "0")
	}
}

func validateHouse(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(emissions.HouseInput)
	if !ok {
		return
	}
	reportNegative(sl, in.Electricity, "electricity", "Electricity")
	reportNegative(sl, in.Gas, "gas", "Gas")
	reportNegative(sl, in.Oil, "oil", "Oil")
	reportNegative(sl, in.Coal, "coal", "Coal")
	reportNegative(sl, in.LPG, "lpg", "LPG")
	reportNegative(sl, in.Propane, "propane", "Propane")
	reportNegative(sl, in.Wood, "wood", "Wood")

	reportUnit(sl, units.Gas, in.GasUnit, "gas_unit", "GasUnit")
	reportUnit(sl, units.Oil, in.OilUnit, "oil_unit", "OilUnit")
	reportUnit(sl, units.Coal, in.CoalUnit, "coal_unit", "CoalUnit")
	reportUnit(sl, units.LPG, in.LPGUnit, "lpg_unit", "LPGUnit")
	reportUnit(sl, units.Propane, in.PropaneUnit, "propane_unit", "PropaneUnit")
	reportUnit(sl, units.Wood, in.WoodUnit, "wood_unit", "WoodUnit")

	if in.People < 0 {
		sl.ReportError(in.People, "people", "People", "gte", "0")
	}
}

func validateFlight(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(emissions.FlightInput)
	if !ok {
		return
	}
	if in.Class != "" && !slices.Contains(emissions.FlightClasses(), in.Class) {
		sl.ReportError(in.Class, "class", "Class", "oneof", "flight class")
	}
	switch in.Type {
	case "", emissions.FlightReturn, emissions.FlightOneWay:
	default:
		sl.ReportError(in.Type, "flight_type", "Type", "oneof", "Return One-way")
	}
	if in.Trips < 0 {
		sl.ReportError(in.Trips, "trips", "Trips", "gte", "0")
	}
	reportNegative(sl, in.ShortHaulHours, "short_haul_hours", "ShortHaulHours")
	reportNegative(sl, in.LongHaulHours, "long_haul_hours", "LongHaulHours")
}

func validateCar(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(emissions.CarInput)
	if !ok {
		return
	}
	reportNegative(sl, in.Mileage, "mileage", "Mileage")
	reportNegative(sl, in.Efficiency, "efficiency", "Efficiency")
	reportUnit(sl, units.Distance, in.MileageUnit, "mileage_unit", "MileageUnit")
	if in.EfficiencyUnit != "" && !slices.Contains(emissions.EfficiencyUnits(), in.EfficiencyUnit) {
		sl.ReportError(in.EfficiencyUnit, "efficiency_unit", "EfficiencyUnit", "unit", "efficiency")
	}
	if in.FuelType != "" && !slices.Contains(emissions.FuelTypes(), in.FuelType) {
		sl.ReportError(in.FuelType, "fuel_type", "FuelType", "oneof", "fuel type")
	}
}

func validateMotorbike(sl validator.StructLevel) {
	if in, ok := sl.Current().Interface().(emissions.MotorbikeInput); ok {
		reportNegative(sl, in.Miles, "miles", "Miles")
	}
}

func validateBusRail(sl validator.StructLevel) {
	if in, ok := sl.Current().Interface().(emissions.BusRailInput); ok {
		reportNegative(sl, in.BusMiles, "bus_miles", "BusMiles")
		reportNegative(sl, in.RailMiles, "rail_miles", "RailMiles")
	}
}
