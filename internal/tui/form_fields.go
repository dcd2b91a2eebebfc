package tui

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/units"
)

// formField is one row of a category form. Keys match the yaml tags of the
// emissions input structs.
type formField struct {
	Key   string
	Label string
	Value string

	// Options turns the row into a selector cycling through fixed values.
	Options []string
	// Lookup marks rows that can be completed from an external service.
	Lookup bool
}

func (f formField) isSelector() bool { return len(f.Options) > 0 }

// cycle moves a selector by delta, wrapping around.
func (f *formField) cycle(delta int) {
	if !f.isSelector() {
		return
	}
	idx := 0
	for i, o := range f.Options {
		if o == f.Value {
			idx = i
			break
		}
	}
	n := len(f.Options)
	f.Value = f.Options[((idx+delta)%n+n)%n]
}

func toStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

// formFieldsFor lists the rows of a category form in display order.
func formFieldsFor(c emissions.Category) []formField {
	fuel := func(key, label string, kind units.Kind) []formField {
		return []formField{
			{Key: key, Label: label},
			{Key: key + "_unit", Label: label + " unit", Options: units.Units(kind)},
		}
	}

	switch c {
	case emissions.CategoryHouse:
		out := []formField{{Key: "electricity", Label: "Electricity (kWh)"}}
		out = append(out, fuel("gas", "Natural gas", units.Gas)...)
		out = append(out, fuel("oil", "Heating oil", units.Oil)...)
		out = append(out, fuel("coal", "Coal", units.Coal)...)
		out = append(out, fuel("lpg", "LPG", units.LPG)...)
		out = append(out, fuel("propane", "Propane", units.Propane)...)
		out = append(out, fuel("wood", "Wooden pellets", units.Wood)...)
		return append(out, formField{Key: "people", Label: "People in household"})
	case emissions.CategoryFlight:
		return []formField{
			{Key: "from", Label: "From", Lookup: true},
			{Key: "to", Label: "To", Lookup: true},
			{Key: "via", Label: "Via", Lookup: true},
			{Key: "class", Label: "Class", Options: toStrings(emissions.FlightClasses())},
			{Key: "flight_type", Label: "Trip", Options: []string{string(emissions.FlightReturn), string(emissions.FlightOneWay)}},
			{Key: "trips", Label: "Trips"},
			{Key: "radiative_forcing", Label: "Radiative forcing", Options: []string{"false", "true"}},
			{Key: "short_haul_hours", Label: "Short-haul hours"},
			{Key: "long_haul_hours", Label: "Long-haul hours"},
		}
	case emissions.CategoryCar:
		return []formField{
			{Key: "year", Label: "Year", Lookup: true},
			{Key: "make", Label: "Make", Lookup: true},
			{Key: "model", Label: "Model", Lookup: true},
			{Key: "mileage", Label: "Mileage"},
			{Key: "mileage_unit", Label: "Mileage unit", Options: units.Units(units.Distance)},
			{Key: "efficiency", Label: "Fuel efficiency"},
			{Key: "efficiency_unit", Label: "Efficiency unit", Options: toStrings(emissions.EfficiencyUnits())},
			{Key: "fuel_type", Label: "Fuel", Options: toStrings(emissions.FuelTypes())},
		}
	case emissions.CategoryMotorbike:
		return []formField{{Key: "miles", Label: "Miles"}}
	case emissions.CategoryBusRail:
		return []formField{
			{Key: "bus_miles", Label: "Bus miles"},
			{Key: "rail_miles", Label: "Rail miles"},
		}
	default:
		return nil
	}
}

// defaultInput returns the initial form state of c.
func defaultInput(c emissions.Category) emissions.Input {
	switch c {
	case emissions.CategoryHouse:
		return emissions.DefaultHouseInput()
	case emissions.CategoryFlight:
		return emissions.DefaultFlightInput()
	case emissions.CategoryCar:
		return emissions.DefaultCarInput()
	case emissions.CategoryMotorbike:
		return emissions.MotorbikeInput{}
	case emissions.CategoryBusRail:
		return emissions.BusRailInput{}
	default:
		return nil
	}
}

// fillFields copies the values of in into fields by yaml key.
func fillFields(fields []formField, in emissions.Input) error {
	var node yaml.Node
	if err := node.Encode(in); err != nil {
		return err
	}
	values := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		values[node.Content[i].Value] = node.Content[i+1].Value
	}
	for i := range fields {
		if v, ok := values[fields[i].Key]; ok {
			fields[i].Value = v
		}
	}
	return nil
}

// buildInput decodes the form rows onto the category defaults. Blank rows
// keep their default.
func buildInput(c emissions.Category, fields []formField) (emissions.Input, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Value, Style: plainStyle(f)},
		)
	}

	switch c {
	case emissions.CategoryHouse:
		return decodeOnto(node, emissions.DefaultHouseInput())
	case emissions.CategoryFlight:
		return decodeOnto(node, emissions.DefaultFlightInput())
	case emissions.CategoryCar:
		return decodeOnto(node, emissions.DefaultCarInput())
	case emissions.CategoryMotorbike:
		return decodeOnto(node, emissions.MotorbikeInput{})
	case emissions.CategoryBusRail:
		return decodeOnto(node, emissions.BusRailInput{})
	default:
		return nil, fmt.Errorf("%w: %q", emissions.ErrUnknownCategory, c)
	}
}

// plainStyle quotes free-text rows that would otherwise resolve to a
// non-string (a year such as 2022, a place named "Null").
func plainStyle(f formField) yaml.Style {
	if f.Lookup {
		return yaml.DoubleQuotedStyle
	}
	return 0
}

func decodeOnto[T emissions.Input](node *yaml.Node, def T) (emissions.Input, error) {
	if err := node.Decode(&def); err != nil {
		return nil, fmt.Errorf("%w: %w", emissions.ErrInvalidQuantity, err)
	}
	return def, nil
}
