package emissions

import (
	"fmt"

	"github.com/rshade/footprint/internal/units"
)

// HouseInput is the household energy usage form.
type HouseInput struct {
	// Electricity is always in kWh.
	Electricity float64 `json:"electricity" yaml:"electricity"`

	Gas         float64 `json:"gas" yaml:"gas"`
	GasUnit     string  `json:"gas_unit,omitempty" yaml:"gas_unit,omitempty"`
	Oil         float64 `json:"oil" yaml:"oil"`
	OilUnit     string  `json:"oil_unit,omitempty" yaml:"oil_unit,omitempty"`
	Coal        float64 `json:"coal" yaml:"coal"`
	CoalUnit    string  `json:"coal_unit,omitempty" yaml:"coal_unit,omitempty"`
	LPG         float64 `json:"lpg" yaml:"lpg"`
	LPGUnit     string  `json:"lpg_unit,omitempty" yaml:"lpg_unit,omitempty"`
	Propane     float64 `json:"propane" yaml:"propane"`
	PropaneUnit string  `json:"propane_unit,omitempty" yaml:"propane_unit,omitempty"`
	Wood        float64 `json:"wood" yaml:"wood"`
	WoodUnit    string  `json:"wood_unit,omitempty" yaml:"wood_unit,omitempty"`

	// People is the household size the total is divided by. Must be >= 1.
	People int `json:"people" yaml:"people"`
}

// Default units of the household form.
const (
	DefaultGasUnit     = units.KWh
	DefaultOilUnit     = units.Litres
	DefaultCoalUnit    = units.KWh
	DefaultLPGUnit     = units.Litres
	DefaultPropaneUnit = units.Litres
	DefaultWoodUnit    = units.Tonnes
)

// DefaultHouseInput returns the household form in its initial state.
func DefaultHouseInput() HouseInput {
	return HouseInput{
		GasUnit:     DefaultGasUnit,
		OilUnit:     DefaultOilUnit,
		CoalUnit:    DefaultCoalUnit,
		LPGUnit:     DefaultLPGUnit,
		PropaneUnit: DefaultPropaneUnit,
		WoodUnit:    DefaultWoodUnit,
		People:      1,
	}
}

// Category implements Input.
func (HouseInput) Category() Category { return CategoryHouse }

// Emissions implements Input.
func (in HouseInput) Emissions() (float64, error) { return House(in) }

// House returns the per-person household footprint in tonnes CO2e:
//
//	(electricity*0.225 + gas*0.2 + oil*0.3 + coal*2.2 + lpg*1.5 + propane*1.5 + wood*1.8) / people
//
// where every fuel is first normalized into its canonical unit.
func House(in HouseInput) (float64, error) {
	if in.People == 0 {
		return 0, fmt.Errorf("%w: household has no people", ErrDivisionByZero)
	}
	if in.People < 0 {
		return 0, fmt.Errorf("%w: people is negative (%d)", ErrInvalidQuantity, in.People)
	}
	if err := checkQuantity("electricity", in.Electricity); err != nil {
		return 0, err
	}

	gas, err := units.Normalize(units.Gas, in.Gas, orDefault(in.GasUnit, DefaultGasUnit))
	if err != nil {
		return 0, err
	}
	oil, err := units.Normalize(units.Oil, in.Oil, orDefault(in.OilUnit, DefaultOilUnit))
	if err != nil {
		return 0, err
	}
	coal, err := units.Normalize(units.Coal, in.Coal, orDefault(in.CoalUnit, DefaultCoalUnit))
	if err != nil {
		return 0, err
	}
	lpg, err := units.Normalize(units.LPG, in.LPG, orDefault(in.LPGUnit, DefaultLPGUnit))
	if err != nil {
		return 0, err
	}
	propane, err := units.Normalize(units.Propane, in.Propane, orDefault(in.PropaneUnit, DefaultPropaneUnit))
	if err != nil {
		return 0, err
	}
	wood, err := units.Normalize(units.Wood, in.Wood, orDefault(in.WoodUnit, DefaultWoodUnit))
	if err != nil {
		return 0, err
	}

	// Each product is converted explicitly so the compiler cannot fuse it
	// into a multiply-add; results stay identical across architectures.
	sum := float64(in.Electricity * ElectricityFactor)
	sum += float64(gas * GasFactor)
	sum += float64(oil * OilFactor)
	sum += float64(coal * CoalFactor)
	sum += float64(lpg * LPGFactor)
	sum += float64(propane * PropaneFactor)
	sum += float64(wood * WoodFactor)

	return sum / float64(in.People), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
