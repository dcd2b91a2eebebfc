package emissions

import (
	"fmt"

	"github.com/rshade/footprint/internal/units"
)

// EfficiencyUnit is the fuel-efficiency selector of the car form.
type EfficiencyUnit string

// Fuel-efficiency units.
const (
	EfficiencyGramsPerKm   EfficiencyUnit = "g/km"
	EfficiencyLitresPer100 EfficiencyUnit = "L/100km"
	EfficiencyMPGUK        EfficiencyUnit = "mpg (UK)"
	EfficiencyMPGUS        EfficiencyUnit = "mpg (US)"
)

// EfficiencyUnits lists the efficiency units in form order.
func EfficiencyUnits() []EfficiencyUnit {
	return []EfficiencyUnit{EfficiencyGramsPerKm, EfficiencyLitresPer100, EfficiencyMPGUK, EfficiencyMPGUS}
}

// FuelType is recorded with the vehicle; it does not change the formula.
type FuelType string

// Fuel types.
const (
	FuelPetrol FuelType = "petrol"
	FuelDiesel FuelType = "diesel"
	FuelLPG    FuelType = "lpg"
	FuelCNG    FuelType = "cng"
)

// FuelTypes lists the fuel types in form order.
func FuelTypes() []FuelType {
	return []FuelType{FuelPetrol, FuelDiesel, FuelLPG, FuelCNG}
}

// CarInput is the car form. Year, Make and Model come from the vehicle lookup
// and are kept for display only.
type CarInput struct {
	Mileage        float64        `json:"mileage" yaml:"mileage"`
	MileageUnit    string         `json:"mileage_unit,omitempty" yaml:"mileage_unit,omitempty"`
	Efficiency     float64        `json:"efficiency" yaml:"efficiency"`
	EfficiencyUnit EfficiencyUnit `json:"efficiency_unit,omitempty" yaml:"efficiency_unit,omitempty"`
	FuelType       FuelType       `json:"fuel_type,omitempty" yaml:"fuel_type,omitempty"`

	Year  string `json:"year,omitempty" yaml:"year,omitempty"`
	Make  string `json:"make,omitempty" yaml:"make,omitempty"`
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

// DefaultCarInput returns the car form in its initial state.
func DefaultCarInput() CarInput {
	return CarInput{
		MileageUnit:    units.Miles,
		EfficiencyUnit: EfficiencyMPGUS,
		FuelType:       FuelPetrol,
	}
}

// Category implements Input.
func (CarInput) Category() Category { return CategoryCar }

// Emissions implements Input.
func (in CarInput) Emissions() (float64, error) { return Car(in) }

// Car returns the car footprint in tonnes CO2e. Mileage is normalized to
// miles first, then:
//
//	mpg:      (miles / efficiency) * 0.411
//	g/km:     (miles * efficiency * 0.000001) * 0.411
//	L/100km:  (miles * efficiency * 0.01) * 2.352145833 * 0.411
func Car(in CarInput) (float64, error) {
	switch in.FuelType {
	case "", FuelPetrol, FuelDiesel, FuelLPG, FuelCNG:
	default:
		return 0, fmt.Errorf("%w: fuel type %q", ErrInvalidUnit, in.FuelType)
	}

	miles, err := units.Normalize(units.Distance, in.Mileage, orDefault(in.MileageUnit, units.Miles))
	if err != nil {
		return 0, err
	}
	if err := checkQuantity("efficiency", in.Efficiency); err != nil {
		return 0, err
	}

	unit := in.EfficiencyUnit
	if unit == "" {
		unit = EfficiencyMPGUS
	}

	var total float64
	switch unit {
	case EfficiencyMPGUS, EfficiencyMPGUK:
		if in.Efficiency == 0 {
			return 0, fmt.Errorf("%w: fuel economy of 0 %s", ErrDivisionByZero, unit)
		}
		total = float64(miles/in.Efficiency) * CarFactor
	case EfficiencyGramsPerKm:
		total = float64(miles*in.Efficiency*GramsPerKmScale) * CarFactor
	case EfficiencyLitresPer100:
		total = float64(miles*in.Efficiency*LitresPer100Scale) * L100ToUSGallons
		total = float64(total * CarFactor)
	default:
		return 0, fmt.Errorf("%w: efficiency unit %q", ErrInvalidUnit, in.EfficiencyUnit)
	}

	return total, nil
}
