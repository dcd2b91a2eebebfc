package emissions

import (
	"fmt"
	"math"
)

// FlightClass is the cabin class selector of the flight form.
type FlightClass string

// Cabin classes.
const (
	ClassEconomy        FlightClass = "Economy"
	ClassPremiumEconomy FlightClass = "Premium Economy"
	ClassBusiness       FlightClass = "Business"
	ClassFirst          FlightClass = "First"
)

// FlightClasses lists every cabin class in form order.
func FlightClasses() []FlightClass {
	return []FlightClass{ClassEconomy, ClassPremiumEconomy, ClassBusiness, ClassFirst}
}

// multiplier returns the class multiplier, or ok=false for unknown classes.
func (c FlightClass) multiplier() (float64, bool) {
	switch c {
	case ClassEconomy, "":
		return 1, true
	case ClassPremiumEconomy:
		return PremiumEconomyMultiplier, true
	case ClassBusiness:
		return BusinessMultiplier, true
	case ClassFirst:
		return FirstMultiplier, true
	default:
		return 0, false
	}
}

// FlightType distinguishes return trips from one-way flights.
type FlightType string

// Flight types.
const (
	FlightReturn FlightType = "Return"
	FlightOneWay FlightType = "One-way"
)

// FlightInput is the flight form. From, To and Via are free-text locations
// kept for display; they do not enter the formula.
type FlightInput struct {
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
	Via  string `json:"via,omitempty" yaml:"via,omitempty"`

	Class            FlightClass `json:"class,omitempty" yaml:"class,omitempty"`
	Type             FlightType  `json:"flight_type,omitempty" yaml:"flight_type,omitempty"`
	Trips            int         `json:"trips" yaml:"trips"`
	RadiativeForcing bool        `json:"radiative_forcing" yaml:"radiative_forcing"`
	ShortHaulHours   float64     `json:"short_haul_hours" yaml:"short_haul_hours"`
	LongHaulHours    float64     `json:"long_haul_hours" yaml:"long_haul_hours"`
}

// DefaultFlightInput returns the flight form in its initial state.
func DefaultFlightInput() FlightInput {
	return FlightInput{
		Class: ClassEconomy,
		Type:  FlightReturn,
		Trips: 1,
	}
}

// Category implements Input.
func (FlightInput) Category() Category { return CategoryFlight }

// Emissions implements Input.
func (in FlightInput) Emissions() (float64, error) { return Flight(in) }

// Flight returns the flight footprint in tonnes CO2e.
//
// Multipliers compound in a fixed order: base, cabin class, radiative
// forcing, round trip. An empty Type means a return trip.
func Flight(in FlightInput) (float64, error) {
	if in.Trips < 0 {
		return 0, fmt.Errorf("%w: trips is negative (%d)", ErrInvalidQuantity, in.Trips)
	}
	if err := checkQuantity("short-haul hours", in.ShortHaulHours); err != nil {
		return 0, err
	}
	if err := checkQuantity("long-haul hours", in.LongHaulHours); err != nil {
		return 0, err
	}

	classMul, ok := in.Class.multiplier()
	if !ok {
		return 0, fmt.Errorf("%w: flight class %q", ErrInvalidUnit, in.Class)
	}

	var roundTrip bool
	switch in.Type {
	case FlightReturn, "":
		roundTrip = true
	case FlightOneWay:
		roundTrip = false
	default:
		return 0, fmt.Errorf("%w: flight type %q", ErrInvalidUnit, in.Type)
	}

	hours := float64(in.ShortHaulHours*ShortHaulFactor) + float64(in.LongHaulHours*LongHaulFactor)
	total := float64(in.Trips) * hours

	total *= classMul
	if in.RadiativeForcing {
		total *= RadiativeForcingFactor
	}
	if roundTrip {
		total *= ReturnTripMultiplier
	}

	if math.IsInf(total, 0) {
		return 0, fmt.Errorf("%w: flight total overflowed", ErrInvalidQuantity)
	}
	return total, nil
}
