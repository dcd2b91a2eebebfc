// Package emissions implements the per-category carbon footprint calculators.
//
// Each category (house, flight, car, motorbike, bus/rail) has an input record
// and a pure calculator that returns tonnes of CO2e. Formulas are fixed linear
// expressions over the normalized inputs; see factors.go for the constants.
//
// Empty unit selectors take the default of the matching input form (for
// example oil in litres, efficiency in US mpg, a return flight). Negative or
// non-finite quantities and unknown selectors are rejected, never clamped.
package emissions

import (
	"fmt"
	"strings"
)

// Category identifies one of the five independent emission sources.
type Category string

// Emission categories in display order.
const (
	CategoryHouse     Category = "house"
	CategoryFlight    Category = "flight"
	CategoryCar       Category = "car"
	CategoryMotorbike Category = "motorbike"
	CategoryBusRail   Category = "busRail"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryHouse, CategoryFlight, CategoryCar, CategoryMotorbike, CategoryBusRail}
}

// String returns the category key.
func (c Category) String() string { return string(c) }

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryHouse:
		return "House"
	case CategoryFlight:
		return "Flights"
	case CategoryCar:
		return "Car"
	case CategoryMotorbike:
		return "Motorbike"
	case CategoryBusRail:
		return "Bus & Rail"
	default:
		return fmt.Sprintf("Category(%s)", string(c))
	}
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category key. Matching ignores case and accepts
// "bus-rail", "bus_rail" and "busrail" as aliases of CategoryBusRail.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "house":
		return CategoryHouse, nil
	case "flight", "flights":
		return CategoryFlight, nil
	case "car":
		return CategoryCar, nil
	case "motorbike":
		return CategoryMotorbike, nil
	case "busrail", "bus-rail", "bus_rail":
		return CategoryBusRail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Input is a category input record that knows how to compute its own
// emissions. Every XInput type in this package implements it.
type Input interface {
	Category() Category
	Emissions() (float64, error)
}

// Calculate runs the calculator behind in and returns its result.
// It guarantees a finite, non-negative value on success.
func Calculate(in Input) (float64, error) {
	if in == nil {
		return 0, fmt.Errorf("%w: nil input", ErrInvalidQuantity)
	}
	v, err := in.Emissions()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in.Category(), err)
	}
	if err := checkResult(v); err != nil {
		return 0, fmt.Errorf("%s: %w", in.Category(), err)
	}
	return v, nil
}
