// Package units normalizes household and travel usage quantities into the
// canonical unit of each quantity kind.
//
// Every kind has a static conversion table built at package init. A factor
// converts one input unit into the canonical unit:
//
//	canonical = quantity * factor
//
// Unknown units and negative or non-finite quantities are rejected with
// ErrInvalidUnit and ErrInvalidQuantity respectively; nothing in this package
// ever returns NaN.
package units

import (
	"fmt"
	"math"
)

// Kind identifies a family of interchangeable units.
type Kind string

// Quantity kinds known to the conversion table.
const (
	Gas      Kind = "gas"
	Oil      Kind = "oil"
	Coal     Kind = "coal"
	LPG      Kind = "lpg"
	Propane  Kind = "propane"
	Wood     Kind = "wood"
	Distance Kind = "distance"
)

// Unit names as they appear in forms and scenario files.
const (
	KWh        = "kWh"
	Therms     = "therms"
	GBP        = "GBP"
	Litres     = "litres"
	Tonnes     = "tonnes"
	USGallons  = "us gallons"
	Bags10kg   = "10kg bags"
	Bags20kg   = "20kg bags"
	Bags25kg   = "25kg bags"
	Bags50kg   = "50kg bags"
	Miles      = "miles"
	Kilometres = "km"
)

// KmToMiles converts kilometres to miles.
const KmToMiles = 0.621371

// conversion is one row of a kind's table.
type conversion struct {
	unit   string
	factor float64
}

// table holds one kind's canonical unit and its ordered conversions.
type table struct {
	canonical string
	rows      []conversion
}

//nolint:gochecknoglobals // Immutable lookup table, built once.
var tables = map[Kind]table{
	Gas: {canonical: KWh, rows: []conversion{
		{KWh, 1},
		{Therms, 29.3},
		{GBP, 0.053},
	}},
	Oil: {canonical: KWh, rows: []conversion{
		{KWh, 1},
		{Litres, 11.36},
		{Tonnes, 11630},
		{USGallons, 43.5},
	}},
	Coal: {canonical: KWh, rows: []conversion{
		{KWh, 1},
		{Tonnes, 29307},
		{Bags10kg, 293},
		{Bags20kg, 586},
		{Bags25kg, 733},
		{Bags50kg, 1465},
	}},
	LPG: {canonical: KWh, rows: []conversion{
		{KWh, 1},
		{Litres, 7.09},
		{Tonnes, 7091},
		{USGallons, 26.8},
	}},
	Propane: {canonical: Litres, rows: []conversion{
		{Litres, 1},
		{USGallons, 3.785},
	}},
	Wood: {canonical: Tonnes, rows: []conversion{
		{Tonnes, 1},
	}},
	Distance: {canonical: Miles, rows: []conversion{
		{Miles, 1},
		{Kilometres, KmToMiles},
	}},
}

// Factor returns the conversion factor from unit into the canonical unit of kind.
// Unit matching is exact; it returns ErrInvalidUnit for unknown kinds or units.
func Factor(kind Kind, unit string) (float64, error) {
	t, ok := tables[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown quantity kind %q", ErrInvalidUnit, kind)
	}
	for _, row := range t.rows {
		if row.unit == unit {
			return row.factor, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a %s unit", ErrInvalidUnit, unit, kind)
}

// Normalize converts quantity expressed in unit into the canonical unit of kind.
//
// Returns ErrInvalidQuantity if quantity is negative, NaN or infinite, and
// ErrInvalidUnit if unit is not in the table for kind.
func Normalize(kind Kind, quantity float64, unit string) (float64, error) {
	if err := checkQuantity(quantity); err != nil {
		return 0, fmt.Errorf("%s: %w", kind, err)
	}

	factor, err := Factor(kind, unit)
	if err != nil {
		return 0, err
	}

	result := quantity * factor
	if math.IsInf(result, 0) {
		return 0, fmt.Errorf("%s: %w: overflow converting %g %s", kind, ErrInvalidQuantity, quantity, unit)
	}
	return result, nil
}

// Denormalize converts a canonical quantity back into unit. It is the inverse
// of Normalize and shares its error behaviour.
func Denormalize(kind Kind, canonical float64, unit string) (float64, error) {
	if err := checkQuantity(canonical); err != nil {
		return 0, fmt.Errorf("%s: %w", kind, err)
	}

	factor, err := Factor(kind, unit)
	if err != nil {
		return 0, err
	}
	return canonical / factor, nil
}

// Canonical returns the canonical unit of kind, or "" for unknown kinds.
func Canonical(kind Kind) string {
	return tables[kind].canonical
}

// Units lists the accepted units for kind in form order.
func Units(kind Kind) []string {
	t := tables[kind]
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row.unit)
	}
	return out
}

// Recognized reports whether unit is accepted for kind.
func Recognized(kind Kind, unit string) bool {
	_, err := Factor(kind, unit)
	return err == nil
}

// Kinds returns every kind with a conversion table.
func Kinds() []Kind {
	return []Kind{Gas, Oil, Coal, LPG, Propane, Wood, Distance}
}

func checkQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return fmt.Errorf("%w: non-finite value %v", ErrInvalidQuantity, q)
	}
	if q < 0 {
		return fmt.Errorf("%w: negative value %v", ErrInvalidQuantity, q)
	}
	return nil
}
