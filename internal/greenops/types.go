// Package greenops turns a carbon footprint into relatable equivalencies
// ("driving ~X miles", "~Y tree seedlings grown for 10 years") for the
// dashboard, and formats footprint numbers for display.
//
// Footprints arrive in tonnes CO2e from the aggregation store; the EPA
// factors below are per kilogram, so values are normalized to kg first.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings converts CO2e to tree seedlings grown for 10 years,
	// the figure shown next to the reforestation campaigns.
	EquivalencyTreeSeedlings
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is a carbon amount with its unit (t, tCO2e, tonnes, kg, g, lb...).
type CarbonInput struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the normalized input value in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	// Results are in display priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose line shown under the dashboard total.
	DisplayText string `json:"display_text"`

	// CompactText is the short form printed beside the total in tables.
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
