package greenops

import (
	"fmt"
	"math"
)

// Calculate normalizes input to kilograms and computes the miles-driven,
// smartphones-charged and tree-seedling equivalencies.
//
// Below MinEquivalencyThresholdKg it returns an empty output carrying InputKg
// and no error. Normalization failures return an empty output and the error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	trees := kg / EPATreeSeedlingFactor

	for _, v := range []float64{miles, phones, trees} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
	}

	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)
	treesFormatted := formatEquivalencyValue(trees)

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: milesFormatted, Label: "miles driven"},
		{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: phonesFormatted, Label: "smartphones charged"},
		{Type: EquivalencyTreeSeedlings, Value: trees, FormattedValue: treesFormatted, Label: "tree seedlings grown for 10 years"},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			milesFormatted, phonesFormatted),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones, %s trees)", milesFormatted, phonesFormatted, treesFormatted),
	}, nil
}

// FromTonnes computes equivalencies for a footprint in tonnes CO2e, the unit
// used by the aggregation store.
func FromTonnes(tonnes float64) (EquivalencyOutput, error) {
	return Calculate(CarbonInput{Value: tonnes, Unit: "t"})
}

// OffsetSeedlings returns how many tree seedlings, grown for 10 years, absorb
// the given footprint in tonnes. Results are rounded up and saturate at
// math.MaxInt64; invalid input gives 0.
func OffsetSeedlings(tonnes float64) int64 {
	kg, err := NormalizeToKg(tonnes, "t")
	if err != nil || kg == 0 {
		return 0
	}
	seedlings := math.Ceil(kg / EPATreeSeedlingFactor)
	if seedlings >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(seedlings)
}

// formatEquivalencyValue rounds to an integer with separators, switching to
// the abbreviated form from LargeNumberThreshold upward.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
