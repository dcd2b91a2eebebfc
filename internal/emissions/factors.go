package emissions

// Emission factors in tonnes CO2e per canonical unit.
const (
	ElectricityFactor = 0.225 // per kWh
	GasFactor         = 0.2   // per kWh
	OilFactor         = 0.3   // per kWh
	CoalFactor        = 2.2   // per kWh
	LPGFactor         = 1.5   // per kWh
	PropaneFactor     = 1.5   // per litre
	WoodFactor        = 1.8   // per tonne
)

// Flight factors.
const (
	ShortHaulFactor = 0.15 // per flight hour
	LongHaulFactor  = 0.25 // per flight hour

	PremiumEconomyMultiplier = 1.3
	BusinessMultiplier       = 1.5
	FirstMultiplier          = 2.0
	RadiativeForcingFactor   = 1.9
	ReturnTripMultiplier     = 2
)

// Road and rail factors.
const (
	// CarFactor is applied to fuel use expressed in US gallons.
	CarFactor = 0.411

	// GramsPerKmScale scales mileage times g/km.
	GramsPerKmScale = 0.000001

	// LitresPer100Scale converts an L/100km rating into litres per unit distance.
	LitresPer100Scale = 0.01

	// L100ToUSGallons is applied to the L/100km product before CarFactor.
	L100ToUSGallons = 2.352145833

	MotorbikeFactor = 0.282 // per mile
	BusFactor       = 0.1   // per mile
	RailFactor      = 0.05  // per mile
)
