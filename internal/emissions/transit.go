package emissions

// MotorbikeInput is the motorbike form.
type MotorbikeInput struct {
	Miles float64 `json:"miles" yaml:"miles"`
}

// Category implements Input.
func (MotorbikeInput) Category() Category { return CategoryMotorbike }

// Emissions implements Input.
func (in MotorbikeInput) Emissions() (float64, error) { return Motorbike(in) }

// Motorbike returns miles * 0.282 tonnes CO2e.
func Motorbike(in MotorbikeInput) (float64, error) {
	if err := checkQuantity("miles", in.Miles); err != nil {
		return 0, err
	}
	return in.Miles * MotorbikeFactor, nil
}

// BusRailInput is the bus and rail form.
type BusRailInput struct {
	BusMiles  float64 `json:"bus_miles" yaml:"bus_miles"`
	RailMiles float64 `json:"rail_miles" yaml:"rail_miles"`
}

// Category implements Input.
func (BusRailInput) Category() Category { return CategoryBusRail }

// Emissions implements Input.
func (in BusRailInput) Emissions() (float64, error) { return BusRail(in) }

// BusRail returns busMiles*0.1 + railMiles*0.05 tonnes CO2e.
func BusRail(in BusRailInput) (float64, error) {
	if err := checkQuantity("bus miles", in.BusMiles); err != nil {
		return 0, err
	}
	if err := checkQuantity("rail miles", in.RailMiles); err != nil {
		return 0, err
	}
	return float64(in.BusMiles*BusFactor) + float64(in.RailMiles*RailFactor), nil
}
