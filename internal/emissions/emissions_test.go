package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/units"
)

const tolerance = 1e-9

func TestHouse(t *testing.T) {
	t.Run("electricity and gas for one person", func(t *testing.T) {
		in := HouseInput{Electricity: 100, Gas: 50, GasUnit: units.KWh, People: 1}
		got, err := House(in)
		require.NoError(t, err)
		assert.InDelta(t, 32.5, got, tolerance)
	})

	t.Run("divides by household size", func(t *testing.T) {
		in := HouseInput{Electricity: 100, Gas: 50, People: 2}
		got, err := House(in)
		require.NoError(t, err)
		assert.InDelta(t, 16.25, got, tolerance)
	})

	t.Run("normalizes every fuel before applying factors", func(t *testing.T) {
		in := HouseInput{
			Gas: 1, GasUnit: units.Therms,
			Oil: 1, OilUnit: units.Litres,
			Coal: 1, CoalUnit: units.Bags10kg,
			LPG: 1, LPGUnit: units.USGallons,
			Propane: 1, PropaneUnit: units.USGallons,
			Wood: 1, WoodUnit: units.Tonnes,
			People: 1,
		}
		want := 29.3*0.2 + 11.36*0.3 + 293*2.2 + 26.8*1.5 + 3.785*1.5 + 1*1.8
		got, err := House(in)
		require.NoError(t, err)
		assert.InDelta(t, want, got, tolerance)
	})

	t.Run("empty units take the form defaults", func(t *testing.T) {
		withDefaults := DefaultHouseInput()
		withDefaults.Oil = 10
		withDefaults.LPG = 10

		bare := HouseInput{Oil: 10, LPG: 10, People: 1}

		a, err := House(withDefaults)
		require.NoError(t, err)
		b, err := House(bare)
		require.NoError(t, err)
		assert.InDelta(t, a, b, 0)
		assert.InDelta(t, 10*11.36*0.3+10*7.09*1.5, a, tolerance)
	})

	t.Run("zero people is a division by zero", func(t *testing.T) {
		_, err := House(HouseInput{Electricity: 100})
		require.ErrorIs(t, err, ErrDivisionByZero)
	})

	t.Run("negative people is rejected", func(t *testing.T) {
		_, err := House(HouseInput{Electricity: 100, People: -2})
		require.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown unit is rejected", func(t *testing.T) {
		_, err := House(HouseInput{Gas: 10, GasUnit: "cubic feet", People: 1})
		require.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("negative and non-finite quantities are rejected", func(t *testing.T) {
		for _, in := range []HouseInput{
			{Electricity: -1, People: 1},
			{Electricity: math.NaN(), People: 1},
			{Coal: math.Inf(1), People: 1},
			{Wood: -0.5, People: 1},
		} {
			_, err := House(in)
			require.ErrorIs(t, err, ErrInvalidQuantity)
		}
	})
}

func TestFlight(t *testing.T) {
	base := FlightInput{Trips: 1, ShortHaulHours: 2, Class: ClassEconomy, Type: FlightOneWay}

	tests := []struct {
		name   string
		mutate func(*FlightInput)
		want   float64
	}{
		{name: "one way economy", mutate: func(*FlightInput) {}, want: 0.3},
		{name: "return doubles", mutate: func(f *FlightInput) { f.Type = FlightReturn }, want: 0.6},
		{name: "empty type means return", mutate: func(f *FlightInput) { f.Type = "" }, want: 0.6},
		{name: "empty class means economy", mutate: func(f *FlightInput) { f.Class = "" }, want: 0.3},
		{name: "premium economy", mutate: func(f *FlightInput) { f.Class = ClassPremiumEconomy }, want: 0.3 * 1.3},
		{name: "business", mutate: func(f *FlightInput) { f.Class = ClassBusiness }, want: 0.3 * 1.5},
		{name: "first", mutate: func(f *FlightInput) { f.Class = ClassFirst }, want: 0.6},
		{name: "radiative forcing", mutate: func(f *FlightInput) { f.RadiativeForcing = true }, want: 0.3 * 1.9},
		{
			name: "multipliers compound",
			mutate: func(f *FlightInput) {
				f.Class = ClassBusiness
				f.RadiativeForcing = true
				f.Type = FlightReturn
			},
			want: 0.3 * 1.5 * 1.9 * 2,
		},
		{name: "long haul and trips", mutate: func(f *FlightInput) { f.LongHaulHours = 10; f.Trips = 3 }, want: 3 * (0.3 + 2.5)},
		{name: "zero trips", mutate: func(f *FlightInput) { f.Trips = 0 }, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			got, err := Flight(in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}

	t.Run("unknown class", func(t *testing.T) {
		in := base
		in.Class = "Cargo"
		_, err := Flight(in)
		require.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("unknown flight type", func(t *testing.T) {
		in := base
		in.Type = "Multi-city"
		_, err := Flight(in)
		require.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("negative values", func(t *testing.T) {
		in := base
		in.Trips = -1
		_, err := Flight(in)
		require.ErrorIs(t, err, ErrInvalidQuantity)

		in = base
		in.LongHaulHours = -3
		_, err = Flight(in)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestCar(t *testing.T) {
	tests := []struct {
		name string
		in   CarInput
		want float64
	}{
		{
			name: "US mpg in miles",
			in:   CarInput{Mileage: 100, MileageUnit: units.Miles, Efficiency: 25, EfficiencyUnit: EfficiencyMPGUS},
			want: 1.644,
		},
		{
			name: "UK mpg uses the same formula",
			in:   CarInput{Mileage: 100, Efficiency: 25, EfficiencyUnit: EfficiencyMPGUK},
			want: 1.644,
		},
		{
			name: "kilometres are converted to miles",
			in:   CarInput{Mileage: 100, MileageUnit: units.Kilometres, Efficiency: 25, EfficiencyUnit: EfficiencyMPGUS},
			want: (62.1371 / 25) * 0.411,
		},
		{
			name: "grams per km",
			in:   CarInput{Mileage: 1000, Efficiency: 120, EfficiencyUnit: EfficiencyGramsPerKm},
			want: (1000 * 120 * 0.000001) * 0.411,
		},
		{
			name: "litres per 100km",
			in:   CarInput{Mileage: 1000, Efficiency: 6, EfficiencyUnit: EfficiencyLitresPer100},
			want: (1000 * 6 * 0.01) * 2.352145833 * 0.411,
		},
		{
			name: "empty efficiency unit means US mpg",
			in:   CarInput{Mileage: 100, Efficiency: 25},
			want: 1.644,
		},
		{
			name: "zero g/km is zero emissions",
			in:   CarInput{Mileage: 100, EfficiencyUnit: EfficiencyGramsPerKm},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Car(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}

	t.Run("zero mpg is a division by zero", func(t *testing.T) {
		_, err := Car(CarInput{Mileage: 100, EfficiencyUnit: EfficiencyMPGUK})
		require.ErrorIs(t, err, ErrDivisionByZero)
	})

	t.Run("unknown units", func(t *testing.T) {
		_, err := Car(CarInput{Mileage: 100, MileageUnit: "furlongs", Efficiency: 25})
		require.ErrorIs(t, err, ErrInvalidUnit)

		_, err = Car(CarInput{Mileage: 100, Efficiency: 25, EfficiencyUnit: "km/l"})
		require.ErrorIs(t, err, ErrInvalidUnit)

		_, err = Car(CarInput{Mileage: 100, Efficiency: 25, FuelType: "hydrogen"})
		require.ErrorIs(t, err, ErrInvalidUnit)
	})

	t.Run("negative values", func(t *testing.T) {
		_, err := Car(CarInput{Mileage: -100, Efficiency: 25})
		require.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = Car(CarInput{Mileage: 100, Efficiency: -25})
		require.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestMotorbikeAndBusRail(t *testing.T) {
	got, err := Motorbike(MotorbikeInput{Miles: 100})
	require.NoError(t, err)
	assert.InDelta(t, 28.2, got, tolerance)

	got, err = BusRail(BusRailInput{BusMiles: 100, RailMiles: 100})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got, tolerance)

	_, err = Motorbike(MotorbikeInput{Miles: -1})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = BusRail(BusRailInput{RailMiles: math.NaN()})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

// TestMonotonic checks that increasing any usage quantity never lowers the
// category result and that non-negative inputs give non-negative output.
func TestMonotonic(t *testing.T) {
	steps := []float64{0, 1, 2.5, 10, 400, 1e5}

	check := func(t *testing.T, name string, build func(v float64) Input) {
		t.Helper()
		prev := -1.0
		for _, v := range steps {
			got, err := Calculate(build(v))
			require.NoError(t, err, name)
			assert.GreaterOrEqual(t, got, 0.0, name)
			assert.GreaterOrEqual(t, got, prev, "%s must not decrease at %v", name, v)
			prev = got
		}
	}

	check(t, "electricity", func(v float64) Input { return HouseInput{Electricity: v, People: 3} })
	check(t, "coal bags", func(v float64) Input {
		return HouseInput{Coal: v, CoalUnit: units.Bags25kg, People: 1}
	})
	check(t, "short haul", func(v float64) Input { return FlightInput{Trips: 2, ShortHaulHours: v} })
	check(t, "long haul", func(v float64) Input {
		return FlightInput{Trips: 1, LongHaulHours: v, Class: ClassFirst, RadiativeForcing: true}
	})
	check(t, "car mileage", func(v float64) Input {
		return CarInput{Mileage: v, MileageUnit: units.Kilometres, Efficiency: 40, EfficiencyUnit: EfficiencyMPGUK}
	})
	check(t, "car l/100km", func(v float64) Input {
		return CarInput{Mileage: 500, Efficiency: v, EfficiencyUnit: EfficiencyLitresPer100}
	})
	check(t, "motorbike", func(v float64) Input { return MotorbikeInput{Miles: v} })
	check(t, "rail", func(v float64) Input { return BusRailInput{BusMiles: 5, RailMiles: v} })
}

func TestCalculate(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		_, err := Calculate(nil)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("errors carry the category", func(t *testing.T) {
		_, err := Calculate(MotorbikeInput{Miles: -5})
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Contains(t, err.Error(), "motorbike")
	})

	t.Run("overflowing result is rejected", func(t *testing.T) {
		_, err := Calculate(CarInput{
			Mileage:        math.MaxFloat64,
			Efficiency:     math.MaxFloat64,
			EfficiencyUnit: EfficiencyGramsPerKm,
		})
		require.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Contains(t, err.Error(), "car")
	})

	t.Run("inputs report their category", func(t *testing.T) {
		inputs := []Input{HouseInput{}, FlightInput{}, CarInput{}, MotorbikeInput{}, BusRailInput{}}
		for i, in := range inputs {
			assert.Equal(t, Categories()[i], in.Category())
		}
	})
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"house":     CategoryHouse,
		"HOUSE":     CategoryHouse,
		"flights":   CategoryFlight,
		"car":       CategoryCar,
		"motorbike": CategoryMotorbike,
		"busRail":   CategoryBusRail,
		"bus-rail":  CategoryBusRail,
		" bus_rail": CategoryBusRail,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseCategory("boat")
	require.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, Category("boat").Valid())
	assert.Equal(t, "Bus & Rail", CategoryBusRail.Label())
}
