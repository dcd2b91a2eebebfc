package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/units"
)

func TestFormFields_FillAndBuild(t *testing.T) {
	t.Run("house defaults round trip", func(t *testing.T) {
		fields := formFieldsFor(emissions.CategoryHouse)
		require.NoError(t, fillFields(fields, emissions.DefaultHouseInput()))

		values := map[string]string{}
		for _, f := range fields {
			values[f.Key] = f.Value
		}
		assert.Equal(t, "1", values["people"])
		assert.Equal(t, units.KWh, values["gas_unit"])
		assert.Equal(t, units.Tonnes, values["wood_unit"])

		in, err := buildInput(emissions.CategoryHouse, fields)
		require.NoError(t, err)
		assert.Equal(t, emissions.DefaultHouseInput(), in)
	})

	t.Run("flight selectors", func(t *testing.T) {
		fields := formFieldsFor(emissions.CategoryFlight)
		require.NoError(t, fillFields(fields, emissions.DefaultFlightInput()))
		for _, f := range fields {
			switch f.Key {
			case "class":
				assert.Equal(t, "Economy", f.Value)
			case "radiative_forcing":
				assert.Equal(t, "false", f.Value)
			case "trips":
				assert.Equal(t, "1", f.Value)
			}
		}
	})

	t.Run("lookup rows stay strings", func(t *testing.T) {
		fields := formFieldsFor(emissions.CategoryCar)
		for i := range fields {
			switch fields[i].Key {
			case "year":
				fields[i].Value = "2022"
			case "make":
				fields[i].Value = "Null"
			}
		}
		in, err := buildInput(emissions.CategoryCar, fields)
		require.NoError(t, err)
		car, ok := in.(emissions.CarInput)
		require.True(t, ok)
		assert.Equal(t, "2022", car.Year)
		assert.Equal(t, "Null", car.Make)
		assert.Equal(t, emissions.EfficiencyMPGUS, car.EfficiencyUnit, "blank rows keep defaults")
	})

	t.Run("non-numeric quantity", func(t *testing.T) {
		fields := formFieldsFor(emissions.CategoryMotorbike)
		fields[0].Value = "lots"
		_, err := buildInput(emissions.CategoryMotorbike, fields)
		require.ErrorIs(t, err, emissions.ErrInvalidQuantity)
	})

	t.Run("selector wraps", func(t *testing.T) {
		f := formField{Value: "a", Options: []string{"a", "b", "c"}}
		f.cycle(-1)
		assert.Equal(t, "c", f.Value)
		f.cycle(2)
		assert.Equal(t, "b", f.Value)
	})
}

// typeInto edits the focused row.
func typeInto(m *FormModel, value string) {
	feed(m, key(tea.KeyEnter), keyRunes(value), key(tea.KeyEnter))
}

func TestFormModel_RecordsIntoStore(t *testing.T) {
	store := footprint.NewStore()
	m := NewFormModel(context.Background(), emissions.CategoryHouse, nil, store.Record, nil, 2)

	typeInto(m, "100")
	feed(m, key(tea.KeyDown))
	typeInto(m, "50")

	cmds := feed(m, keyRunes("s"))
	require.Len(t, cmds, 1)
	feed(m, runCmd(t, cmds[0])...)

	require.NoError(t, m.Err())
	got, ok := m.Result()
	require.True(t, ok)
	assert.InDelta(t, 32.5, got, 1e-9)
	assert.InDelta(t, 32.5, store.House(), 1e-9)
	assert.Contains(t, m.View(), "32.50 tonnes of CO2e")

	cmds = feed(m, key(tea.KeyEsc))
	require.Len(t, cmds, 1)
	msgs := runCmd(t, cmds[0])
	require.Len(t, msgs, 1)
	closed, ok := msgs[0].(FormClosedMsg)
	require.True(t, ok)
	assert.True(t, closed.Saved)
	assert.Equal(t, emissions.CategoryHouse, closed.Category)
	house, ok := closed.Input.(emissions.HouseInput)
	require.True(t, ok)
	assert.InDelta(t, 100.0, house.Electricity, 1e-9)
}

func TestFormModel_FailedCalculationKeepsStore(t *testing.T) {
	store := footprint.NewStore()
	require.NoError(t, store.Update(emissions.CategoryHouse, 4))
	m := NewFormModel(context.Background(), emissions.CategoryHouse, nil, store.Record, nil, 2)

	m.focusedRow = len(m.fields) - 1 // people
	typeInto(m, "0")
	cmds := feed(m, keyRunes("s"))
	feed(m, runCmd(t, cmds[0])...)

	require.ErrorIs(t, m.Err(), emissions.ErrDivisionByZero)
	assert.InDelta(t, 4.0, store.House(), 1e-9)
	assert.Contains(t, m.View(), "Error:")
}

func TestFormModel_EditKeys(t *testing.T) {
	m := NewFormModel(context.Background(), emissions.CategoryMotorbike, nil, nil, nil, 2)

	feed(m, key(tea.KeyEnter), keyRunes("123"), key(tea.KeyBackspace), key(tea.KeyEnter))
	assert.Equal(t, "12", m.Values()["miles"])

	feed(m, key(tea.KeyEnter), keyRunes("9"), key(tea.KeyEsc))
	assert.Equal(t, "12", m.Values()["miles"], "esc discards the edit")

	// Without a RecordFunc the form calculates inline.
	assert.Empty(t, feed(m, keyRunes("s")))
	got, ok := m.Result()
	require.True(t, ok)
	assert.InDelta(t, 3.384, got, 1e-9)
}

func TestFormModel_Selectors(t *testing.T) {
	m := NewFormModel(context.Background(), emissions.CategoryFlight, nil, nil, nil, 2)
	m.focusedRow = 3 // class

	feed(m, key(tea.KeyRight))
	assert.Equal(t, "Premium Economy", m.Values()["class"])
	feed(m, key(tea.KeyLeft), key(tea.KeyLeft))
	assert.Equal(t, "First", m.Values()["class"])
	feed(m, key(tea.KeyEnter))
	assert.Equal(t, "Economy", m.Values()["class"], "enter advances a selector")
}

func TestFormModel_Lookup(t *testing.T) {
	var gotKey string
	suggest := func(_ context.Context, key string, values map[string]string) ([]string, error) {
		gotKey = key
		if values["from"] == "" {
			return nil, errors.New("empty query")
		}
		return []string{"Paris, France", "Paris, Texas"}, nil
	}
	m := NewFormModel(context.Background(), emissions.CategoryFlight, nil, nil, suggest, 2)

	cmds := feed(m, keyRunes("l"))
	feed(m, runCmd(t, cmds[0])...)
	require.Error(t, m.Err())

	typeInto(m, "Paris")
	cmds = feed(m, keyRunes("l"))
	require.Len(t, cmds, 1)
	feed(m, runCmd(t, cmds[0])...)
	assert.Equal(t, "from", gotKey)
	assert.Contains(t, m.View(), "Paris, Texas")

	feed(m, key(tea.KeyDown), key(tea.KeyEnter))
	assert.Equal(t, "Paris, Texas", m.Values()["from"])

	// Non-lookup rows ignore "l".
	m.focusedRow = 5
	assert.Empty(t, feed(m, keyRunes("l")))
}

func TestFormModel_DropsStaleLookup(t *testing.T) {
	suggest := func(_ context.Context, _ string, values map[string]string) ([]string, error) {
		return []string{values["from"] + " match"}, nil
	}
	m := NewFormModel(context.Background(), emissions.CategoryFlight, nil, nil, suggest, 2)

	typeInto(m, "Lon")
	first := feed(m, keyRunes("l"))
	require.Len(t, first, 1)
	m.fields[m.focusedRow].Value = "London"
	second := feed(m, keyRunes("l"))
	require.Len(t, second, 1)

	feed(m, runCmd(t, second[0])...)
	feed(m, runCmd(t, first[0])...)
	assert.Contains(t, m.View(), "London match")
	assert.NotContains(t, m.View(), "Lon match")
}

func TestFormModel_PrefillsFromInput(t *testing.T) {
	in := emissions.BusRailInput{BusMiles: 100, RailMiles: 25}
	m := NewFormModel(context.Background(), emissions.CategoryBusRail, in, nil, nil, 2)

	assert.Equal(t, "100", m.Values()["bus_miles"])
	assert.Equal(t, "25", m.Values()["rail_miles"])
	assert.Contains(t, m.View(), "BUS & RAIL")
}
