// Package footprint holds the aggregation store: the single source of truth
// for the per-category emissions of one session.
//
// The store keeps one tonnes-CO2e value per category. Every update overwrites
// its category (last write wins) and never accumulates; the total is always
// derived from the five fields. State is volatile and never persisted.
package footprint

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/logging"
)

// State is a point-in-time copy of the store. All fields are tonnes CO2e.
type State struct {
	House     float64 `json:"house" yaml:"house"`
	Flight    float64 `json:"flight" yaml:"flight"`
	Car       float64 `json:"car" yaml:"car"`
	Motorbike float64 `json:"motorbike" yaml:"motorbike"`
	BusRail   float64 `json:"busRail" yaml:"busRail"`
}

// Total returns the sum of the five fields.
func (s State) Total() float64 {
	return s.House + s.Flight + s.Car + s.Motorbike + s.BusRail
}

// Get returns the field for category; unknown categories read as 0.
func (s State) Get(c emissions.Category) float64 {
	switch c {
	case emissions.CategoryHouse:
		return s.House
	case emissions.CategoryFlight:
		return s.Flight
	case emissions.CategoryCar:
		return s.Car
	case emissions.CategoryMotorbike:
		return s.Motorbike
	case emissions.CategoryBusRail:
		return s.BusRail
	default:
		return 0
	}
}

// with returns a copy of s with category set to v.
func (s State) with(c emissions.Category, v float64) State {
	switch c {
	case emissions.CategoryHouse:
		s.House = v
	case emissions.CategoryFlight:
		s.Flight = v
	case emissions.CategoryCar:
		s.Car = v
	case emissions.CategoryMotorbike:
		s.Motorbike = v
	case emissions.CategoryBusRail:
		s.BusRail = v
	}
	return s
}

// Store is the aggregation store. The zero value is an empty, ready store.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store with every category at zero.
func NewStore() *Store {
	return &Store{}
}

// Update overwrites one category. The value must be finite and >= 0; on
// error the previous state is kept.
func (s *Store) Update(category emissions.Category, value float64) error {
	return s.update(context.Background(), category, value)
}

func (s *Store) update(ctx context.Context, category emissions.Category, value float64) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", emissions.ErrUnknownCategory, category)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%w: %s value %v", emissions.ErrInvalidQuantity, category, value)
	}

	s.mu.Lock()
	s.state = s.state.with(category, value)
	total := s.state.Total()
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Str("component", "footprint").
		Str("category", category.String()).
		Float64("tonnes", value).
		Float64("total", total).
		Msg("category updated")
	return nil
}

// Record calculates in and, only if the calculation succeeds, stores the
// result under the input's category. A failed calculation leaves the store
// untouched.
func (s *Store) Record(ctx context.Context, in emissions.Input) (float64, error) {
	value, err := emissions.Calculate(in)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "footprint").
			Err(err).
			Msg("calculation rejected, keeping previous value")
		return 0, err
	}
	if err := s.update(ctx, in.Category(), value); err != nil {
		return 0, err
	}
	return value, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Get returns the current value for category.
func (s *Store) Get(category emissions.Category) float64 {
	return s.Snapshot().Get(category)
}

// Total returns the sum of all categories.
func (s *Store) Total() float64 {
	return s.Snapshot().Total()
}

// House returns the household footprint.
func (s *Store) House() float64 { return s.Get(emissions.CategoryHouse) }

// Flight returns the flight footprint.
func (s *Store) Flight() float64 { return s.Get(emissions.CategoryFlight) }

// Car returns the car footprint.
func (s *Store) Car() float64 { return s.Get(emissions.CategoryCar) }

// Motorbike returns the motorbike footprint.
func (s *Store) Motorbike() float64 { return s.Get(emissions.CategoryMotorbike) }

// BusRail returns the bus and rail footprint.
func (s *Store) BusRail() float64 { return s.Get(emissions.CategoryBusRail) }
