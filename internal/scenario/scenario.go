// Package scenario loads footprint scenarios: YAML documents holding one
// optional section per calculator form. A scenario can be evaluated into a
// footprint.Store in one go, which is what `footprint total -f` and the
// dashboard use.
//
// Example:
//
//	schema_version: "1.0.0"
//	name: household 2026
//	house:
//	  electricity: 100
//	  gas: 50
//	  people: 2
//	motorbike:
//	  miles: 100
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/logging"
)

// CurrentSchemaVersion is written by New and accepted by every reader
// satisfying SupportedSchema.
const CurrentSchemaVersion = "1.0.0"

// SupportedSchema is the semver constraint on schema_version.
const SupportedSchema = "^1"

// Errors returned while loading scenarios.
var (
	ErrInvalidScenario   = errors.New("invalid scenario")
	ErrUnsupportedSchema = errors.New("unsupported scenario schema")
	ErrEmptyScenario     = errors.New("scenario has no categories")
)

// Scenario is one set of form inputs. Absent sections are nil and leave their
// category untouched when applied.
type Scenario struct {
	SchemaVersion string `json:"schema_version" yaml:"schema_version"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`

	House     *emissions.HouseInput     `json:"house,omitempty" yaml:"house,omitempty"`
	Flight    *emissions.FlightInput    `json:"flight,omitempty" yaml:"flight,omitempty"`
	Car       *emissions.CarInput       `json:"car,omitempty" yaml:"car,omitempty"`
	Motorbike *emissions.MotorbikeInput `json:"motorbike,omitempty" yaml:"motorbike,omitempty"`
	BusRail   *emissions.BusRailInput   `json:"bus_rail,omitempty" yaml:"bus_rail,omitempty"`
}

// New returns an empty scenario at the current schema version.
func New(name string) *Scenario {
	return &Scenario{SchemaVersion: CurrentSchemaVersion, Name: name}
}

// rawScenario defers section decoding so each section starts from its form
// defaults.
type rawScenario struct {
	SchemaVersion string    `yaml:"schema_version"`
	Name          string    `yaml:"name"`
	House         yaml.Node `yaml:"house"`
	Flight        yaml.Node `yaml:"flight"`
	Car           yaml.Node `yaml:"car"`
	Motorbike     yaml.Node `yaml:"motorbike"`
	BusRail       yaml.Node `yaml:"bus_rail"`
}

// UnmarshalYAML decodes every present section on top of the matching
// emissions.DefaultXInput, so omitted units and people fall back to the form
// defaults instead of zero values.
func (s *Scenario) UnmarshalYAML(node *yaml.Node) error {
	var raw rawScenario
	if err := node.Decode(&raw); err != nil {
		return err
	}

	out := Scenario{SchemaVersion: raw.SchemaVersion, Name: raw.Name}
	var err error
	if out.House, err = decodeSection(&raw.House, emissions.DefaultHouseInput()); err != nil {
		return fmt.Errorf("house: %w", err)
	}
	if out.Flight, err = decodeSection(&raw.Flight, emissions.DefaultFlightInput()); err != nil {
		return fmt.Errorf("flight: %w", err)
	}
	if out.Car, err = decodeSection(&raw.Car, emissions.DefaultCarInput()); err != nil {
		return fmt.Errorf("car: %w", err)
	}
	if out.Motorbike, err = decodeSection(&raw.Motorbike, emissions.MotorbikeInput{}); err != nil {
		return fmt.Errorf("motorbike: %w", err)
	}
	if out.BusRail, err = decodeSection(&raw.BusRail, emissions.BusRailInput{}); err != nil {
		return fmt.Errorf("bus_rail: %w", err)
	}
	*s = out
	return nil
}

// decodeSection returns nil for missing or null sections.
func decodeSection[T any](n *yaml.Node, def T) (*T, error) {
	if n.Kind == 0 || n.ShortTag() == "!!null" {
		return nil, nil //nolint:nilnil // Absent section.
	}
	if err := n.Decode(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads, parses and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario document and checks its schema version. Sections
// are validated when applied.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal renders s as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Inputs returns the present sections in category order.
func (s *Scenario) Inputs() []emissions.Input {
	var out []emissions.Input
	if s.House != nil {
		out = append(out, *s.House)
	}
	if s.Flight != nil {
		out = append(out, *s.Flight)
	}
	if s.Car != nil {
		out = append(out, *s.Car)
	}
	if s.Motorbike != nil {
		out = append(out, *s.Motorbike)
	}
	if s.BusRail != nil {
		out = append(out, *s.BusRail)
	}
	return out
}

// Report is the outcome of Apply. Every present category lands in exactly
// one of the two maps.
type Report struct {
	Recorded map[emissions.Category]float64
	Failed   map[emissions.Category]error
}

// OK reports whether every category was recorded.
func (r Report) OK() bool { return len(r.Failed) == 0 }

// Apply validates and calculates every present section concurrently and
// records each success into store. A failing category keeps its previous
// store value and does not stop the others; the returned error joins every
// failure.
func (s *Scenario) Apply(ctx context.Context, store *footprint.Store) (Report, error) {
	inputs := s.Inputs()
	report := Report{
		Recorded: make(map[emissions.Category]float64, len(inputs)),
		Failed:   make(map[emissions.Category]error),
	}
	if len(inputs) == 0 {
		return report, ErrEmptyScenario
	}

	log := logging.FromContext(ctx)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, in := range inputs {
		wg.Go(func() {
			value, err := applySection(ctx, store, in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed[in.Category()] = err
				return
			}
			report.Recorded[in.Category()] = value
		})
	}
	wg.Wait()

	log.Debug().
		Str("component", "scenario").
		Str("scenario", s.Name).
		Int("recorded", len(report.Recorded)).
		Int("failed", len(report.Failed)).
		Msg("scenario applied")

	if report.OK() {
		return report, nil
	}
	errs := make([]error, 0, len(report.Failed))
	for _, c := range emissions.Categories() {
		if err, ok := report.Failed[c]; ok {
			errs = append(errs, err)
		}
	}
	return report, errors.Join(errs...)
}

func applySection(ctx context.Context, store *footprint.Store, in emissions.Input) (float64, error) {
	if err := ValidateSection(in); err != nil {
		return 0, err
	}
	return store.Record(ctx, in)
}

// Evaluate applies s to a fresh store and returns the resulting state.
func (s *Scenario) Evaluate(ctx context.Context) (footprint.State, Report, error) {
	store := footprint.NewStore()
	report, err := s.Apply(ctx, store)
	return store.Snapshot(), report, err
}
