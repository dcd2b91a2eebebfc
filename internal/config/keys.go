package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rshade/footprint/internal/cache"
)

// keyAccessor reads and writes one dotted config key as a string.
type keyAccessor struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func intKey(field func(c *Config) *int) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			*field(c) = n
			return nil
		},
	}
}

func floatKey(field func(c *Config) *float64) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.FormatFloat(*field(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("expected a number, got %q", v)
			}
			*field(c) = f
			return nil
		},
	}
}

// ttlKey accepts seconds or a duration such as "12h".
func ttlKey(field func(c *Config) *int) keyAccessor {
	acc := intKey(field)
	acc.set = func(c *Config, v string) error {
		secs, err := cache.ParseTTL(v)
		if err != nil {
			return err
		}
		*field(c) = secs
		return nil
	}
	return acc
}

//nolint:gochecknoglobals // Static key table.
var keys = map[string]keyAccessor{
	"output.default_format": stringKey(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"output.precision":      intKey(func(c *Config) *int { return &c.Output.Precision }),

	"logging.level":  stringKey(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format": stringKey(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":   stringKey(func(c *Config) *string { return &c.Logging.File }),

	"household.people":        intKey(func(c *Config) *int { return &c.Household.People }),
	"household.distance_unit": stringKey(func(c *Config) *string { return &c.Household.DistanceUnit }),

	"lookups.vehicle_base_url":    stringKey(func(c *Config) *string { return &c.Lookups.VehicleBaseURL }),
	"lookups.geocoder_base_url":   stringKey(func(c *Config) *string { return &c.Lookups.GeocoderBaseURL }),
	"lookups.user_agent":          stringKey(func(c *Config) *string { return &c.Lookups.UserAgent }),
	"lookups.requests_per_second": floatKey(func(c *Config) *float64 { return &c.Lookups.RequestsPerSecond }),
	"lookups.timeout_seconds":     intKey(func(c *Config) *int { return &c.Lookups.TimeoutSeconds }),
	"lookups.cache_ttl_seconds":   ttlKey(func(c *Config) *int { return &c.Lookups.CacheTTLSeconds }),
	"lookups.cache_dir":           stringKey(func(c *Config) *string { return &c.Lookups.CacheDir }),

	"payment.delay_ms": intKey(func(c *Config) *int { return &c.Payment.DelayMS }),
	"payment.currency": stringKey(func(c *Config) *string { return &c.Payment.Currency }),
}

// Keys returns every settable dotted key, sorted.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the value of a dotted key such as "output.precision".
func (c *Config) Get(key string) (string, error) {
	acc, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return acc.get(c), nil
}

// Set parses value into a dotted key. The config is validated afterwards and
// the change is rolled back when the result is invalid.
func (c *Config) Set(key, value string) error {
	acc, ok := keys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	prev := acc.get(c)
	if err := acc.set(c, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := c.Validate(); err != nil {
		_ = acc.set(c, prev)
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}
