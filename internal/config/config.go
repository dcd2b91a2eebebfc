// Package config loads, validates, and persists the footprint configuration
// file ($FOOTPRINT_HOME/config.yaml) and exposes it through a global singleton.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the config layer.
const (
	EnvHome             = "FOOTPRINT_HOME"
	EnvLogLevel         = "FOOTPRINT_LOG_LEVEL"
	EnvOutputFormat     = "FOOTPRINT_OUTPUT_FORMAT"
	EnvPaymentDelayMS   = "FOOTPRINT_PAYMENT_DELAY_MS"
	EnvVehicleBaseURL   = "FOOTPRINT_VEHICLE_BASE_URL"
	EnvGeocoderBaseURL  = "FOOTPRINT_GEOCODER_BASE_URL"
	configFileName      = "config.yaml"
	defaultDirName      = ".footprint"
	outputTypeFile      = "file"
	defaultPrecision    = 2
	defaultPaymentDelay = 2000
)

// Default upstream endpoints.
const (
	DefaultVehicleBaseURL  = "https://www.fueleconomy.gov/ws/rest/vehicle/menu"
	DefaultGeocoderBaseURL = "https://nominatim.openstreetmap.org"
	DefaultUserAgent       = "footprint/1.0 (+https://github.com/rshade/footprint)"
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the on-disk configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"    json:"output"    validate:"required"`
	Logging   LoggingConfig   `yaml:"logging"   json:"logging"   validate:"required"`
	Household HouseholdConfig `yaml:"household" json:"household" validate:"required"`
	Lookups   LookupsConfig   `yaml:"lookups"   json:"lookups"   validate:"required"`
	Payment   PaymentConfig   `yaml:"payment"   json:"payment"   validate:"required"`

	path string
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format" validate:"oneof=table json"`
	Precision     int    `yaml:"precision"      json:"precision"      validate:"min=0,max=10"`
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string `yaml:"level"            json:"level"            validate:"loglevel"`
	Format string `yaml:"format,omitempty" json:"format,omitempty" validate:"omitempty,oneof=console json"`
	File   string `yaml:"file,omitempty"   json:"file,omitempty"`
}

// HouseholdConfig holds defaults applied to the house and distance forms.
type HouseholdConfig struct {
	People       int    `yaml:"people"        json:"people"        validate:"min=1"`
	DistanceUnit string `yaml:"distance_unit" json:"distance_unit" validate:"oneof=miles km"`
}

// LookupsConfig configures the vehicle and location lookup clients.
type LookupsConfig struct {
	VehicleBaseURL    string  `yaml:"vehicle_base_url"    json:"vehicle_base_url"    validate:"required,http_url"`
	GeocoderBaseURL   string  `yaml:"geocoder_base_url"   json:"geocoder_base_url"   validate:"required,http_url"`
	UserAgent         string  `yaml:"user_agent"          json:"user_agent"          validate:"required"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second" validate:"gt=0"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"     json:"timeout_seconds"     validate:"gt=0"`
	CacheTTLSeconds   int     `yaml:"cache_ttl_seconds"   json:"cache_ttl_seconds"   validate:"min=0"`
	CacheDir          string  `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`
}

// PaymentConfig configures the donation simulator.
type PaymentConfig struct {
	DelayMS  int    `yaml:"delay_ms" json:"delay_ms" validate:"min=0"`
	Currency string `yaml:"currency" json:"currency" validate:"len=3,uppercase"`
}

// New returns a Config with defaults, merged with the config file when one
// exists and then with environment overrides. A malformed file is logged and
// ignored so the CLI stays usable.
func New() *Config {
	cfg := Default()

	if path, err := ConfigFilePath(); err == nil {
		cfg.path = path
		if _, statErr := os.Stat(path); statErr == nil {
			if loadErr := ShallowMergeYAML(cfg, path); loadErr != nil {
				Logger.Warn().Err(loadErr).Str("path", path).Msg("ignoring unreadable config file")
			}
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: "table",
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Household: HouseholdConfig{
			People:       1,
			DistanceUnit: "miles",
		},
		Lookups: LookupsConfig{
			VehicleBaseURL:    DefaultVehicleBaseURL,
			GeocoderBaseURL:   DefaultGeocoderBaseURL,
			UserAgent:         DefaultUserAgent,
			RequestsPerSecond: 1,
			TimeoutSeconds:    10,
			CacheTTLSeconds:   86400,
		},
		Payment: PaymentConfig{
			DelayMS:  defaultPaymentDelay,
			Currency: "USD",
		},
	}
}

// Load reads path on top of the defaults. Unlike New, errors are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := ConfigFilePath()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// ApplyEnvOverrides applies FOOTPRINT_* environment variables. Unparseable
// numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvPaymentDelayMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Payment.DelayMS = ms
		}
	}
	if v := os.Getenv(EnvVehicleBaseURL); v != "" {
		c.Lookups.VehicleBaseURL = v
	}
	if v := os.Getenv(EnvGeocoderBaseURL); v != "" {
		c.Lookups.GeocoderBaseURL = v
	}
}

// Validate checks every section and returns a single error listing each
// offending key.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", yamlPath(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// newValidator builds a validator that reports yaml field names and knows
// the loglevel rule.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := zerolog.ParseLevel(fl.Field().String())
		return err == nil
	})
	return v
}

// yamlPath turns "Config.output.default_format" into "output.default_format".
func yamlPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// ConfigFilePath returns $FOOTPRINT_HOME/config.yaml.
func ConfigFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
