package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHome points FOOTPRINT_HOME and HOME at a temp dir and resets the
// global config so every test starts from defaults.
func stubHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(EnvHome, filepath.Join(home, ".footprint"))
	for _, env := range []string{EnvLogLevel, EnvOutputFormat, EnvPaymentDelayMS, EnvVehicleBaseURL, EnvGeocoderBaseURL} {
		t.Setenv(env, "")
	}
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	return home
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path, err := ConfigFilePath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Household.People)
	assert.Equal(t, "miles", cfg.Household.DistanceUnit)
	assert.Equal(t, DefaultVehicleBaseURL, cfg.Lookups.VehicleBaseURL)
	assert.Equal(t, DefaultGeocoderBaseURL, cfg.Lookups.GeocoderBaseURL)
	assert.Equal(t, 2000, cfg.Payment.DelayMS)
	assert.Equal(t, "USD", cfg.Payment.Currency)
	require.NoError(t, cfg.Validate())
}

func TestNew_MergesFileOntoDefaults(t *testing.T) {
	stubHome(t)
	writeConfig(t, `
output:
  precision: 3
household:
  people: 4
unknown_section:
  foo: bar
`)

	cfg := New()

	assert.Equal(t, 3, cfg.Output.Precision)
	assert.Equal(t, "table", cfg.Output.DefaultFormat, "fields absent from the file keep defaults")
	assert.Equal(t, 4, cfg.Household.People)
	assert.Equal(t, "miles", cfg.Household.DistanceUnit)
	assert.Equal(t, 2000, cfg.Payment.DelayMS)
}

func TestNew_MalformedFileFallsBackToDefaults(t *testing.T) {
	stubHome(t)
	writeConfig(t, "output: [not, a, map")

	cfg := New()
	assert.Equal(t, Default().Output, cfg.Output)
}

func TestNew_EnvOverrides(t *testing.T) {
	stubHome(t)
	writeConfig(t, "payment:\n  delay_ms: 500\n")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvOutputFormat, "json")
	t.Setenv(EnvPaymentDelayMS, "0")
	t.Setenv(EnvVehicleBaseURL, "http://127.0.0.1:9999/menu")
	t.Setenv(EnvGeocoderBaseURL, "http://127.0.0.1:9998")

	cfg := New()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, 0, cfg.Payment.DelayMS, "env wins over the file")
	assert.Equal(t, "http://127.0.0.1:9999/menu", cfg.Lookups.VehicleBaseURL)
	assert.Equal(t, "http://127.0.0.1:9998", cfg.Lookups.GeocoderBaseURL)
}

func TestNew_IgnoresUnparseableDelay(t *testing.T) {
	stubHome(t)
	t.Setenv(EnvPaymentDelayMS, "soon")

	assert.Equal(t, 2000, New().Payment.DelayMS)
}

func TestSaveAndLoad(t *testing.T) {
	stubHome(t)

	cfg := New()
	cfg.Household.People = 3
	cfg.Payment.Currency = "EUR"
	require.NoError(t, cfg.Save())

	path, err := ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Household.People)
	assert.Equal(t, "EUR", loaded.Payment.Currency)
	assert.Equal(t, cfg.Lookups, loaded.Lookups)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{name: "bad format", mutate: func(c *Config) { c.Output.DefaultFormat = "xml" }, wantKey: "output.default_format"},
		{name: "negative precision", mutate: func(c *Config) { c.Output.Precision = -1 }, wantKey: "output.precision"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantKey: "logging.level"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantKey: "logging.format"},
		{name: "zero people", mutate: func(c *Config) { c.Household.People = 0 }, wantKey: "household.people"},
		{name: "bad distance unit", mutate: func(c *Config) { c.Household.DistanceUnit = "furlongs" }, wantKey: "household.distance_unit"},
		{name: "bad vehicle url", mutate: func(c *Config) { c.Lookups.VehicleBaseURL = "ftp://example.com" }, wantKey: "lookups.vehicle_base_url"},
		{name: "zero rate", mutate: func(c *Config) { c.Lookups.RequestsPerSecond = 0 }, wantKey: "lookups.requests_per_second"},
		{name: "negative ttl", mutate: func(c *Config) { c.Lookups.CacheTTLSeconds = -5 }, wantKey: "lookups.cache_ttl_seconds"},
		{name: "negative delay", mutate: func(c *Config) { c.Payment.DelayMS = -1 }, wantKey: "payment.delay_ms"},
		{name: "lowercase currency", mutate: func(c *Config) { c.Payment.Currency = "usd" }, wantKey: "payment.currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("payment.delay_ms")
	require.NoError(t, err)
	assert.Equal(t, "2000", v)

	require.NoError(t, cfg.Set("household.people", "5"))
	assert.Equal(t, 5, cfg.Household.People)

	require.NoError(t, cfg.Set("lookups.requests_per_second", "0.5"))
	v, err = cfg.Get("lookups.requests_per_second")
	require.NoError(t, err)
	assert.Equal(t, "0.5", v)

	t.Run("unknown key", func(t *testing.T) {
		_, getErr := cfg.Get("output.colour")
		require.ErrorIs(t, getErr, ErrUnknownKey)
		require.ErrorIs(t, cfg.Set("output.colour", "red"), ErrUnknownKey)
	})

	t.Run("unparseable value", func(t *testing.T) {
		err := cfg.Set("output.precision", "two")
		require.Error(t, err)
		assert.Equal(t, 2, cfg.Output.Precision)
	})

	t.Run("invalid value is rolled back", func(t *testing.T) {
		err := cfg.Set("household.people", "0")
		require.Error(t, err)
		assert.Equal(t, 5, cfg.Household.People)
	})
}

func TestKeysCoverEveryKnownKey(t *testing.T) {
	cfg := Default()
	got := Keys()
	assert.Len(t, got, 16)
	assert.IsNonDecreasing(t, got)
	for _, k := range got {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestSetCacheTTLAcceptsDurations(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("lookups.cache_ttl_seconds", "12h"))
	assert.Equal(t, 43200, cfg.Lookups.CacheTTLSeconds)

	require.NoError(t, cfg.Set("lookups.cache_ttl_seconds", "0"))
	assert.Zero(t, cfg.Lookups.CacheTTLSeconds)

	require.Error(t, cfg.Set("lookups.cache_ttl_seconds", "forever"))
}
