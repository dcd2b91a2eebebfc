package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "config", "set", "output.precision", "3")
	require.NoError(t, err)
	assert.Equal(t, "Set output.precision = 3\n", out)

	out, _, err = execute(t, "config", "set", "lookups.cache_ttl_seconds", "12h")
	require.NoError(t, err)
	assert.Equal(t, "Set lookups.cache_ttl_seconds = 43200\n", out)

	config.ResetGlobalConfigForTest()
	out, _, err = execute(t, "config", "get", "output.precision")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "precision: 3")
	assert.NotContains(t, string(data), "level: error", "environment overrides are not persisted")
}

func TestConfigSet_Rejected(t *testing.T) {
	home := setupCLITest(t)

	_, _, err := execute(t, "config", "set", "household.people", "0")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	_, _, err = execute(t, "config", "set", "household.pets", "2")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, _, err = execute(t, "config", "set", "output.precision", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an integer")
}

func TestConfigList(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key+" = ")
	}
	assert.Contains(t, out, "logging.level = error")

	out, _, err = execute(t, "config", "list", "--output", "json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "household")
	assert.Contains(t, got, "lookups")
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Household: 1 people, distances in miles")

	writeConfig(t, home, "payment:\n  currency: usd\n")
	_, _, err = execute(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
