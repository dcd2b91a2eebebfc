package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyOutput    = "output"
	keyLogging   = "logging"
	keyHousehold = "household"
	keyLookups   = "lookups"
	keyPayment   = "payment"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. A section present in the file is overlaid field by field onto the
// target's section; absent sections are left unchanged. Unknown top-level keys
// are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node onto the matching section of target. Decoding
// onto the existing value keeps defaults for fields the file leaves out.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		return node.Decode(&target.Output)
	case keyLogging:
		return node.Decode(&target.Logging)
	case keyHousehold:
		return node.Decode(&target.Household)
	case keyLookups:
		return node.Decode(&target.Lookups)
	case keyPayment:
		return node.Decode(&target.Payment)
	default:
		return nil
	}
}
