// Package config loads the registry's loadable configuration: the
// input_overrides and column_mapping parameters register_defaults accepts
// (spec.md §4.1), captured as a YAML file so a driver need not hardcode
// them. Mirrors the teacher's config-loading convention
// (src/engine/engine_v1/config.go): yaml-tagged struct, validated with
// validator/v10 struct tags, loaded from a file path.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RegistryConfig is the on-disk shape of register_defaults' two parameters.
type RegistryConfig struct {
	// InputOverrides maps a declared input.* name to the value that should
	// win over the script's own default, e.g. for a backtest sweep.
	InputOverrides map[string]any `yaml:"input_overrides" validate:"omitempty"`
	// ColumnMapping rekeys bar fields before the data namespace hands them
	// to a script, e.g. {"close": "c"} makes the close price visible as `c`.
	ColumnMapping map[string]string `yaml:"column_mapping" validate:"omitempty,dive,required"`
}

var validate = validator.New()

// Load reads and validates a RegistryConfig from a YAML file at path.
func Load(path string) (*RegistryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry config: %w", err)
	}

	var cfg RegistryConfig

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse registry config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid registry config: %w", err)
	}

	return &cfg, nil
}
