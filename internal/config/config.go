// Package config loads CLI configuration for the strand runtime tools.
// Precedence, lowest to highest: built-in defaults, YAML config file,
// STRAND_ environment variables, command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the runtime tool settings.
type Config struct {
	Device string   `koanf:"device"` // "cpu" or "webgpu"
	Axis   int      `koanf:"axis"`   // concat axis for bench
	Repeat int      `koanf:"repeat"` // bench iterations
	Shapes []string `koanf:"shapes"` // bench input shapes, e.g. "2x3"
}

// Defaults used when neither file, env nor flags provide a value.
var defaults = map[string]interface{}{
	"device": "cpu",
	"axis":   0,
	"repeat": 100,
	"shapes": []string{"256x512", "256x512"},
}

// Load builds the configuration from defaults, an optional YAML file, the
// environment and the given flag set.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider("STRAND_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STRAND_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
