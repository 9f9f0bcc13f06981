package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"go.yaml.in/yaml/v3"
)

// Config represents the structure of the YAML file that tunes relationship
// resolution.
//
// Example YAML:
//
//	disabled: [java]
//	pluginConf:
//	  pe:
//	    legacyFallback: false
//
// Resolvers named in disabled are not run. pluginConf holds per-resolver
// options; a missing section or key falls back to the resolver's default.
type Config struct {
	Disabled   []string                  `yaml:"disabled,omitempty"`
	PluginConf map[string]map[string]any `yaml:"pluginConf,omitempty"`
}

// Load parses a config file from the given path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a config document. An empty document is a valid, empty
// config.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for _, name := range c.Disabled {
		if name == "" {
			return nil, fmt.Errorf("disabled entries must not be empty")
		}
	}
	return &c, nil
}

// Validate reports an error for any resolver name in disabled or pluginConf
// that is not among known.
func (c *Config) Validate(known ...string) error {
	if c == nil {
		return nil
	}
	for _, name := range c.Disabled {
		if !slices.Contains(known, name) {
			return fmt.Errorf("unknown resolver %q in disabled (known: %v)", name, known)
		}
	}
	for name := range c.PluginConf {
		if !slices.Contains(known, name) {
			return fmt.Errorf("unknown resolver %q in pluginConf (known: %v)", name, known)
		}
	}
	return nil
}

// Enabled reports whether the resolver called name should run. A nil config
// enables everything.
func (c *Config) Enabled(name string) bool {
	if c == nil {
		return true
	}
	return !slices.Contains(c.Disabled, name)
}

// PConf returns the option key of the resolver called name. Missing config,
// missing section and missing key all yield def.
func (c *Config) PConf(name, key string, def any) any {
	if c == nil {
		return def
	}
	v, ok := c.PluginConf[name][key]
	if !ok {
		slog.Debug("config: option not set; using default", "resolver", name, "key", key, "default", def)
		return def
	}
	return v
}

// PConfBool is PConf for boolean options. A value of another type is an
// error.
func (c *Config) PConfBool(name, key string, def bool) (bool, error) {
	switch v := c.PConf(name, key, def).(type) {
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("pluginConf.%s.%s must be a bool, got %T", name, key, v)
	}
}
