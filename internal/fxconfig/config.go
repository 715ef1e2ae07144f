// Package fxconfig parses the YAML configuration surface describing which
// built-in functions are enabled and how the evaluation context is set up
// (SPEC_FULL.md's ambient-stack config section; spec.md itself treats
// FilterX's "configuration surface" as just the expression source handed
// to the external parser — this package covers the embedding host's side
// of that boundary: enabling/disabling function-library entries and
// setting default template/debug options per process). It only parses and
// reports these settings: funclib registers every builtin regardless, and
// no context is configured from a Config by this package.
package fxconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/streamforge/filterx/internal/host"
)

// Config is the top-level filterx.yaml document.
type Config struct {
	// Functions lists function-library entries to enable or disable.
	// Unlisted functions default to enabled.
	Functions []FunctionConfig `yaml:"functions"`
	// Debug is the value for an evaluation context's debug flag
	// (evalctx.Context.EnableDebug), which produces no logging itself.
	Debug bool `yaml:"debug"`
	// Trace turns on per-eval trace event recording (spec.md §7).
	Trace bool `yaml:"trace"`
	// Template carries the default rendering options passed to every
	// evaluation context (spec.md §4.6).
	Template TemplateConfig `yaml:"template"`
}

// FunctionConfig toggles one function-library entry by name (spec.md
// §2.5 "registered at configuration time").
type FunctionConfig struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
}

// TemplateConfig mirrors host.TemplateOptions in YAML-friendly form.
type TemplateConfig struct {
	TimeZone string `yaml:"timezone"`
	Escape   bool   `yaml:"escape"`
}

// LoadConfig reads and parses a filterx.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses filterx.yaml content from bytes. path is used only
// for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for filterx.yaml starting from dir and walking up
// through parent directories.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range []string{"filterx.yaml", "filterx.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	seen := make(map[string]bool)
	for i, fc := range c.Functions {
		if fc.Name == "" {
			return fmt.Errorf("%s: functions[%d]: name is required", path, i)
		}
		if seen[fc.Name] {
			return fmt.Errorf("%s: functions[%d]: duplicate entry for %q", path, i, fc.Name)
		}
		seen[fc.Name] = true
	}
	return nil
}

// IsEnabled reports whether name should be registered, defaulting to
// enabled when unlisted.
func (c *Config) IsEnabled(name string) bool {
	for _, fc := range c.Functions {
		if fc.Name == name {
			return fc.Enabled == nil || *fc.Enabled
		}
	}
	return true
}

// TemplateOptions converts the YAML template block into host.TemplateOptions.
func (c *Config) TemplateOptions() host.TemplateOptions {
	return host.TemplateOptions{
		TimeZone: c.Template.TimeZone,
		Escape:   c.Template.Escape,
	}
}
