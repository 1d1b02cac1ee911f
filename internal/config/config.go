// Package config loads the toolchain's project-level tool configuration
// (not to be confused with the package lockfile): default compile
// target, the prelude source path, the panic-mode recovery bound, and
// extra package search paths. It is YAML rather than JSON (the
// lockfile's format) because it's hand-edited project config, not a
// machine-generated dependency manifest.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file a project root may carry.
const DefaultFilename = "lumina.yaml"

// Config is a project's optional tool configuration.
type Config struct {
	// Target is the default codegen backend when a CLI caller doesn't
	// pass --target: "js" or "wat".
	Target string `yaml:"target"`

	// Prelude names a prelude URI/path. It is parsed but not read by any
	// CLI command; the project manager keeps its default prelude URI.
	Prelude string `yaml:"prelude"`

	// MaxErrors overrides the panic-mode recovery bound (default 25
	// when zero/unset).
	MaxErrors int `yaml:"max_errors"`

	// SearchPaths lists extra import directories. It is parsed but not
	// read by any CLI command: import resolution in internal/project
	// uses only the importer's own location and the lockfile.
	SearchPaths []string `yaml:"search_paths"`
}

// Default returns the configuration used when no lumina.yaml is found.
func Default() *Config {
	return &Config{Target: "js", MaxErrors: 25}
}

// Load reads and parses path. A missing file is returned as the
// os.ReadFile error; LoadOrDefault is the variant that falls back to
// Default() instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Target == "" {
		cfg.Target = "js"
	}
	if cfg.MaxErrors == 0 {
		cfg.MaxErrors = 25
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists, otherwise returns Default().
// Only a malformed (as opposed to missing) file is reported as an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}
