// Package config provides configuration management for kanjigraph.
//
// Config file locations (priority order):
//  1. $KANJIGRAPH_CONFIG
//  2. kanjigraph.yaml in the directory of the input file
//  3. ./kanjigraph.yaml
//  4. $XDG_CONFIG_HOME/kanjigraph/config.yaml
//  5. ~/.config/kanjigraph/config.yaml
//  6. /etc/kanjigraph/config.yaml
//
// Command line flags override values loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by the export pipeline
var OutputFormats = []string{"png", "dot", "text", "mermaid"}

// Load finds and loads the config file for a run over input, or returns
// defaults if none is found. input may be empty.
func Load(input string) (*Config, string, error) {
	path := FindConfigPath(input)

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "kanji_output"
	}
	if c.Output.Format == "" {
		c.Output.Format = "png"
	}
	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = 2
	}
	if c.Render.OutgoingLimit == 0 {
		c.Render.OutgoingLimit = 5
	}
	if c.Graphviz.Binary == "" {
		c.Graphviz.Binary = "dot"
	}
	if c.Graphviz.Timeout == 0 {
		c.Graphviz.Timeout = Duration(30 * time.Second)
	}
	if c.Export.Jobs == 0 {
		c.Export.Jobs = 1
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":3000"
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if !IsOutputFormat(c.Output.Format) {
		return fmt.Errorf("output.format %q is not one of %v", c.Output.Format, OutputFormats)
	}
	if c.Render.MaxDepth < 0 {
		return fmt.Errorf("render.max_depth must not be negative")
	}
	if c.Render.OutgoingLimit < 0 {
		return fmt.Errorf("render.outgoing_limit must not be negative")
	}
	if c.Export.Jobs < 1 {
		return fmt.Errorf("export.jobs must be at least 1")
	}
	return nil
}

// IsOutputFormat reports whether format is an accepted output format
func IsOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Output: %s (%s)\n", c.Output.Dir, c.Output.Format)
	summary += fmt.Sprintf("Render: depth %d, outgoing %d\n", c.Render.MaxDepth, c.Render.OutgoingLimit)
	summary += fmt.Sprintf("Graphviz: %s (timeout %s), jobs: %d", c.Graphviz.Binary, c.Graphviz.Timeout.Duration(), c.Export.Jobs)
	if c.Catalog.Path != "" {
		summary += fmt.Sprintf("\nCatalog: %s", c.Catalog.Path)
	}
	return summary
}
