package config

import "time"

// Config is the on-disk configuration of kanjigraph
type Config struct {
	Version  int            `yaml:"version"`
	Output   OutputConfig   `yaml:"output"`
	Render   RenderConfig   `yaml:"render"`
	Graphviz GraphvizConfig `yaml:"graphviz"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Export   ExportConfig   `yaml:"export"`
	Serve    ServeConfig    `yaml:"serve"`
}

// OutputConfig controls where and how diagrams are written
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png, dot, text or mermaid
}

// RenderConfig bounds the traversal
type RenderConfig struct {
	MaxDepth      int `yaml:"max_depth"`
	OutgoingLimit int `yaml:"outgoing_limit"`
}

// GraphvizConfig locates the rasterizer
type GraphvizConfig struct {
	Binary  string   `yaml:"binary"`
	Timeout Duration `yaml:"timeout"`
}

// CatalogConfig holds the optional SQLite catalog settings
type CatalogConfig struct {
	Path string `yaml:"path"` // empty disables the catalog
}

// ExportConfig holds export pipeline settings
type ExportConfig struct {
	Jobs int `yaml:"jobs"`
}

// ServeConfig holds HTTP server settings
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
