package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Dir != "kanji_output" {
		t.Errorf("Output.Dir = %s, want kanji_output", cfg.Output.Dir)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("Output.Format = %s, want png", cfg.Output.Format)
	}
	if cfg.Render.MaxDepth != 2 || cfg.Render.OutgoingLimit != 5 {
		t.Errorf("Render = %+v, want depth 2 and limit 5", cfg.Render)
	}
	if cfg.Graphviz.Binary != "dot" {
		t.Errorf("Graphviz.Binary = %s, want dot", cfg.Graphviz.Binary)
	}
	if cfg.Graphviz.Timeout.Duration() != 30*time.Second {
		t.Errorf("Graphviz.Timeout = %s, want 30s", cfg.Graphviz.Timeout.Duration())
	}
	if cfg.Export.Jobs != 1 {
		t.Errorf("Export.Jobs = %d, want 1", cfg.Export.Jobs)
	}
	if cfg.Serve.Addr != ":3000" {
		t.Errorf("Serve.Addr = %s, want :3000", cfg.Serve.Addr)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %s, want empty", cfg.Catalog.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"mermaid format", func(c *Config) { c.Output.Format = "mermaid" }, ""},
		{"unknown format", func(c *Config) { c.Output.Format = "svg" }, "output.format"},
		{"negative depth", func(c *Config) { c.Render.MaxDepth = -1 }, "max_depth"},
		{"negative limit", func(c *Config) { c.Render.OutgoingLimit = -1 }, "outgoing_limit"},
		{"no jobs", func(c *Config) { c.Export.Jobs = 0 }, "export.jobs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.Format = "mermaid"
	cfg.Export.Jobs = 4
	cfg.Graphviz.Timeout = Duration(time.Minute)
	cfg.Catalog.Path = filepath.Join(tmpDir, "kanji.db")

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Output.Format != "mermaid" {
		t.Errorf("Output.Format = %s, want mermaid", loaded.Output.Format)
	}
	if loaded.Export.Jobs != 4 {
		t.Errorf("Export.Jobs = %d, want 4", loaded.Export.Jobs)
	}
	if loaded.Graphviz.Timeout.Duration() != time.Minute {
		t.Errorf("Graphviz.Timeout = %s, want 1m", loaded.Graphviz.Timeout.Duration())
	}
	if loaded.Catalog.Path != cfg.Catalog.Path {
		t.Errorf("Catalog.Path = %s, want %s", loaded.Catalog.Path, cfg.Catalog.Path)
	}
}

func TestLoadFromPathPartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data := "output:\n  dir: out\ngraphviz:\n  timeout: 5s\n"
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("Output.Dir = %s, want out", cfg.Output.Dir)
	}
	if cfg.Output.Format != "png" {
		t.Errorf("Output.Format = %s, want png default", cfg.Output.Format)
	}
	if cfg.Graphviz.Timeout.Duration() != 5*time.Second {
		t.Errorf("Graphviz.Timeout = %s, want 5s", cfg.Graphviz.Timeout.Duration())
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, _, err := LoadFromPath(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("LoadFromPath() should fail for a missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	os.WriteFile(bad, []byte("graphviz:\n  timeout: soon\n"), 0644)
	if _, _, err := LoadFromPath(bad); err == nil {
		t.Error("LoadFromPath() should fail for an invalid duration")
	}

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	os.WriteFile(invalid, []byte("output:\n  format: gif\n"), 0644)
	if _, _, err := LoadFromPath(invalid); err == nil {
		t.Error("LoadFromPath() should fail for an unknown output format")
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	t.Setenv(EnvConfigPath, "")

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := DefaultConfig().Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Should find config in working directory
	if found := FindConfigPath(""); found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(""); found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	// Explicit path wins when present
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	DefaultConfig().Save(explicit)
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(""); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestFindConfigPathNextToInput(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	t.Setenv(EnvConfigPath, "")

	dataDir := filepath.Join(tmpDir, "data")
	input := filepath.Join(dataDir, "paste.txt")
	beside := filepath.Join(dataDir, ConfigFileName)
	if err := DefaultConfig().Save(beside); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// The user config exists too; the file beside the input wins
	user := filepath.Join(tmpDir, "xdg", ConfigDirName, "config.yaml")
	if err := DefaultConfig().Save(user); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if found := FindConfigPath(input); found != beside {
		t.Errorf("FindConfigPath(input) = %s, want %s", found, beside)
	}
	if found := FindConfigPath(""); found != user {
		t.Errorf("FindConfigPath(\"\") = %s, want %s", found, user)
	}

	// An explicit path still takes priority
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := DefaultConfig().Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(input); found != explicit {
		t.Errorf("FindConfigPath(input) = %s, want %s", found, explicit)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/home/user")

	got := SearchPaths("/data/paste.txt")
	want := []string{
		"/data/kanjigraph.yaml",
		"kanjigraph.yaml",
		"/tmp/xdg/kanjigraph/config.yaml",
		"/home/user/.config/kanjigraph/config.yaml",
		"/etc/kanjigraph/config.yaml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}

	// A bare file name adds nothing beyond the working directory
	if got := SearchPaths("paste.txt"); len(got) != len(want)-1 {
		t.Errorf("SearchPaths(bare) = %v", got)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != "/tmp/xdg/kanjigraph/config.yaml" {
		t.Errorf("DefaultConfigPath() = %s", got)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.Path = "kanji.db"
	s := cfg.Summary()
	for _, want := range []string{"kanji_output", "png", "depth 2", "Catalog: kanji.db"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() missing %q:\n%s", want, s)
		}
	}
}
