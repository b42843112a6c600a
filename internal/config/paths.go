package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "KANJIGRAPH_CONFIG"
	// ConfigFileName is looked up next to the input and in the working directory
	ConfigFileName = "kanjigraph.yaml"
	// ConfigDirName is the directory under the user and system config roots
	ConfigDirName = "kanjigraph"
)

// SearchPaths lists the candidate config files for a run over input, most
// specific first. An empty input skips the input's directory.
func SearchPaths(input string) []string {
	var paths []string
	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		paths = append(paths, explicit)
	}
	if input != "" {
		if dir := filepath.Dir(input); dir != "." {
			paths = append(paths, filepath.Join(dir, ConfigFileName))
		}
	}
	paths = append(paths, ConfigFileName)
	for _, root := range userConfigRoots() {
		paths = append(paths, filepath.Join(root, ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing file of SearchPaths(input),
// or "" when there is none
func FindConfigPath(input string) string {
	for _, path := range SearchPaths(input) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// DefaultConfigPath is where "config init" writes without an explicit path
func DefaultConfigPath() string {
	if roots := userConfigRoots(); len(roots) > 0 {
		return filepath.Join(roots[0], ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// userConfigRoots returns $XDG_CONFIG_HOME and ~/.config, when set
func userConfigRoots() []string {
	var roots []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		roots = append(roots, xdg)
	}
	if home := os.Getenv("HOME"); home != "" {
		roots = append(roots, filepath.Join(home, ".config"))
	}
	return roots
}
