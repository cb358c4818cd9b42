// Package config loads cukestatus settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no config file exists in a directory or
// any of its parents.
var ErrConfigNotFound = errors.New("config file not found")

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".cukestatus.yaml", ".cukestatus.yml", "cukestatus.yaml", "cukestatus.yml"}

// Config holds runtime settings. Settings are merged from the config file
// and the command line (last wins).
type Config struct {
	// Features lists feature files or directories to load.
	Features []string `yaml:"features,omitempty"`

	// Tags is a tag expression selecting scenarios, e.g. "@smoke and not @slow".
	Tags string `yaml:"tags,omitempty"`

	// Name is a regular expression selecting scenarios by name.
	Name string `yaml:"name,omitempty"`

	// SkipFile persists the skip flag between runs. Empty keeps it in memory.
	SkipFile string `yaml:"skip_file,omitempty"`

	// DryRun walks every scenario without executing steps.
	DryRun bool `yaml:"dry_run,omitempty"`

	// NoColor disables colored console output.
	NoColor bool `yaml:"no_color,omitempty"`

	// DisableLog replaces the logger with one that discards everything.
	DisableLog bool `yaml:"disable_log,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Identifier overrides the id sent with every status.
	Identifier string `yaml:"identifier,omitempty"`

	// Snippets is a file that receives generated step stubs.
	Snippets string `yaml:"snippets,omitempty"`
}

// Load reads the config at path. An empty path searches the working
// directory and its parents; finding nothing yields an empty config.
func Load(path string) (*Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot get working directory: %w", err)
		}
		found, err := FindConfig(cwd)
		if errors.Is(err, ErrConfigNotFound) {
			return &Config{}, nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}

	return LoadFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// LoadFile loads a config from a specific path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// MergeConfigs combines multiple configs into one.
// Later configs override earlier ones (last wins); boolean switches stay on
// once any config turns them on.
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if len(cfg.Features) > 0 {
			result.Features = append([]string(nil), cfg.Features...)
		}
		if cfg.Tags != "" {
			result.Tags = cfg.Tags
		}
		if cfg.Name != "" {
			result.Name = cfg.Name
		}
		if cfg.SkipFile != "" {
			result.SkipFile = cfg.SkipFile
		}
		if cfg.DryRun {
			result.DryRun = true
		}
		if cfg.NoColor {
			result.NoColor = true
		}
		if cfg.DisableLog {
			result.DisableLog = true
		}
		if cfg.LogLevel != "" {
			result.LogLevel = cfg.LogLevel
		}
		if cfg.Identifier != "" {
			result.Identifier = cfg.Identifier
		}
		if cfg.Snippets != "" {
			result.Snippets = cfg.Snippets
		}
	}

	return result
}
