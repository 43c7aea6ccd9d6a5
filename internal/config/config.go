package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for vulnsweep. Pointer
// fields distinguish "unset" from zero values so the CLI > local > global
// precedence can be resolved per field.
type FileConfig struct {
	Include          *string  `yaml:"include"`
	Exclude          *string  `yaml:"exclude"`
	MaxBytes         *int64   `yaml:"max_bytes"`
	Threads          *int     `yaml:"threads"`
	Languages        *string  `yaml:"languages"`
	Rules            *string  `yaml:"rules"`
	Format           *string  `yaml:"format"`
	FailOn           *string  `yaml:"fail_on"`
	NoColor          *bool    `yaml:"no_color"`
	DefaultExcludes  *bool    `yaml:"default_excludes"`
	StrictExtensions *bool    `yaml:"strict_extensions"`
	SafePatterns     []string `yaml:"safe_patterns"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .vulnsweep.yml/.yaml and vulnsweep.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".vulnsweep.yml", ".vulnsweep.yaml", "vulnsweep.yml", "vulnsweep.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "vulnsweep", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
