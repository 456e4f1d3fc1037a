// Package config loads the optional HanziQuest config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Zero values mean "use the
// built-in behavior".
type Config struct {
	ContentDir string `yaml:"content_dir"` // Lua pack directory; empty → embedded pack
	SaveDir    string `yaml:"save_dir"`
	Seed       int64  `yaml:"seed"` // fixed RNG seed; 0 → time-based
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hanziquest", "config.yaml")
}

// DefaultSaveDir returns the conventional save directory.
func DefaultSaveDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hanziquest", "saves")
}

// Load reads the config file at path. A missing file is not an error; it
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{SaveDir: DefaultSaveDir()}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = DefaultSaveDir()
	}
	return cfg, nil
}
