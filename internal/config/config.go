package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds tool-wide defaults. Command-line flags override every field.
type Config struct {
	HashAlgorithm string `koanf:"hash_algorithm"`
	DisableSync   bool   `koanf:"disable_sync"`
	LogLevel      string `koanf:"log_level"`
	PrettyLogs    bool   `koanf:"pretty_logs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HashAlgorithm: "sha256",
		LogLevel:      "info",
		PrettyLogs:    true,
	}
}

// Path returns the config file location: DIRINDEX_CONFIG if set, otherwise
// ~/.config/dirindex/config.yaml.
func Path() string {
	if env := os.Getenv("DIRINDEX_CONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dirindex", "config.yaml")
}

// Load reads the YAML config file at path on top of the defaults. A missing
// file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
