package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional application configuration, read from a yaml file.
// Every field has a usable default so the file may be absent entirely.
type Config struct {
	DataDir   string   `yaml:"data_dir"`
	Platforms []string `yaml:"platforms"`
	// FetchStart is the inclusive start date of order-history fetches,
	// "YYYY-MM-DD".
	FetchStart string `yaml:"fetch_start"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:    "data",
		Platforms:  []string{"futu", "longbridge"},
		FetchStart: "2022-01-01",
	}
}

// LoadConfig reads the configuration file at path. A missing file yields
// the defaults, not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.FetchStart == "" {
		cfg.FetchStart = DefaultConfig().FetchStart
	}
	return cfg, nil
}
