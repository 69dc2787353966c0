// Package config loads and saves pioasm's host-tool configuration: target
// defaults and output formatting that sit outside the core assembler
// pipeline, TOML-encoded the way the rest of the corpus configures itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/dcrockford/pioasm/program"
)

// Config holds pioasm's host-tool settings: assembler defaults applied
// when a source file doesn't set them explicitly, and the output listing
// format for assembled programs.
type Config struct {
	// Assembler settings
	Assembler struct {
		DefaultVersion   string `toml:"default_version"` // "rp2040" or "rp2350"
		StrictUndeclared bool   `toml:"strict_undeclared_defines"`
	} `toml:"assembler"`

	// Output settings
	Output struct {
		Format       string `toml:"format"` // "hex", "c_array", "python_array", "raw"
		VariableName string `toml:"variable_name"`
	} `toml:"output"`

	// Listing settings
	Listing struct {
		ShowAddresses bool `toml:"show_addresses"`
		ShowOpcodes   bool `toml:"show_opcodes"`
		ShowSource    bool `toml:"show_source"`
	} `toml:"listing"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembler.DefaultVersion = "rp2040"
	cfg.Assembler.StrictUndeclared = true

	cfg.Output.Format = "hex"
	cfg.Output.VariableName = "program"

	cfg.Listing.ShowAddresses = true
	cfg.Listing.ShowOpcodes = true
	cfg.Listing.ShowSource = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\pioasm\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "pioasm")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/pioasm/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "pioasm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: the defaults are returned as-is.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Version returns the assembler.default_version setting as a
// program.Version constant, defaulting to RP2040 for any unrecognized
// value.
func (c *Config) Version() program.Version {
	if c.Assembler.DefaultVersion == "rp2350" {
		return program.RP2350
	}
	return program.RP2040
}
