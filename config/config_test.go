package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dcrockford/pioasm/program"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Assembler.DefaultVersion != "rp2040" {
		t.Errorf("Expected DefaultVersion=rp2040, got %s", cfg.Assembler.DefaultVersion)
	}
	if !cfg.Assembler.StrictUndeclared {
		t.Error("Expected StrictUndeclared=true")
	}
	if cfg.Output.Format != "hex" {
		t.Errorf("Expected Format=hex, got %s", cfg.Output.Format)
	}
	if !cfg.Listing.ShowOpcodes {
		t.Error("Expected ShowOpcodes=true")
	}
}

func TestConfigVersion(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Version() != program.RP2040 {
		t.Errorf("Expected default Version()=RP2040, got %v", cfg.Version())
	}
	cfg.Assembler.DefaultVersion = "rp2350"
	if cfg.Version() != program.RP2350 {
		t.Errorf("Expected Version()=RP2350, got %v", cfg.Version())
	}
	cfg.Assembler.DefaultVersion = "bogus"
	if cfg.Version() != program.RP2040 {
		t.Errorf("Expected unrecognized version to fall back to RP2040, got %v", cfg.Version())
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "pioasm" && path != "config.toml" {
			t.Errorf("Expected path in pioasm directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Assembler.DefaultVersion = "rp2350"
	cfg.Assembler.StrictUndeclared = false
	cfg.Output.Format = "c_array"
	cfg.Output.VariableName = "my_program"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Assembler.DefaultVersion != "rp2350" {
		t.Errorf("Expected DefaultVersion=rp2350, got %s", loaded.Assembler.DefaultVersion)
	}
	if loaded.Assembler.StrictUndeclared {
		t.Error("Expected StrictUndeclared=false")
	}
	if loaded.Output.Format != "c_array" {
		t.Errorf("Expected Format=c_array, got %s", loaded.Output.Format)
	}
	if loaded.Output.VariableName != "my_program" {
		t.Errorf("Expected VariableName=my_program, got %s", loaded.Output.VariableName)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Assembler.DefaultVersion != "rp2040" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[assembler]
strict_undeclared_defines = "not a bool"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
