// Package config provides configuration loading and management for the
// virtualcube application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Device   DeviceConfig   `yaml:"device"`
	Render   RenderConfig   `yaml:"render"`
}

// DatabaseConfig configures session storage
type DatabaseConfig struct {
	// Path is the SQLite database path (empty = ~/.virtualcube/virtualcube.db)
	Path string `yaml:"path"`
}

// DeviceConfig configures Bluetooth device discovery
type DeviceConfig struct {
	// NamePrefix filters scan results by advertised device name
	NamePrefix string `yaml:"name_prefix"`
	// ScanTimeout is the maximum time to scan for devices
	ScanTimeout time.Duration `yaml:"scan_timeout"`
}

// RenderConfig configures terminal output
type RenderConfig struct {
	// Color enables colored cube rendering
	Color bool `yaml:"color"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Resolved to the default path at open
		},
		Device: DeviceConfig{
			NamePrefix:  "GoCube",
			ScanTimeout: 30 * time.Second,
		},
		Render: RenderConfig{
			Color: true,
		},
	}
}

// DefaultPath returns the default config file path
// (~/.virtualcube/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".virtualcube", "config.yaml"), nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Device.NamePrefix == "" {
		return fmt.Errorf("device.name_prefix is required")
	}
	if c.Device.ScanTimeout <= 0 {
		return fmt.Errorf("device.scan_timeout must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// Load loads configuration from the default path, falling back to
// defaults when no config file exists.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	return LoadFromFile(path)
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
