package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if err := c.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if c.Device.NamePrefix != "GoCube" {
		t.Errorf("Expected default prefix GoCube, got %q", c.Device.NamePrefix)
	}
	if c.Device.ScanTimeout != 30*time.Second {
		t.Errorf("Expected default scan timeout 30s, got %s", c.Device.ScanTimeout)
	}
	if !c.Render.Color {
		t.Error("Expected color rendering on by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/cubes.db
device:
  name_prefix: MyCube
  scan_timeout: 10s
render:
  color: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if c.Database.Path != "/tmp/cubes.db" {
		t.Errorf("Expected database path /tmp/cubes.db, got %q", c.Database.Path)
	}
	if c.Device.NamePrefix != "MyCube" {
		t.Errorf("Expected prefix MyCube, got %q", c.Device.NamePrefix)
	}
	if c.Device.ScanTimeout != 10*time.Second {
		t.Errorf("Expected scan timeout 10s, got %s", c.Device.ScanTimeout)
	}
	if c.Render.Color {
		t.Error("Expected color rendering off")
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "device:\n  name_prefix: Rubiks\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	// Unset fields keep their defaults.
	if c.Device.NamePrefix != "Rubiks" {
		t.Errorf("Expected prefix Rubiks, got %q", c.Device.NamePrefix)
	}
	if c.Device.ScanTimeout != 30*time.Second {
		t.Errorf("Expected default scan timeout, got %s", c.Device.ScanTimeout)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.yaml")
	if _, err := LoadFromFile(missing); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("device: [not a map"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("device:\n  name_prefix: \"\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFromFile(invalid); err == nil {
		t.Error("Expected validation error for empty prefix")
	}
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Device.ScanTimeout = 0
	if err := c.Validate(); err == nil {
		t.Error("Expected error for zero scan timeout")
	}

	c = DefaultConfig()
	c.Device.NamePrefix = ""
	if err := c.Validate(); err == nil {
		t.Error("Expected error for empty name prefix")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := DefaultConfig()
	c.Database.Path = "/data/cubes.db"
	c.Device.ScanTimeout = 5 * time.Second

	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Database.Path != c.Database.Path {
		t.Errorf("Expected path %q, got %q", c.Database.Path, loaded.Database.Path)
	}
	if loaded.Device.ScanTimeout != c.Device.ScanTimeout {
		t.Errorf("Expected timeout %s, got %s", c.Device.ScanTimeout, loaded.Device.ScanTimeout)
	}
}
