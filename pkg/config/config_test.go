package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadFile_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "night.json")

	writeFile(t, cfgPath, `{
  "deviceKey": "abc123",
  "hostname": "override",
  "root": false,
  "protocol": "legacy",
  "endpoint": "https://reports.example.net/",
  "toolStrategy": "probe",
  "collectors": {"cronApt": false, "needrestart": true, "inodes": true},
  "oldconffiles": ["fenhl", "pi"],
  "logLevel": "debug"
}`)

	cfg, err := LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.DeviceKey != "abc123" {
		t.Errorf("DeviceKey: got %s, want abc123", cfg.DeviceKey)
	}
	if cfg.Hostname != "override" {
		t.Errorf("Hostname: got %s, want override", cfg.Hostname)
	}
	if cfg.Root {
		t.Error("Root: got true, want false")
	}
	if cfg.Protocol != ProtocolLegacy {
		t.Errorf("Protocol: got %s, want %s", cfg.Protocol, ProtocolLegacy)
	}
	if cfg.Endpoint != "https://reports.example.net" {
		t.Errorf("Endpoint: got %s, want trailing slash trimmed", cfg.Endpoint)
	}
	if cfg.ToolStrategy != StrategyProbe {
		t.Errorf("ToolStrategy: got %s, want %s", cfg.ToolStrategy, StrategyProbe)
	}
	if cfg.Collectors.CronApt || !cfg.Collectors.Needrestart || !cfg.Collectors.Inodes {
		t.Errorf("Collectors: got %+v", cfg.Collectors)
	}
	if len(cfg.OldConfFiles) != 2 || cfg.OldConfFiles[1] != "pi" {
		t.Errorf("OldConfFiles: got %v", cfg.OldConfFiles)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s, want debug", cfg.LogLevel)
	}
	if cfg.Path != cfgPath {
		t.Errorf("Path: got %s, want %s", cfg.Path, cfgPath)
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "night.json")

	// Minimal record: all defaults should apply
	writeFile(t, cfgPath, `{"deviceKey": "abc123"}`)

	cfg, err := LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Hostname != "" {
		t.Errorf("default Hostname: got %s, want empty", cfg.Hostname)
	}
	if !cfg.Root {
		t.Error("default Root: got false, want true")
	}
	if cfg.Protocol != ProtocolCurrent {
		t.Errorf("default Protocol: got %s, want %s", cfg.Protocol, ProtocolCurrent)
	}
	if cfg.ToolStrategy != StrategyInvoke {
		t.Errorf("default ToolStrategy: got %s, want %s", cfg.ToolStrategy, StrategyInvoke)
	}
	if !cfg.Collectors.CronApt || !cfg.Collectors.Needrestart || cfg.Collectors.Inodes {
		t.Errorf("default Collectors: got %+v", cfg.Collectors)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("default LogLevel: got %s, want warn", cfg.LogLevel)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "night.toml")

	writeFile(t, cfgPath, `
deviceKey = "abc123"
hostname = "box"
toolStrategy = "probe"

[collectors]
  cronApt = false
`)

	cfg, err := LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DeviceKey != "abc123" || cfg.Hostname != "box" {
		t.Errorf("identity: got %q/%q", cfg.DeviceKey, cfg.Hostname)
	}
	if cfg.ToolStrategy != StrategyProbe {
		t.Errorf("ToolStrategy: got %s, want probe", cfg.ToolStrategy)
	}
	if cfg.Collectors.CronApt {
		t.Error("CronApt: got true, want false")
	}
	if !cfg.Collectors.Needrestart {
		t.Error("Needrestart: default lost when [collectors] is partially set")
	}
	if !cfg.Root {
		t.Error("Root: default lost")
	}
}

func TestLoadFile_MissingDeviceKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "night.json")
	writeFile(t, cfgPath, `{"hostname": "box"}`)

	_, err := LoadFile(cfgPath)
	if !errors.Is(err, ErrMissingDeviceKey) {
		t.Fatalf("got %v, want ErrMissingDeviceKey", err)
	}
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %T, want *ConfigurationError", err)
	}
	if cerr.Path != cfgPath {
		t.Errorf("Path: got %s, want %s", cerr.Path, cfgPath)
	}
}

func TestLoadFile_NonexistentFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/night.json")
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *ConfigurationError", err)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "night.json")
	writeFile(t, cfgPath, `{"deviceKey": `)

	_, err := LoadFile(cfgPath)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *ConfigurationError", err)
	}
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "night.toml")
	writeFile(t, cfgPath, "invalid [[[ toml")

	if _, err := LoadFile(cfgPath); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown protocol", func(c *Config) { c.Protocol = "v3" }, true},
		{"unknown strategy", func(c *Config) { c.ToolStrategy = "guess" }, true},
		{"http endpoint", func(c *Config) { c.Endpoint = "http://example.net" }, true},
		{"https endpoint", func(c *Config) { c.Endpoint = "https://example.net" }, false},
		{"blank key", func(c *Config) { c.DeviceKey = "  " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			cfg.DeviceKey = "abc123"
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.json")
	writeFile(t, cfgPath, `{"deviceKey": "abc123"}`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DeviceKey != "abc123" {
		t.Errorf("DeviceKey: got %s, want abc123", cfg.DeviceKey)
	}
}
