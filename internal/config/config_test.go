package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Google.CallbackPort != 8765 {
		t.Errorf("CallbackPort = %d, want 8765", cfg.Google.CallbackPort)
	}
	if cfg.Chatter.Model != "grok-3-mini" {
		t.Errorf("Chatter.Model = %q, want %q", cfg.Chatter.Model, "grok-3-mini")
	}
	if cfg.Chatter.Enabled() {
		t.Error("Chatter.Enabled() = true with no API key")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "mathsfun")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "log_level: debug\nchatter:\n  api_key: test-key\n  model: grok-4\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Chatter.Model != "grok-4" {
		t.Errorf("Chatter.Model = %q, want %q", cfg.Chatter.Model, "grok-4")
	}
	if !cfg.Chatter.Enabled() {
		t.Error("Chatter.Enabled() = false with API key set")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MATHSFUN_DB", "/tmp/custom.db")
	t.Setenv("MATHSFUN_CHATTER_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/custom.db")
	}
	if cfg.Chatter.APIKey != "env-key" {
		t.Errorf("Chatter.APIKey = %q, want %q", cfg.Chatter.APIKey, "env-key")
	}
}
