package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("explicit missing config file should fail")
	}

	// No explicit file: defaults apply.
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rewrite.Timeout != 30*time.Second {
		t.Fatalf("expected 30s rewrite timeout, got %v", cfg.Rewrite.Timeout)
	}
	if !cfg.History.Enabled || cfg.History.Path == "" {
		t.Fatalf("history defaults missing: %+v", cfg.History)
	}
	if cfg.Cache.Size != 256 {
		t.Fatalf("expected cache size 256, got %d", cfg.Cache.Size)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected info level, got %q", cfg.Logging.Level)
	}
	if cfg.Rewrite.Endpoint != "" {
		t.Fatalf("rewrite service must be off by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veritext.yaml")
	content := `
rewrite:
  endpoint: https://api.example.com/v1/chat
  api_key: sk-test
  model: test-model
history:
  enabled: false
cache:
  size: 16
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rewrite.Endpoint != "https://api.example.com/v1/chat" {
		t.Fatalf("endpoint not read: %q", cfg.Rewrite.Endpoint)
	}
	if cfg.History.Enabled {
		t.Fatalf("history override not applied")
	}
	if cfg.Cache.Size != 16 {
		t.Fatalf("cache override not applied: %d", cfg.Cache.Size)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging override not applied: %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "veritext.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for bad level")
	}
}
