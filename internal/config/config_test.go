package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Yahoo.BaseURL != "https://query1.finance.yahoo.com" {
		t.Errorf("base_url = %q", cfg.Yahoo.BaseURL)
	}
	if cfg.Yahoo.TimeoutSec != 30 {
		t.Errorf("timeout_sec = %d, want 30", cfg.Yahoo.TimeoutSec)
	}
	if cfg.Yahoo.RateLimit != 5 || cfg.Yahoo.RateWindowSec != 1 {
		t.Errorf("rate = %d/%ds, want 5/1s", cfg.Yahoo.RateLimit, cfg.Yahoo.RateWindowSec)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:8900" {
		t.Errorf("http_addr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %s/%s, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `yahoo:
  base_url: http://localhost:9000
  rate_limit: 2
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Yahoo.BaseURL != "http://localhost:9000" {
		t.Errorf("base_url = %q", cfg.Yahoo.BaseURL)
	}
	if cfg.Yahoo.RateLimit != 2 {
		t.Errorf("rate_limit = %d, want 2", cfg.Yahoo.RateLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	// Unset keys fall back to defaults.
	if cfg.Yahoo.TimeoutSec != 30 {
		t.Errorf("timeout_sec = %d, want default 30", cfg.Yahoo.TimeoutSec)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:8900" {
		t.Errorf("http_addr = %q, want default", cfg.Server.HTTPAddr)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TSEMCP_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want env override warn", cfg.Logging.Level)
	}
}
