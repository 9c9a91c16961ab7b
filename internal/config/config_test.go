package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("debounce = %v, want 500ms", cfg.Debounce())
	}
	if cfg.Search.MinQueryLen != 2 {
		t.Errorf("min_query_len = %d, want 2", cfg.Search.MinQueryLen)
	}
	if cfg.Stagger() != 100*time.Millisecond {
		t.Errorf("stagger = %v, want 100ms", cfg.Stagger())
	}
	if cfg.API.RequestTimeout != 30*time.Second {
		t.Errorf("request_timeout = %v", cfg.API.RequestTimeout)
	}
}

func TestLoadLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `api:
  base_url: http://movies.internal:8080
  request_timeout: 5s
search:
  debounce_ms: 250
  min_query_len: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FLICK_DEBOUNCE_MS", "700")
	t.Setenv("FLICK_UNRELATED", "ignored")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://movies.internal:8080" {
		t.Errorf("file should override default base_url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 5*time.Second {
		t.Errorf("request_timeout = %v, want 5s", cfg.API.RequestTimeout)
	}
	if cfg.Search.MinQueryLen != 3 {
		t.Errorf("min_query_len = %d, want 3", cfg.Search.MinQueryLen)
	}
	if cfg.Search.DebounceMs != 700 {
		t.Errorf("env should override file debounce, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Search.MaxSuggestions != 8 {
		t.Errorf("untouched default lost: max_suggestions = %d", cfg.Search.MaxSuggestions)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("FLICK_API_URL", "http://127.0.0.1:9000")
	t.Setenv("FLICK_MOUSE", "false")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.UI.Mouse {
		t.Error("FLICK_MOUSE=false should disable mouse")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = " " }},
		{"zero timeout", func(c *Config) { c.API.RequestTimeout = 0 }},
		{"negative debounce", func(c *Config) { c.Search.DebounceMs = -1 }},
		{"zero min length", func(c *Config) { c.Search.MinQueryLen = 0 }},
		{"negative stagger", func(c *Config) { c.UI.StaggerMs = -5 }},
		{"negative health interval", func(c *Config) { c.API.HealthInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestPathHonorsEnv(t *testing.T) {
	t.Setenv(PathEnvVar, "/tmp/flick.yaml")
	if Path() != "/tmp/flick.yaml" {
		t.Errorf("Path() = %q", Path())
	}
}
