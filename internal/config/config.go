// Package config loads flick's layered configuration: built-in defaults,
// then an optional YAML file, then FLICK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "FLICK_CONFIG"

// Config is the complete runtime configuration.
type Config struct {
	API    APIConfig    `koanf:"api"`
	Search SearchConfig `koanf:"search"`
	UI     UIConfig     `koanf:"ui"`
	Log    LogConfig    `koanf:"log"`
}

// APIConfig describes the recommendation service.
type APIConfig struct {
	BaseURL        string        `koanf:"base_url"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	// SearchRatePerSec caps suggestion requests; 0 disables the cap.
	SearchRatePerSec float64 `koanf:"search_rate_per_sec"`
	// BreakerFailures is the consecutive-failure count that opens the
	// suggestion circuit breaker.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
	// HealthInterval is how often the service is polled; 0 disables polling.
	HealthInterval time.Duration `koanf:"health_interval"`
}

// SearchConfig tunes the typing-to-suggestion path.
type SearchConfig struct {
	DebounceMs     int `koanf:"debounce_ms"`
	MinQueryLen    int `koanf:"min_query_len"`
	MaxSuggestions int `koanf:"max_suggestions"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	StaggerMs int  `koanf:"stagger_ms"`
	Mouse     bool `koanf:"mouse"`
	AltScreen bool `koanf:"alt_screen"`
}

// LogConfig controls the diagnostic log and the JSONL event log.
type LogConfig struct {
	Dir       string `koanf:"dir"`
	Level     string `koanf:"level"`
	EventFile string `koanf:"event_file"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	dir := DataDir()
	return &Config{
		API: APIConfig{
			BaseURL:          "http://localhost:5000",
			RequestTimeout:   30 * time.Second,
			SearchRatePerSec: 5,
			BreakerFailures:  5,
			BreakerCooldown:  30 * time.Second,
			HealthInterval:   30 * time.Second,
		},
		Search: SearchConfig{
			DebounceMs:     500,
			MinQueryLen:    2,
			MaxSuggestions: 8,
		},
		UI: UIConfig{
			StaggerMs: 100,
			Mouse:     true,
			AltScreen: true,
		},
		Log: LogConfig{
			Dir:       filepath.Join(dir, "logs"),
			Level:     "info",
			EventFile: filepath.Join(dir, "events.jsonl"),
		},
	}
}

// DataDir returns ~/.flick (or ./.flick when no home directory is known).
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flick"
	}
	return filepath.Join(home, ".flick")
}

// Path returns the config file to read: $FLICK_CONFIG if set, else
// ~/.flick/config.yaml.
func Path() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	return filepath.Join(DataDir(), "config.yaml")
}

// Load reads configuration from Path. A missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom layers defaults, the YAML file at path (if present) and the
// environment.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("FLICK_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKeys maps FLICK_* variables to config paths. Variables not listed
// here are ignored.
var envKeys = map[string]string{
	"flick_api_url":             "api.base_url",
	"flick_api_base_url":        "api.base_url",
	"flick_request_timeout":     "api.request_timeout",
	"flick_search_rate_per_sec": "api.search_rate_per_sec",
	"flick_breaker_failures":    "api.breaker_failures",
	"flick_breaker_cooldown":    "api.breaker_cooldown",
	"flick_health_interval":     "api.health_interval",
	"flick_debounce_ms":         "search.debounce_ms",
	"flick_min_query_len":       "search.min_query_len",
	"flick_max_suggestions":     "search.max_suggestions",
	"flick_stagger_ms":          "ui.stagger_ms",
	"flick_mouse":               "ui.mouse",
	"flick_alt_screen":          "ui.alt_screen",
	"flick_log_dir":             "log.dir",
	"flick_log_level":           "log.level",
	"flick_event_file":          "log.event_file",
}

func envKey(name string) string {
	return envKeys[strings.ToLower(name)]
}

// Validate rejects values the UI cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.RequestTimeout <= 0 {
		errs = append(errs, errors.New("api.request_timeout must be positive"))
	}
	if c.API.HealthInterval < 0 {
		errs = append(errs, errors.New("api.health_interval must not be negative"))
	}
	if c.Search.DebounceMs < 0 {
		errs = append(errs, errors.New("search.debounce_ms must not be negative"))
	}
	if c.Search.MinQueryLen < 1 {
		errs = append(errs, errors.New("search.min_query_len must be at least 1"))
	}
	if c.UI.StaggerMs < 0 {
		errs = append(errs, errors.New("ui.stagger_ms must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Debounce returns the typing pause before a suggestion fetch.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// Stagger returns the per-card delay before its similarity bar animates.
func (c *Config) Stagger() time.Duration {
	return time.Duration(c.UI.StaggerMs) * time.Millisecond
}
