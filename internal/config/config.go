// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// assistant TUI.
//
// Configuration sources (in order of precedence):
//   - Environment variables (ASSISTANT_*)
//   - ~/.strava-assistant/config.toml
//   - Built-in defaults
//
// A .env file in the working directory is loaded into the environment
// before overrides are applied.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete assistant configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend holds the assistant server connection settings.
	Backend BackendConfig `toml:"backend"`

	// Map holds the map view settings.
	Map MapConfig `toml:"map"`

	// Voice holds the audio capture settings.
	Voice VoiceConfig `toml:"voice"`

	// Storage holds the local persistence settings.
	Storage StorageConfig `toml:"storage"`

	// UI holds the terminal UI settings.
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains assistant server connection settings.
type BackendConfig struct {
	// URL is the base URL of the assistant backend.
	URL string `toml:"url"`
	// RequestTimeoutSecs bounds a single API request. Chat requests can
	// block on the LLM for a while, so this is generous.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`
}

// MapConfig contains map view settings.
type MapConfig struct {
	// Path is the map document path on the backend.
	Path string `toml:"path"`
	// LoadTimeoutMillis bounds the wait for a map load signal.
	LoadTimeoutMillis int `toml:"load_timeout_millis"`
	// SettleMillis is the grace period after a load signal before the
	// map is considered ready to export.
	SettleMillis int `toml:"settle_millis"`
	// SnapshotTimeoutMillis bounds an export request.
	SnapshotTimeoutMillis int `toml:"snapshot_timeout_millis"`
}

// VoiceConfig contains audio capture settings.
type VoiceConfig struct {
	// Enabled toggles the microphone feature.
	Enabled bool `toml:"enabled"`
	// CaptureCommand overrides the recording tool. Empty means autodetect
	// (ffmpeg, then arecord).
	CaptureCommand string `toml:"capture_command"`
	// MaxRecordSecs caps a single recording.
	MaxRecordSecs int `toml:"max_record_secs"`
}

// StorageConfig contains local persistence settings.
type StorageConfig struct {
	// DatabasePath is the SQLite file path. Empty means the default
	// ~/.strava-assistant/assistant.db.
	DatabasePath string `toml:"database_path"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme"`
	// ShowSuggestions toggles the suggestion chips on an empty transcript.
	ShowSuggestions bool `toml:"show_suggestions"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Backend: BackendConfig{
			URL:                "http://localhost:5000",
			RequestTimeoutSecs: 120,
		},
		Map: MapConfig{
			Path:                  "/static/map.html",
			LoadTimeoutMillis:     4000,
			SettleMillis:          250,
			SnapshotTimeoutMillis: 5000,
		},
		Voice: VoiceConfig{
			Enabled:       true,
			MaxRecordSecs: 60,
		},
		UI: UIConfig{
			Theme:           "dark",
			ShowSuggestions: true,
		},
	}
}

// RequestTimeout returns the backend request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeoutSecs) * time.Second
}

// MapLoadTimeout returns the map load wait as a duration.
func (c *Config) MapLoadTimeout() time.Duration {
	return time.Duration(c.Map.LoadTimeoutMillis) * time.Millisecond
}

// MapSettle returns the post-load settle delay as a duration.
func (c *Config) MapSettle() time.Duration {
	return time.Duration(c.Map.SettleMillis) * time.Millisecond
}

// SnapshotTimeout returns the map export wait as a duration.
func (c *Config) SnapshotTimeout() time.Duration {
	return time.Duration(c.Map.SnapshotTimeoutMillis) * time.Millisecond
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.strava-assistant).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".strava-assistant"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DatabasePath returns the SQLite file path, resolving the default when
// unset in the config.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "assistant.db"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from disk, applying env overrides and
// validation. Missing files are not an error; defaults are used.
func Load() (*Config, error) {
	// Best effort: a .env next to the binary is a development convenience.
	_ = godotenv.Load()

	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// Save writes the configuration to the default path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path with owner-only permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	return writeConfig(file, cfg)
}

func writeConfig(w io.Writer, cfg *Config) error {
	fmt.Fprintln(w, "# strava-assistant configuration file")
	fmt.Fprintln(w, "# Edit with care; unknown keys are ignored.")
	fmt.Fprintln(w, "")

	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENV OVERRIDES / DEFAULTS / VALIDATION
// =============================================================================

// ApplyEnvOverrides overlays ASSISTANT_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ASSISTANT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("ASSISTANT_REQUEST_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Backend.RequestTimeoutSecs = n
		}
	}
	if v := os.Getenv("ASSISTANT_MAP_PATH"); v != "" {
		c.Map.Path = v
	}
	if v := os.Getenv("ASSISTANT_DB_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("ASSISTANT_VOICE_COMMAND"); v != "" {
		c.Voice.CaptureCommand = v
	}
	if v := os.Getenv("ASSISTANT_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// SetDefaults fills zero values with built-in defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Backend.URL == "" {
		c.Backend.URL = def.Backend.URL
	}
	if c.Backend.RequestTimeoutSecs <= 0 {
		c.Backend.RequestTimeoutSecs = def.Backend.RequestTimeoutSecs
	}
	if c.Map.Path == "" {
		c.Map.Path = def.Map.Path
	}
	if c.Map.LoadTimeoutMillis <= 0 {
		c.Map.LoadTimeoutMillis = def.Map.LoadTimeoutMillis
	}
	if c.Map.SettleMillis <= 0 {
		c.Map.SettleMillis = def.Map.SettleMillis
	}
	if c.Map.SnapshotTimeoutMillis <= 0 {
		c.Map.SnapshotTimeoutMillis = def.Map.SnapshotTimeoutMillis
	}
	if c.Voice.MaxRecordSecs <= 0 {
		c.Voice.MaxRecordSecs = def.Voice.MaxRecordSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.url: missing host")
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	return nil
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
