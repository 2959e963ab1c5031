package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	// EnvPrefix prefixes every environment override, e.g. BLESSING_LOG_LEVEL
	EnvPrefix = "BLESSING_"
	// FileEnv names the environment variable holding an optional YAML config file
	FileEnv = EnvPrefix + "CONFIG"

	defaultStoreDir = "~/.local/share/dailyblessing"
	defaultLogPath  = "~/.local/state/dailyblessing/daemon.log"
)

// Config is the root configuration structure
type Config struct {
	Catalog    CatalogConfig    `koanf:"catalog"`
	Store      StoreConfig      `koanf:"store"`
	AutoScroll AutoScrollConfig `koanf:"autoscroll"`
	Log        LogConfig        `koanf:"log"`
	Remote     RemoteConfig     `koanf:"remote"`
}

// CatalogConfig selects the quote source. An empty path means the bundled catalog.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// StoreConfig locates the preferences database
type StoreConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// AutoScrollConfig controls automatic advancing
type AutoScrollConfig struct {
	Interval time.Duration `koanf:"interval" validate:"required,min=1s"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string        `koanf:"level" validate:"required,oneof=debug info warn error"`
	File  LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// RemoteConfig controls the session-bus control surface
type RemoteConfig struct {
	Enabled bool   `koanf:"enabled"`
	BusName string `koanf:"bus_name" validate:"required_if=Enabled true"`
}

// defaults returns the default configuration values
func defaults() map[string]any {
	return map[string]any{
		"catalog.path": "",

		"store.dir": defaultStoreDir,

		"autoscroll.interval": "10s",

		"log.level":            "info",
		"log.file.enabled":     false,
		"log.file.path":        defaultLogPath,
		"log.file.max_size":    10,
		"log.file.max_backups": 3,
		"log.file.max_age":     28,
		"log.file.compress":    true,

		"remote.enabled":  true,
		"remote.bus_name": "org.dailyblessing.Viewer",
	}
}

// envKeys maps BLESSING_* variable names to koanf keys.
// Keys may contain underscores themselves, so the mapping is explicit.
func envKeys() map[string]string {
	keys := make(map[string]string)
	for key := range defaults() {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		keys[name] = key
	}
	return keys
}

// Load builds the configuration with the following precedence (highest to lowest):
//  1. Environment variables (BLESSING_ prefix)
//  2. YAML file named by BLESSING_CONFIG, if set
//  3. Default values
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := os.Getenv(FileEnv); path != "" {
		if err := loadFileIfExists(k, expandPath(path)); err != nil {
			return nil, fmt.Errorf("loading config file %q: %w", path, err)
		}
	}

	keys := envKeys()
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		// Unknown variables map to "" and are skipped
		return keys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)
	cfg.Store.Dir = expandPath(cfg.Store.Dir)
	cfg.Log.File.Path = expandPath(cfg.Log.File.Path)

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

// expandPath expands environment variables and a leading ~
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// AppConfig exposes the loaded configuration through domain.Config
type AppConfig struct {
	cfg *Config
}

// NewAppConfig loads and validates the configuration.
// The daemon refuses to start on invalid configuration.
func NewAppConfig() (*AppConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &AppConfig{cfg: cfg}, nil
}

// Fields describes the effective configuration for logging
func (c *AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("catalogPath", c.cfg.Catalog.Path),
		zap.String("storeDir", c.cfg.Store.Dir),
		zap.Duration("autoScrollInterval", c.cfg.AutoScroll.Interval),
		zap.String("logLevel", c.cfg.Log.Level),
		zap.Bool("remote", c.cfg.Remote.Enabled),
	}
}

// GetCatalogPath returns the quote file to load, or "" for the bundled catalog
func (c *AppConfig) GetCatalogPath() string {
	return c.cfg.Catalog.Path
}

// GetStoreDir returns the directory holding the preferences database
func (c *AppConfig) GetStoreDir() string {
	return c.cfg.Store.Dir
}

// GetAutoScrollInterval returns the delay between automatic advances
func (c *AppConfig) GetAutoScrollInterval() time.Duration {
	return c.cfg.AutoScroll.Interval
}

// RemoteEnabled reports whether the session-bus control surface is exported
func (c *AppConfig) RemoteEnabled() bool {
	return c.cfg.Remote.Enabled
}

// GetBusName returns the well-known session-bus name to request
func (c *AppConfig) GetBusName() string {
	return c.cfg.Remote.BusName
}

// Log returns the logging settings
func (c *AppConfig) Log() LogConfig {
	return c.cfg.Log
}
