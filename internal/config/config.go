// Package config provides configuration management for promptverse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Default values.
const (
	DefaultPort              = 8787
	DefaultHost              = "0.0.0.0"
	DefaultDBDriver          = "sqlite"
	DefaultMaxConns          = 4
	DefaultTargetPromptCount = 5_000_005
	DefaultSeedBatchSize     = 500
	DefaultSeedInterval      = 10 * time.Minute
	DefaultSeedRetryAttempts = 3
	DefaultLogLevel          = "info"

	envPrefix        = "PROMPTVERSE"
	dataDirName      = ".promptverse"
	dbFileName       = "promptverse.db"
	settingsFileName = "settings.json"
)

// Config holds all configuration values.
type Config struct {
	Port              int           `mapstructure:"port" json:"port"`
	Host              string        `mapstructure:"host" json:"host"`
	DBDriver          string        `mapstructure:"db_driver" json:"db_driver"`
	DBPath            string        `mapstructure:"db_path" json:"db_path"`
	DBDSN             string        `mapstructure:"db_dsn" json:"db_dsn,omitempty"`
	MaxConns          int           `mapstructure:"max_conns" json:"max_conns"`
	TargetPromptCount int64         `mapstructure:"target_prompt_count" json:"target_prompt_count"`
	SeedBatchSize     int           `mapstructure:"seed_batch_size" json:"seed_batch_size"`
	SeedInterval      time.Duration `mapstructure:"seed_interval" json:"seed_interval"`
	SeedRetryAttempts uint          `mapstructure:"seed_retry_attempts" json:"seed_retry_attempts"`
	SeedEnabled       bool          `mapstructure:"seed_enabled" json:"seed_enabled"`
	AdminTokens       []string      `mapstructure:"admin_tokens" json:"admin_tokens,omitempty"`
	StaticRoot        string        `mapstructure:"static_root" json:"static_root,omitempty"`
	CookieSecure      bool          `mapstructure:"cookie_secure" json:"cookie_secure"`
	LogLevel          string        `mapstructure:"log_level" json:"log_level"`
}

// legacyEnv maps keys to the unprefixed variables older deployments set.
var legacyEnv = map[string]string{
	"port":                "PORT",
	"target_prompt_count": "TARGET_PROMPT_COUNT",
	"seed_batch_size":     "SEED_BATCH_SIZE",
	"static_root":         "STATIC_ROOT",
}

// DataDir returns the data directory path. PROMPTVERSE_DATA_DIR overrides
// the default of ~/.promptverse.
func DataDir() string {
	if dir := strings.TrimSpace(os.Getenv(envPrefix + "_DATA_DIR")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, dataDirName)
}

// DBPath returns the default SQLite database path.
func DBPath() string {
	return filepath.Join(DataDir(), dbFileName)
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), settingsFileName)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// EnsureSettings writes a default settings file if none exists.
func EnsureSettings() error {
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data := []byte(`{
  "port": 8787,
  "target_prompt_count": 5000005,
  "seed_batch_size": 500,
  "seed_interval": "10m"
}
`)
	return os.WriteFile(path, data, 0600)
}

// EnsureAll creates the data directory and default settings.
func EnsureAll() error {
	if err := EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return EnsureSettings()
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:              DefaultPort,
		Host:              DefaultHost,
		DBDriver:          DefaultDBDriver,
		DBPath:            DBPath(),
		MaxConns:          DefaultMaxConns,
		TargetPromptCount: DefaultTargetPromptCount,
		SeedBatchSize:     DefaultSeedBatchSize,
		SeedInterval:      DefaultSeedInterval,
		SeedRetryAttempts: DefaultSeedRetryAttempts,
		SeedEnabled:       true,
		LogLevel:          DefaultLogLevel,
	}
}

// newViper builds a viper instance with defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("port", d.Port)
	v.SetDefault("host", d.Host)
	v.SetDefault("db_driver", d.DBDriver)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("db_dsn", "")
	v.SetDefault("max_conns", d.MaxConns)
	v.SetDefault("target_prompt_count", d.TargetPromptCount)
	v.SetDefault("seed_batch_size", d.SeedBatchSize)
	v.SetDefault("seed_interval", d.SeedInterval)
	v.SetDefault("seed_retry_attempts", d.SeedRetryAttempts)
	v.SetDefault("seed_enabled", d.SeedEnabled)
	v.SetDefault("admin_tokens", []string{})
	v.SetDefault("static_root", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		_ = v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key), legacy)
	}
	return v
}

// Load reads configuration from the settings file and the environment.
// A missing or unparseable settings file yields defaults plus env overrides.
func Load() (*Config, error) {
	return LoadFile(SettingsPath())
}

// LoadFile reads configuration from the given settings file and the environment.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("read settings: %w", err)
			}
			log.Warn().Err(err).Str("path", path).Msg("Invalid settings file, using defaults")
			v = newViper()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize clamps values into their valid ranges.
func (c *Config) normalize() {
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver == "" {
		c.DBDriver = DefaultDBDriver
	}
	if c.DBPath == "" {
		c.DBPath = DBPath()
	}
	if c.MaxConns <= 0 {
		c.MaxConns = DefaultMaxConns
	}
	if c.TargetPromptCount < 0 {
		c.TargetPromptCount = 0
	}
	if c.SeedBatchSize <= 0 {
		c.SeedBatchSize = DefaultSeedBatchSize
	}
	if c.SeedInterval < 0 {
		c.SeedInterval = 0
	}
	if c.SeedRetryAttempts == 0 {
		c.SeedRetryAttempts = DefaultSeedRetryAttempts
	}
	c.AdminTokens = splitTrim(strings.Join(c.AdminTokens, ","))
	c.StaticRoot = strings.TrimSpace(c.StaticRoot)
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// splitTrim splits a comma-separated string and drops empty items.
func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
