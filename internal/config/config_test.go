// Package config provides configuration management for promptverse.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// ConfigSuite is a test suite for config operations.
type ConfigSuite struct {
	suite.Suite
	tempDir string
}

func (s *ConfigSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
	s.T().Setenv("HOME", s.tempDir)
	s.T().Setenv("PROMPTVERSE_DATA_DIR", "")
	for _, key := range []string{
		"PROMPTVERSE_PORT", "PORT",
		"PROMPTVERSE_TARGET_PROMPT_COUNT", "TARGET_PROMPT_COUNT",
		"PROMPTVERSE_SEED_BATCH_SIZE", "SEED_BATCH_SIZE",
		"PROMPTVERSE_STATIC_ROOT", "STATIC_ROOT",
		"PROMPTVERSE_ADMIN_TOKENS", "PROMPTVERSE_DB_DRIVER",
	} {
		s.T().Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) writeSettings(content string) {
	s.Require().NoError(os.MkdirAll(filepath.Join(s.tempDir, ".promptverse"), 0750))
	s.Require().NoError(os.WriteFile(SettingsPath(), []byte(content), 0600))
}

// TestDefault tests default configuration values.
func (s *ConfigSuite) TestDefault() {
	cfg := Default()

	s.Equal(DefaultPort, cfg.Port)
	s.Equal("0.0.0.0", cfg.Host)
	s.Equal("sqlite", cfg.DBDriver)
	s.Equal(4, cfg.MaxConns)
	s.Equal(int64(5_000_005), cfg.TargetPromptCount)
	s.Equal(500, cfg.SeedBatchSize)
	s.Equal(10*time.Minute, cfg.SeedInterval)
	s.Equal(uint(3), cfg.SeedRetryAttempts)
	s.True(cfg.SeedEnabled)
	s.False(cfg.CookieSecure)
}

// TestPaths tests the data directory layout.
func (s *ConfigSuite) TestPaths() {
	s.Equal(filepath.Join(s.tempDir, ".promptverse"), DataDir())
	s.Equal(filepath.Join(s.tempDir, ".promptverse", "promptverse.db"), DBPath())
	s.Equal(filepath.Join(s.tempDir, ".promptverse", "settings.json"), SettingsPath())

	custom := filepath.Join(s.tempDir, "elsewhere")
	s.T().Setenv("PROMPTVERSE_DATA_DIR", custom)
	s.Equal(custom, DataDir())
}

// TestEnsureAll tests full initialization.
func (s *ConfigSuite) TestEnsureAll() {
	s.NoError(EnsureAll())

	info, err := os.Stat(DataDir())
	s.NoError(err)
	s.True(info.IsDir())
	_, err = os.Stat(SettingsPath())
	s.NoError(err)

	// Second call keeps the existing file.
	s.writeSettings(`{"port": 9000}`)
	s.NoError(EnsureSettings())
	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(9000, cfg.Port)
}

// TestLoad_TableDriven tests configuration loading with various scenarios.
func (s *ConfigSuite) TestLoad_TableDriven() {
	tests := []struct {
		name         string
		settingsJSON string
		wantPort     int
		wantTarget   int64
		wantBatch    int
		wantInterval time.Duration
	}{
		{
			name:         "no settings file",
			wantPort:     DefaultPort,
			wantTarget:   DefaultTargetPromptCount,
			wantBatch:    DefaultSeedBatchSize,
			wantInterval: DefaultSeedInterval,
		},
		{
			name:         "custom port",
			settingsJSON: `{"port": 38888}`,
			wantPort:     38888,
			wantTarget:   DefaultTargetPromptCount,
			wantBatch:    DefaultSeedBatchSize,
			wantInterval: DefaultSeedInterval,
		},
		{
			name:         "seeding settings",
			settingsJSON: `{"target_prompt_count": 1000, "seed_batch_size": 50, "seed_interval": "30s"}`,
			wantPort:     DefaultPort,
			wantTarget:   1000,
			wantBatch:    50,
			wantInterval: 30 * time.Second,
		},
		{
			name:         "out of range values clamped",
			settingsJSON: `{"port": -1, "target_prompt_count": -5, "seed_batch_size": 0}`,
			wantPort:     DefaultPort,
			wantTarget:   0,
			wantBatch:    DefaultSeedBatchSize,
			wantInterval: DefaultSeedInterval,
		},
		{
			name:         "invalid JSON returns defaults",
			settingsJSON: `{invalid}`,
			wantPort:     DefaultPort,
			wantTarget:   DefaultTargetPromptCount,
			wantBatch:    DefaultSeedBatchSize,
			wantInterval: DefaultSeedInterval,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_ = os.Remove(SettingsPath())
			if tt.settingsJSON != "" {
				s.writeSettings(tt.settingsJSON)
			}

			cfg, err := Load()
			s.Require().NoError(err)
			s.Equal(tt.wantPort, cfg.Port)
			s.Equal(tt.wantTarget, cfg.TargetPromptCount)
			s.Equal(tt.wantBatch, cfg.SeedBatchSize)
			s.Equal(tt.wantInterval, cfg.SeedInterval)
		})
	}
}

// TestLoad_EnvOverrides tests prefixed and legacy environment variables.
func (s *ConfigSuite) TestLoad_EnvOverrides() {
	s.writeSettings(`{"port": 9000, "seed_batch_size": 50}`)

	s.T().Setenv("PROMPTVERSE_PORT", "9100")
	s.T().Setenv("SEED_BATCH_SIZE", "75")
	s.T().Setenv("STATIC_ROOT", "  /srv/app  ")
	s.T().Setenv("PROMPTVERSE_ADMIN_TOKENS", "alpha, beta,,")
	s.T().Setenv("PROMPTVERSE_DB_DRIVER", "Postgres")

	cfg, err := Load()
	s.Require().NoError(err)
	s.Equal(9100, cfg.Port)
	s.Equal(75, cfg.SeedBatchSize)
	s.Equal("/srv/app", cfg.StaticRoot)
	s.Equal([]string{"alpha", "beta"}, cfg.AdminTokens)
	s.Equal("postgres", cfg.DBDriver)
}

// TestLoadFile_AdminTokensList tests a JSON list of tokens.
func (s *ConfigSuite) TestLoadFile_AdminTokensList() {
	path := filepath.Join(s.tempDir, "custom.json")
	s.Require().NoError(os.WriteFile(path, []byte(`{"admin_tokens": [" one ", "two"], "cookie_secure": true}`), 0600))

	cfg, err := LoadFile(path)
	s.Require().NoError(err)
	s.Equal([]string{"one", "two"}, cfg.AdminTokens)
	s.True(cfg.CookieSecure)
}

// TestAddr tests listener address formatting.
func (s *ConfigSuite) TestAddr() {
	cfg := Default()
	s.Equal("0.0.0.0:8787", cfg.Addr())
}

// TestSplitTrim tests the splitTrim helper function.
func TestSplitTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: []string{}},
		{name: "single value", input: "token", expected: []string{"token"}},
		{name: "values with spaces", input: " a , b , c ", expected: []string{"a", "b", "c"}},
		{name: "empty values filtered", input: "a,,b,,", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitTrim(tt.input))
		})
	}
}
