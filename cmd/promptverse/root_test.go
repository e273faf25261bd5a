package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTVERSE_DATA_DIR", dir)

	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"target_prompt_count": 42, "seed_batch_size": 7, "log_level": "warn"}`), 0600))

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.TargetPromptCount)
	assert.Equal(t, filepath.Join(dir, "promptverse.db"), cfg.DBPath)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	sc := seedConfig(cfg)
	assert.Equal(t, int64(42), sc.Target)
	assert.Equal(t, 7, sc.BatchSize)
	assert.Equal(t, cfg.SeedRetryAttempts, sc.RetryAttempts)
}

func TestSetupLogging_DebugOverrides(t *testing.T) {
	debug = true
	t.Cleanup(func() {
		debug = false
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	setupLogging("error")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestMigrateAndSeedCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTVERSE_DATA_DIR", dir)
	cfgFile = ""

	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(dir, "promptverse.db"))

	rootCmd.SetArgs([]string{"seed", "--target", "1200"})
	require.NoError(t, rootCmd.Execute())
}
