package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thebtf/promptverse/internal/config"
	"github.com/thebtf/promptverse/internal/db/gorm"
	"github.com/thebtf/promptverse/internal/seed"
)

var (
	cfgFile string
	dataDir string
	pretty  bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "promptverse",
	Short: "Prompt gallery backend",
	Long: `PromptVerse serves a gallery of generative-AI prompts: paginated browsing,
search, per-browser likes and ratings, copy counts, and admin-gated submissions.
A background generator grows the store toward a configured size.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if dataDir != "" {
			if err := os.Setenv("PROMPTVERSE_DATA_DIR", dataDir); err != nil {
				return err
			}
		}
		setupLogging("")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default: <data dir>/settings.json)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ~/.promptverse)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable console logs")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, seedCmd, migrateCmd, versionCmd)
}

// setupLogging configures the global logger. level comes from settings and
// is overridden by --debug.
func setupLogging(level string) {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		lvl = parsed
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// settingsPath returns the active settings file.
func settingsPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.SettingsPath()
}

// loadConfig prepares the data dir and reads settings.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		if err := config.EnsureAll(); err != nil {
			return nil, err
		}
	} else if err := config.EnsureDataDir(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadFile(settingsPath())
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

// openStore opens the configured database and runs migrations.
func openStore(cfg *config.Config) (*gorm.Store, error) {
	lvl := gormlogger.Silent
	if debug {
		lvl = gormlogger.Warn
	}
	store, err := gorm.NewStore(gorm.Config{
		Driver:   cfg.DBDriver,
		Path:     cfg.DBPath,
		DSN:      cfg.DBDSN,
		MaxConns: cfg.MaxConns,
		LogLevel: lvl,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", store.Driver()).Str("path", cfg.DBPath).Msg("Database ready")
	return store, nil
}

// seedConfig maps settings onto the seeder.
func seedConfig(cfg *config.Config) seed.Config {
	return seed.Config{
		Target:        cfg.TargetPromptCount,
		BatchSize:     cfg.SeedBatchSize,
		RetryAttempts: cfg.SeedRetryAttempts,
	}
}
