package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thebtf/promptverse/internal/authors"
	"github.com/thebtf/promptverse/internal/config"
	"github.com/thebtf/promptverse/internal/db/gorm"
	"github.com/thebtf/promptverse/internal/metrics"
	"github.com/thebtf/promptverse/internal/seed"
	"github.com/thebtf/promptverse/internal/watcher"
	"github.com/thebtf/promptverse/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and background growth",
	Long: `Start the PromptVerse HTTP server.

On startup the schema is migrated, configured admin tokens are hashed into the
store, and an empty store receives the curated prompts. Background growth then
runs toward target_prompt_count and is re-triggered every seed_interval.
Edits to the settings file are picked up without a restart.

Examples:
  promptverse serve                  # listen on 0.0.0.0:8787
  promptverse serve --port 3000
  promptverse serve --pretty --debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveHost != "" {
			cfg.Host = serveHost
		}
		if servePort > 0 {
			cfg.Port = servePort
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (default from settings)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from settings)")
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := gorm.NewAdminStore(store).EnsureTokens(ctx, cfg.AdminTokens); err != nil {
		return err
	}

	m := metrics.New()
	seeder := seed.NewSeeder(gorm.NewPromptStore(store), seedConfig(cfg), m)
	if _, err := seeder.Bootstrap(ctx); err != nil {
		return err
	}

	reg, err := authors.Load(filepath.Join(config.DataDir(), "authors.yaml"))
	if err != nil {
		log.Warn().Err(err).Msg("Invalid authors file, using built-in profiles")
		reg = authors.Default()
	}

	svc := worker.NewService(worker.Options{
		Version: Version,
		Config:  cfg,
		Store:   store,
		Seeder:  seeder,
		Authors: reg,
		Metrics: m,
	})
	svc.MarkReady()

	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("version", Version).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.SeedEnabled {
		seeder.Start(gctx)

		sched, err := seed.NewScheduler(gctx, seeder, cfg.SeedInterval)
		if err != nil {
			return err
		}
		sched.Start()
		g.Go(func() error {
			<-gctx.Done()
			return sched.Stop()
		})
	}

	path := settingsPath()
	w, err := watcher.New(path, func() {
		reloaded, err := config.LoadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to reload settings")
			return
		}
		seeder.SetConfig(seedConfig(reloaded))
		if reloaded.SeedEnabled {
			seeder.Start(gctx)
		}
	})
	if err != nil {
		log.Warn().Err(err).Msg("Settings watcher unavailable, hot reload disabled")
	} else {
		g.Go(func() error { return w.Run(gctx) })
	}

	return g.Wait()
}
