package main

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/promptverse/internal/db/gorm"
	"github.com/thebtf/promptverse/internal/metrics"
	"github.com/thebtf/promptverse/internal/seed"
)

var seedTarget int64

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Bootstrap and grow the store synchronously",
	Long: `Bootstrap an empty store with the curated prompts, then generate synthetic
prompts until the store holds the target count. Safe to interrupt and rerun.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if seedTarget > 0 {
			cfg.TargetPromptCount = seedTarget
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		prompts := gorm.NewPromptStore(store)
		seeder := seed.NewSeeder(prompts, seedConfig(cfg), metrics.New())
		if _, err := seeder.Bootstrap(ctx); err != nil {
			return err
		}
		if err := seeder.Run(ctx); err != nil {
			return err
		}

		count, err := prompts.CountPrompts(ctx)
		if err != nil {
			return err
		}
		log.Info().Int64("prompts", count).Int64("target", cfg.TargetPromptCount).Msg("Seeding finished")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		return store.Close()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("promptverse %s\n", Version)
		fmt.Printf("  Go: %s\n", runtime.Version())
	},
}

func init() {
	seedCmd.Flags().Int64Var(&seedTarget, "target", 0, "row count to reach (default from settings)")
}
