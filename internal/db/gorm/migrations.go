// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultAdminTokenHash is the SHA-256 hex digest of the built-in admin token.
const DefaultAdminTokenHash = "e94d79bc0c5c85a18b566b6b4d761cd8703173b14b03a3520a302f2370771e92"

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: Prompts table with category, recency and popularity indexes
		{
			ID: "001_prompts",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Prompt{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("prompts")
			},
		},

		// Migration 002: Per-client likes and ratings (cascade with their prompt)
		{
			ID: "002_engagement",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&PromptLike{}); err != nil {
					return err
				}
				return tx.AutoMigrate(&PromptRating{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("prompt_ratings", "prompt_likes")
			},
		},

		// Migration 003: Admin tokens and sessions with the default token
		{
			ID: "003_admin",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&AdminToken{}); err != nil {
					return err
				}
				if err := tx.AutoMigrate(&AdminSession{}); err != nil {
					return err
				}
				token := AdminToken{
					TokenHash:      DefaultAdminTokenHash,
					CreatedAtEpoch: time.Now().UnixMilli(),
				}
				return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&token).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("admin_sessions", "admin_tokens")
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("run gormigrate migrations: %w", err)
	}

	return nil
}
