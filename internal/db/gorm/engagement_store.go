// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thebtf/promptverse/pkg/models"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// EngagementStore provides like, copy and rating mutations using GORM.
// Each mutation runs in its own transaction and reads its result back
// before commit.
type EngagementStore struct {
	db *gorm.DB
}

// NewEngagementStore creates a new engagement store.
func NewEngagementStore(store *Store) *EngagementStore {
	return &EngagementStore{db: store.DB}
}

// ToggleLike flips clientID's like on a prompt and adjusts the counter.
// The server decides the direction from the stored like row, so a client
// can never add more than one like per prompt.
func (s *EngagementStore) ToggleLike(ctx context.Context, promptID, clientID string) (*models.LikeState, error) {
	var state models.LikeState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Write first so the transaction holds the write lock before any read.
		removed := tx.Where("prompt_id = ? AND client_id = ?", promptID, clientID).Delete(&PromptLike{})
		if removed.Error != nil {
			return removed.Error
		}

		if removed.RowsAffected > 0 {
			err := tx.Model(&Prompt{}).
				Where("id = ?", promptID).
				Update("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error
			if err != nil {
				return err
			}
			state.Liked = false
		} else {
			exists, err := promptExists(tx, promptID)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("prompt %q: %w", promptID, models.ErrNotFound)
			}

			like := PromptLike{
				PromptID:       promptID,
				ClientID:       clientID,
				CreatedAtEpoch: time.Now().UnixMilli(),
			}
			added := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
			if added.Error != nil {
				return added.Error
			}
			// Zero rows means a concurrent toggle already inserted the row and counted it.
			if added.RowsAffected > 0 {
				err := tx.Model(&Prompt{}).
					Where("id = ?", promptID).
					Update("likes", gorm.Expr("likes + 1")).Error
				if err != nil {
					return err
				}
			}
			state.Liked = true
		}

		return tx.Model(&Prompt{}).
			Select("likes").
			Where("id = ?", promptID).
			Scan(&state.Likes).Error
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// IncrementCopy bumps a prompt's copy counter. Copies are not deduplicated per client.
func (s *EngagementStore) IncrementCopy(ctx context.Context, promptID string) (int64, error) {
	var copies int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Prompt{}).
			Where("id = ?", promptID).
			Update("copies", gorm.Expr("copies + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("prompt %q: %w", promptID, models.ErrNotFound)
		}
		return tx.Model(&Prompt{}).
			Select("copies").
			Where("id = ?", promptID).
			Scan(&copies).Error
	})
	if err != nil {
		return 0, err
	}
	return copies, nil
}

// SetRating upserts clientID's rating of a prompt and returns the stored value.
// An overwrite refreshes updated_at_epoch and keeps the original created_at_epoch.
func (s *EngagementStore) SetRating(ctx context.Context, promptID, clientID string, rating int) (int, error) {
	if rating < MinRating || rating > MaxRating {
		return 0, fmt.Errorf("rating %d outside [%d,%d]: %w", rating, MinRating, MaxRating, models.ErrInvalidArgument)
	}

	var stored int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := promptExists(tx, promptID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("prompt %q: %w", promptID, models.ErrNotFound)
		}

		now := time.Now().UnixMilli()
		row := PromptRating{
			PromptID:       promptID,
			ClientID:       clientID,
			Rating:         rating,
			CreatedAtEpoch: now,
			UpdatedAtEpoch: now,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "prompt_id"}, {Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at_epoch"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		return tx.Model(&PromptRating{}).
			Select("rating").
			Where("prompt_id = ? AND client_id = ?", promptID, clientID).
			Scan(&stored).Error
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// GetRating returns clientID's stored rating row for a prompt.
func (s *EngagementStore) GetRating(ctx context.Context, promptID, clientID string) (*PromptRating, error) {
	var row PromptRating
	err := s.db.WithContext(ctx).
		Where("prompt_id = ? AND client_id = ?", promptID, clientID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("rating for prompt %q: %w", promptID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
