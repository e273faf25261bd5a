// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thebtf/promptverse/pkg/models"
)

// MaxAdminTokenLength bounds the accepted unlock token length.
const MaxAdminTokenLength = 256

// AdminStore provides admin token and session operations using GORM.
// Unlock attempts are not rate limited and sessions do not expire.
type AdminStore struct {
	db *gorm.DB
}

// NewAdminStore creates a new admin store.
func NewAdminStore(store *Store) *AdminStore {
	return &AdminStore{db: store.DB}
}

// HashToken returns the SHA-256 hex digest stored for a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// EnsureTokens stores the hashes of the given plaintext tokens on top of the
// default token, which is always present.
func (s *AdminStore) EnsureTokens(ctx context.Context, tokens []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		for _, t := range tokens {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			row := AdminToken{TokenHash: HashToken(t), CreatedAtEpoch: now}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("store admin token: %w", err)
			}
		}

		row := AdminToken{TokenHash: DefaultAdminTokenHash, CreatedAtEpoch: now}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	})
}

// IsUnlocked reports whether clientID holds an admin grant.
func (s *AdminStore) IsUnlocked(ctx context.Context, clientID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&AdminSession{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count > 0, err
}

// Unlock grants clientID the admin privilege if token matches a stored hash.
// A prior grant is replaced. A non-matching token returns ErrUnauthorized
// without saying why.
func (s *AdminStore) Unlock(ctx context.Context, clientID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" || len(token) > MaxAdminTokenLength {
		return fmt.Errorf("admin token: %w", models.ErrInvalidArgument)
	}

	var row AdminToken
	err := s.db.WithContext(ctx).
		Where("token_hash = ?", HashToken(token)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrUnauthorized
	}
	if err != nil {
		return err
	}

	session := AdminSession{
		ClientID:       clientID,
		TokenID:        row.ID,
		CreatedAtEpoch: time.Now().UnixMilli(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_id", "created_at_epoch"}),
	}).Create(&session).Error
}
