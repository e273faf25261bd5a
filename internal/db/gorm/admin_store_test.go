// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/thebtf/promptverse/pkg/models"
)

// AdminStoreSuite is a test suite for admin unlock operations.
type AdminStoreSuite struct {
	suite.Suite
	store   *Store
	cleanup func()
	admin   *AdminStore
	ctx     context.Context
}

func (s *AdminStoreSuite) SetupTest() {
	s.store, s.cleanup = testStore(s.T())
	s.admin = NewAdminStore(s.store)
	s.ctx = context.Background()
	s.Require().NoError(s.admin.EnsureTokens(s.ctx, []string{"open-sesame"}))
}

func (s *AdminStoreSuite) TearDownTest() {
	s.cleanup()
}

func TestAdminStoreSuite(t *testing.T) {
	suite.Run(t, new(AdminStoreSuite))
}

// TestHashToken tests the stored digest format.
func (s *AdminStoreSuite) TestHashToken() {
	s.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashToken(""))
	s.Len(HashToken("anything"), 64)
}

// TestUnlock tests the unlock flow and status.
func (s *AdminStoreSuite) TestUnlock() {
	unlocked, err := s.admin.IsUnlocked(s.ctx, "client-a")
	s.Require().NoError(err)
	s.False(unlocked)

	s.Require().NoError(s.admin.Unlock(s.ctx, "client-a", "  open-sesame \n"))

	unlocked, err = s.admin.IsUnlocked(s.ctx, "client-a")
	s.Require().NoError(err)
	s.True(unlocked)

	unlocked, err = s.admin.IsUnlocked(s.ctx, "client-b")
	s.Require().NoError(err)
	s.False(unlocked, "grants are per client")
}

// TestUnlock_Repeated tests that a second unlock replaces the grant.
func (s *AdminStoreSuite) TestUnlock_Repeated() {
	s.Require().NoError(s.admin.Unlock(s.ctx, "client-a", "open-sesame"))
	s.Require().NoError(s.admin.Unlock(s.ctx, "client-a", "open-sesame"))

	var sessions int64
	s.store.DB.Model(&AdminSession{}).Count(&sessions)
	s.Equal(int64(1), sessions)
}

// TestUnlock_Errors tests rejection paths.
func (s *AdminStoreSuite) TestUnlock_Errors() {
	err := s.admin.Unlock(s.ctx, "client-a", "wrong")
	s.True(errors.Is(err, models.ErrUnauthorized))

	err = s.admin.Unlock(s.ctx, "client-a", "   ")
	s.True(errors.Is(err, models.ErrInvalidArgument))

	err = s.admin.Unlock(s.ctx, "client-a", strings.Repeat("x", MaxAdminTokenLength+1))
	s.True(errors.Is(err, models.ErrInvalidArgument))

	unlocked, err := s.admin.IsUnlocked(s.ctx, "client-a")
	s.Require().NoError(err)
	s.False(unlocked)
}

// TestEnsureTokens_RestoresDefault tests the at-least-one-token invariant.
func (s *AdminStoreSuite) TestEnsureTokens_RestoresDefault() {
	s.Require().NoError(s.store.DB.Where("1 = 1").Delete(&AdminToken{}).Error)

	s.Require().NoError(s.admin.EnsureTokens(s.ctx, nil))

	var tokens []AdminToken
	s.Require().NoError(s.store.DB.Find(&tokens).Error)
	s.Require().Len(tokens, 1)
	s.Equal(DefaultAdminTokenHash, tokens[0].TokenHash)
}

// TestEnsureTokens_DefaultAlongsideConfigured tests that the default hash is
// restored even when other tokens exist.
func (s *AdminStoreSuite) TestEnsureTokens_DefaultAlongsideConfigured() {
	s.Require().NoError(s.store.DB.Where("token_hash = ?", DefaultAdminTokenHash).Delete(&AdminToken{}).Error)

	s.Require().NoError(s.admin.EnsureTokens(s.ctx, []string{"open-sesame"}))

	var count int64
	s.Require().NoError(s.store.DB.Model(&AdminToken{}).Where("token_hash = ?", DefaultAdminTokenHash).Count(&count).Error)
	s.Equal(int64(1), count)
	s.Require().NoError(s.store.DB.Model(&AdminToken{}).Count(&count).Error)
	s.Equal(int64(2), count)
}

// TestEnsureTokens_Idempotent tests repeated startup registration.
func (s *AdminStoreSuite) TestEnsureTokens_Idempotent() {
	s.Require().NoError(s.admin.EnsureTokens(s.ctx, []string{"open-sesame", "", "second"}))

	var count int64
	s.store.DB.Model(&AdminToken{}).Count(&count)
	s.Equal(int64(3), count) // default + open-sesame + second
}
