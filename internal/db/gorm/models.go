// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/thebtf/promptverse/pkg/models"
)

// GORM Models

// Prompt is a stored prompt record.
type Prompt struct {
	ID              string                 `gorm:"primaryKey;type:text;index:idx_prompts_created,priority:2,sort:desc"`
	Title           string                 `gorm:"type:text;not null"`
	Description     string                 `gorm:"type:text;not null"`
	Content         string                 `gorm:"type:text;not null"`
	Category        models.Category        `gorm:"type:text;not null;index:idx_prompts_category;check:chk_prompts_category,category IN ('Coding', 'Web Development', 'Creative Writing', 'Image Generation', '3D Generation', 'Cartoon', 'Video Generation', 'Business', 'Learning', 'Fun')"`
	Tags            models.JSONStringArray `gorm:"column:tags_json;type:text;not null"`
	Author          string                 `gorm:"type:text;not null"`
	Likes           int64                  `gorm:"not null;default:0;check:chk_prompts_likes,likes >= 0;index:idx_prompts_popular,priority:1,sort:desc"`
	Copies          int64                  `gorm:"not null;default:0;check:chk_prompts_copies,copies >= 0"`
	ModelSuggestion sql.NullString         `gorm:"type:text"`
	CreatedAtEpoch  int64                  `gorm:"not null;index:idx_prompts_created,priority:1,sort:desc;index:idx_prompts_popular,priority:2,sort:desc"`
}

func (Prompt) TableName() string { return "prompts" }

// BeforeCreate hook to ensure defaults are set.
func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAtEpoch == 0 {
		p.CreatedAtEpoch = time.Now().UnixMilli()
	}
	if len(p.Tags) == 0 {
		p.Tags = models.JSONStringArray{models.DefaultTag}
	}
	return nil
}

// PromptLike records that a client currently likes a prompt.
type PromptLike struct {
	PromptID       string  `gorm:"primaryKey;type:text"`
	ClientID       string  `gorm:"primaryKey;type:text;index:idx_prompt_likes_client"`
	CreatedAtEpoch int64   `gorm:"not null"`
	Prompt         *Prompt `gorm:"foreignKey:PromptID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PromptLike) TableName() string { return "prompt_likes" }

// PromptRating is a client's 1-5 rating of a prompt.
type PromptRating struct {
	PromptID       string  `gorm:"primaryKey;type:text"`
	ClientID       string  `gorm:"primaryKey;type:text"`
	Rating         int     `gorm:"not null;check:chk_prompt_ratings_rating,rating BETWEEN 1 AND 5"`
	CreatedAtEpoch int64   `gorm:"not null"`
	UpdatedAtEpoch int64   `gorm:"not null"`
	Prompt         *Prompt `gorm:"foreignKey:PromptID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PromptRating) TableName() string { return "prompt_ratings" }

// BeforeCreate hook to ensure timestamps are set.
func (r *PromptRating) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UnixMilli()
	if r.CreatedAtEpoch == 0 {
		r.CreatedAtEpoch = now
	}
	if r.UpdatedAtEpoch == 0 {
		r.UpdatedAtEpoch = now
	}
	return nil
}

// AdminToken stores the SHA-256 hex digest of an admin unlock token.
type AdminToken struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	TokenHash      string `gorm:"type:text;uniqueIndex;not null"`
	CreatedAtEpoch int64  `gorm:"not null"`
}

func (AdminToken) TableName() string { return "admin_tokens" }

// BeforeCreate hook to ensure timestamps are set.
func (t *AdminToken) BeforeCreate(tx *gorm.DB) error {
	if t.CreatedAtEpoch == 0 {
		t.CreatedAtEpoch = time.Now().UnixMilli()
	}
	return nil
}

// AdminSession grants a client the admin privilege. It never expires.
type AdminSession struct {
	ClientID       string      `gorm:"primaryKey;type:text"`
	TokenID        int64       `gorm:"not null"`
	CreatedAtEpoch int64       `gorm:"not null"`
	Token          *AdminToken `gorm:"foreignKey:TokenID;references:ID;constraint:OnDelete:CASCADE"`
}

func (AdminSession) TableName() string { return "admin_sessions" }

// toModelPrompt converts a stored prompt to the transport model.
func toModelPrompt(p *Prompt) *models.Prompt {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &models.Prompt{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Content:         p.Content,
		Category:        p.Category,
		Tags:            tags,
		Author:          p.Author,
		Likes:           p.Likes,
		Copies:          p.Copies,
		ModelSuggestion: p.ModelSuggestion.String,
		CreatedAt:       p.CreatedAtEpoch,
	}
}

// fromModelPrompt converts a transport prompt to a storable record.
func fromModelPrompt(p *models.Prompt) *Prompt {
	return &Prompt{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Content:         p.Content,
		Category:        p.Category,
		Tags:            models.JSONStringArray(p.Tags),
		Author:          p.Author,
		Likes:           p.Likes,
		Copies:          p.Copies,
		ModelSuggestion: nullString(p.ModelSuggestion),
		CreatedAtEpoch:  p.CreatedAt,
	}
}
