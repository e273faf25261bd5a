// Package gorm provides GORM-based database operations for promptverse.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thebtf/promptverse/pkg/models"
)

// PromptStore provides prompt read paths and prompt writes using GORM.
type PromptStore struct {
	db *gorm.DB
}

// NewPromptStore creates a new prompt store.
func NewPromptStore(store *Store) *PromptStore {
	return &PromptStore{db: store.DB}
}

// promptRow is a prompt joined with the requesting client's engagement.
type promptRow struct {
	Prompt   `gorm:"embedded"`
	Liked    int64
	MyRating int64
}

func (r *promptRow) toModel() *models.Prompt {
	p := toModelPrompt(&r.Prompt)
	p.LikedByMe = r.Liked != 0
	p.MyRating = int(r.MyRating)
	return p
}

func toModelRows(rows []promptRow) []*models.Prompt {
	out := make([]*models.Prompt, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out
}

// enriched selects prompts left-joined with clientID's like and rating rows.
func (s *PromptStore) enriched(ctx context.Context, clientID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("prompts AS p").
		Select("p.*, CASE WHEN pl.client_id IS NULL THEN 0 ELSE 1 END AS liked, COALESCE(pr.rating, 0) AS my_rating").
		Joins("LEFT JOIN prompt_likes pl ON pl.prompt_id = p.id AND pl.client_id = ?", clientID).
		Joins("LEFT JOIN prompt_ratings pr ON pr.prompt_id = p.id AND pr.client_id = ?", clientID)
}

// listFilter applies the category and free-text filters.
func listFilter(f models.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category != "" && !strings.EqualFold(f.Category, models.CategoryAll) {
			db = db.Where("p.category = ?", f.Category)
		}
		if q := strings.TrimSpace(f.Query); q != "" {
			pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
			db = db.Where(`(LOWER(p.title) LIKE ? ESCAPE '\' OR LOWER(p.tags_json) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		return db
	}
}

// recencyOrdering orders newest first with id as the stable tiebreak.
func recencyOrdering() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("p.created_at_epoch DESC").Order("p.id DESC")
	}
}

// ListPrompts returns one page of prompts matching the filter, newest first,
// plus the total size of the filtered set. Out-of-range pages are empty.
func (s *PromptStore) ListPrompts(ctx context.Context, clientID string, f models.ListFilter) (*models.PromptPage, error) {
	page, pageSize := ClampPage(f.Page, f.PageSize)

	var total int64
	err := s.db.WithContext(ctx).
		Table("prompts AS p").
		Scopes(listFilter(f)).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	var rows []promptRow
	err = s.enriched(ctx, clientID).
		Scopes(listFilter(f), recencyOrdering()).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return &models.PromptPage{Prompts: toModelRows(rows), Total: total}, nil
}

// GetRecentPrompts returns the newest prompts store-wide.
func (s *PromptStore) GetRecentPrompts(ctx context.Context, clientID string, limit int) ([]*models.Prompt, error) {
	var rows []promptRow
	err := s.enriched(ctx, clientID).
		Scopes(recencyOrdering()).
		Limit(ClampLimit(limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toModelRows(rows), nil
}

// GetPopularPrompts returns the most liked prompts, newest first among equals.
func (s *PromptStore) GetPopularPrompts(ctx context.Context, clientID string, limit int) ([]*models.Prompt, error) {
	var rows []promptRow
	err := s.enriched(ctx, clientID).
		Order("p.likes DESC").
		Scopes(recencyOrdering()).
		Limit(ClampLimit(limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toModelRows(rows), nil
}

// GetPrompt returns a single prompt enriched for clientID.
func (s *PromptStore) GetPrompt(ctx context.Context, clientID, id string) (*models.Prompt, error) {
	var rows []promptRow
	err := s.enriched(ctx, clientID).
		Where("p.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("prompt %q: %w", id, models.ErrNotFound)
	}
	return rows[0].toModel(), nil
}

// GetCategoryCounts returns a count for every category plus the "All" total.
// The total is the sum of the per-category counts from the same query.
func (s *PromptStore) GetCategoryCounts(ctx context.Context) (models.CategoryCounts, error) {
	var groups []struct {
		Category string
		Count    int64
	}
	err := s.db.WithContext(ctx).
		Model(&Prompt{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}

	counts := make(models.CategoryCounts, len(models.Categories)+1)
	for _, c := range models.Categories {
		counts[string(c)] = 0
	}
	var total int64
	for _, g := range groups {
		counts[g.Category] = g.Count
		total += g.Count
	}
	counts[models.CategoryAll] = total
	return counts, nil
}

// CountPrompts returns the total number of stored prompts.
func (s *PromptStore) CountPrompts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Prompt{}).Count(&count).Error
	return count, err
}

// CreatePrompt inserts a new prompt and returns it as stored.
// A duplicate id is a storage failure, not a silent overwrite.
func (s *PromptStore) CreatePrompt(ctx context.Context, p *models.Prompt) (*models.Prompt, error) {
	row := fromModelPrompt(p)
	row.Copies = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("prompt %q already exists: %w", p.ID, err)
		}
		return nil, fmt.Errorf("insert prompt: %w", err)
	}
	return toModelPrompt(row), nil
}

// UpdatePrompt edits title, description, content and category, then re-reads
// the prompt enriched for clientID.
func (s *PromptStore) UpdatePrompt(ctx context.Context, clientID, id string, edit models.PromptEdit) (*models.Prompt, error) {
	result := s.db.WithContext(ctx).
		Model(&Prompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       edit.Title,
			"description": edit.Description,
			"content":     edit.Content,
			"category":    edit.Category,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("update prompt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("prompt %q: %w", id, models.ErrNotFound)
	}
	return s.GetPrompt(ctx, clientID, id)
}

// InsertBatch inserts prompts in one transaction, skipping ids that already
// exist. Returns how many rows were actually inserted.
func (s *PromptStore) InsertBatch(ctx context.Context, prompts []*models.Prompt) (int64, error) {
	if len(prompts) == 0 {
		return 0, nil
	}
	rows := make([]*Prompt, len(prompts))
	for i, p := range prompts {
		rows[i] = fromModelPrompt(p)
	}

	var inserted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 100)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	return inserted, nil
}

// promptExists reports whether a prompt row exists inside tx.
func promptExists(tx *gorm.DB, id string) (bool, error) {
	var p Prompt
	err := tx.Select("id").Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
