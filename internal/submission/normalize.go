// Package submission normalizes user-submitted prompt fields before storage.
package submission

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/thebtf/promptverse/pkg/models"
)

// ErrUnknownCategory reports a category outside the fixed set.
var ErrUnknownCategory = fmt.Errorf("unknown category: %w", models.ErrInvalidArgument)

// whitespaceRun matches any run of whitespace, newlines included.
var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanLine trims s and collapses internal whitespace runs to one space.
// Only tags go through it; titles and authors are stored as typed, trimmed.
func CleanLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// CleanTags trims every tag, drops empty and repeated ones, and falls back
// to the default tag when nothing is left.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = CleanLine(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return []string{models.DefaultTag}
	}
	return out
}

// resolveCategory applies the default and rejects values outside the set.
func resolveCategory(c models.Category) (models.Category, error) {
	c = models.Category(strings.TrimSpace(string(c)))
	if c == "" {
		return models.DefaultCategory, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownCategory, c)
	}
	return c, nil
}

// Normalize validates a submission and builds the prompt to store.
// A requested like count is honored only when adminUnlocked is true; copies
// always start at zero. Missing id and createdAt are generated.
func Normalize(in models.NewPrompt, adminUnlocked bool, nowMillis int64) (*models.Prompt, error) {
	p := &models.Prompt{
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Content:         in.Content,
		Author:          strings.TrimSpace(in.Author),
		ModelSuggestion: strings.TrimSpace(in.ModelSuggestion),
		Tags:            CleanTags(in.Tags),
	}

	if p.Title == "" || p.Description == "" || p.Content == "" || p.Author == "" {
		return nil, fmt.Errorf("missing required fields: %w", models.ErrInvalidArgument)
	}

	category, err := resolveCategory(in.Category)
	if err != nil {
		return nil, err
	}
	p.Category = category

	if adminUnlocked && in.Likes != nil && *in.Likes > 0 {
		p.Likes = *in.Likes
	}

	p.ID = strings.TrimSpace(in.ID)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	p.CreatedAt = nowMillis
	if in.CreatedAt != nil {
		p.CreatedAt = *in.CreatedAt
	}
	return p, nil
}

// NormalizeEdit validates an edit. Content keeps its whitespace.
func NormalizeEdit(in models.PromptEdit) (models.PromptEdit, error) {
	out := models.PromptEdit{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
	}
	if out.Title == "" || out.Description == "" || out.Content == "" {
		return models.PromptEdit{}, fmt.Errorf("missing required fields: %w", models.ErrInvalidArgument)
	}

	category, err := resolveCategory(in.Category)
	if err != nil {
		return models.PromptEdit{}, err
	}
	out.Category = category
	return out, nil
}
