package seed

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/thebtf/promptverse/pkg/models"
)

//go:embed curated.yaml
var curatedYAML []byte

// curatedPrompt is one entry of the embedded bootstrap set.
type curatedPrompt struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Content         string   `yaml:"content"`
	Category        string   `yaml:"category"`
	Tags            []string `yaml:"tags"`
	Author          string   `yaml:"author"`
	ModelSuggestion string   `yaml:"model_suggestion"`
}

type curatedFile struct {
	Prompts []curatedPrompt `yaml:"prompts"`
}

// parseCurated decodes a bootstrap set and validates every category.
func parseCurated(data []byte) ([]curatedPrompt, error) {
	var f curatedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse curated prompts: %w", err)
	}
	for i, p := range f.Prompts {
		if !models.Category(p.Category).Valid() {
			return nil, fmt.Errorf("curated prompt %d: unknown category %q", i, p.Category)
		}
	}
	return f.Prompts, nil
}

// CuratedPrompts returns the bootstrap set with fresh ids and strictly
// descending timestamps starting at now.
func CuratedPrompts(now int64) ([]*models.Prompt, error) {
	entries, err := parseCurated(curatedYAML)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Prompt, 0, len(entries))
	for i, e := range entries {
		tags := e.Tags
		if len(tags) == 0 {
			tags = []string{models.DefaultTag}
		}
		out = append(out, &models.Prompt{
			ID:              uuid.NewString(),
			Title:           e.Title,
			Description:     e.Description,
			Content:         e.Content,
			Category:        models.Category(e.Category),
			Tags:            tags,
			Author:          e.Author,
			ModelSuggestion: e.ModelSuggestion,
			CreatedAt:       now - int64(i)*1000,
		})
	}
	return out, nil
}
