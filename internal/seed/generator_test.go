package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/promptverse/pkg/models"
)

const testAnchor int64 = 1_760_000_000_000

func TestPick(t *testing.T) {
	// ((0*9301 + 49297) % 233280) % 12 == 1
	assert.Equal(t, "Practical", pick(adjectivePool, 0))
	for n := int64(0); n < 500; n++ {
		assert.Equal(t, pick(topicPool, n), pick(topicPool, n))
	}
}

func TestPseudoRandRange(t *testing.T) {
	for n := int64(0); n < 10_000; n++ {
		v := pseudoRand(n)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestGenerator_Reproducible(t *testing.T) {
	first := NewGenerator(testAnchor).Batch(1000, 100)
	second := NewGenerator(testAnchor).Batch(1000, 100)

	require.Len(t, first, 100)
	assert.Equal(t, first, second)
	assert.Equal(t, "gen-1000", first[0].ID)
	assert.Equal(t, "gen-1099", first[99].ID)
}

func TestGenerator_FieldContracts(t *testing.T) {
	gen := NewGenerator(testAnchor)

	for n := int64(0); n < 2000; n++ {
		p := gen.Generate(n)

		require.True(t, p.Category.Valid(), "n=%d category %q", n, p.Category)
		require.GreaterOrEqual(t, p.Likes, int64(0))
		require.Less(t, p.Likes, int64(MaxGeneratedLikes))
		require.LessOrEqual(t, p.CreatedAt, testAnchor)
		require.Greater(t, p.CreatedAt, testAnchor-CreatedAtSpread)
		require.Len(t, p.Tags, 4)
		require.Equal(t, models.DefaultTag, p.Tags[0])
		for _, tag := range p.Tags {
			require.NotContains(t, tag, " ")
		}
		require.True(t, strings.HasSuffix(p.Title, " Prompt"))
		require.Contains(t, authorPool, p.Author)
		require.Zero(t, p.Copies)

		switch p.Category {
		case models.CategoryVideo:
			require.Equal(t, models.ModelVideo, p.ModelSuggestion)
		case models.CategoryImage, models.Category3D, models.CategoryCartoon:
			require.Equal(t, models.ModelImage, p.ModelSuggestion)
		default:
			require.Contains(t, modelPool, p.ModelSuggestion)
		}
	}
}

func TestGenerator_ContentTemplate(t *testing.T) {
	p := NewGenerator(testAnchor).Generate(42)
	lines := strings.Split(p.Content, "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "You are an expert assistant specialized in "))
	assert.Equal(t, "Now produce the best possible result.", lines[5])
}

func TestCuratedPrompts(t *testing.T) {
	prompts, err := CuratedPrompts(testAnchor)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(prompts), 3)

	ids := make(map[string]bool)
	categories := make(map[models.Category]bool)
	for i, p := range prompts {
		assert.False(t, ids[p.ID], "duplicate id")
		ids[p.ID] = true
		categories[p.Category] = true
		assert.NotEmpty(t, p.Tags)
		if i > 0 {
			assert.Less(t, p.CreatedAt, prompts[i-1].CreatedAt)
		}
	}
	assert.Equal(t, testAnchor, prompts[0].CreatedAt)
	assert.GreaterOrEqual(t, len(categories), 2)
	assert.Contains(t, prompts[1].Content, "\n\n<email>")
}

func TestParseCurated_UnknownCategory(t *testing.T) {
	_, err := parseCurated([]byte("prompts:\n  - title: x\n    category: Poetry\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestParseCurated_InvalidYAML(t *testing.T) {
	_, err := parseCurated([]byte("prompts: [unclosed"))
	require.Error(t, err)
}
