// Package seed bootstraps and grows the prompt store with synthetic data.
package seed

import (
	"fmt"
	"math"
	"strings"

	"github.com/thebtf/promptverse/pkg/models"
)

// CreatedAtSpread is the window behind the anchor that generated timestamps fall into.
const CreatedAtSpread int64 = 120 * 24 * 60 * 60 * 1000

// MaxGeneratedLikes bounds the synthetic like counter (exclusive).
const MaxGeneratedLikes = 5000

// Weighted pools; a category listed twice is drawn twice as often.
var (
	categoryPool = []models.Category{
		models.CategoryImage, models.CategoryImage, models.CategoryImage,
		models.CategoryFun, models.CategoryFun,
		models.CategoryLearning, models.CategoryLearning,
		models.CategoryVideo, models.CategoryVideo,
		models.CategoryWebDev, models.CategoryWebDev,
		models.Category3D, models.Category3D,
		models.CategoryCartoon, models.CategoryCartoon,
		models.CategoryCoding,
		models.CategoryWriting,
		models.CategoryBusiness,
	}

	authorPool = []string{
		"PromptVerse", "Community", "AlienShanu", "DirectorAI", "EarthLens",
		"CodeWizard", "StorySmith", "PixelForge", "BizPro", "TutorAI",
	}

	adjectivePool = []string{
		"Actionable", "Practical", "Advanced", "Beginner", "Concise", "Detailed",
		"Creative", "Cinematic", "Professional", "Playful", "Structured", "High-Impact",
	}

	topicPool = []string{
		"React", "TypeScript", "Next.js", "Node.js", "SQL", "Three.js",
		"Blender", "Low Poly", "Character Design", "Cartoon Style", "Storyboard", "Shot List",
		"Video Prompt", "Landing Page", "API Design", "Bug Fix", "Lesson Plan", "Study Guide",
		"Quiz Generator", "Marketing", "Resume", "Email", "Product Spec", "Prompt Engineering",
	}

	modelPool = []string{
		models.ModelTextFlash,
		models.ModelTextPro,
		models.ModelImage,
		models.ModelVideo,
	}
)

// pick maps n onto pool with a linear congruential step.
func pick[T any](pool []T, n int64) T {
	idx := (((n%1_000_000)*9301 + 49297) % 233280) % int64(len(pool))
	if idx < 0 {
		idx += int64(len(pool))
	}
	return pool[idx]
}

// pseudoRand returns the fractional part of sin(n)*10000, in [0, 1).
func pseudoRand(n int64) float64 {
	x := math.Sin(float64(n)) * 10000
	return x - math.Floor(x)
}

// Generator derives synthetic prompts purely from their sequence number.
// Timestamps are offsets behind Anchor, so two generators with the same
// anchor produce identical prompts for identical sequence numbers.
type Generator struct {
	Anchor int64 // epoch milliseconds
}

// NewGenerator creates a generator anchored at the given epoch milliseconds.
func NewGenerator(anchor int64) *Generator {
	return &Generator{Anchor: anchor}
}

// Generate builds the prompt for sequence number n.
func (g *Generator) Generate(n int64) *models.Prompt {
	adjective := pick(adjectivePool, n)
	topic := pick(topicPool, n*7+13)
	category := pick(categoryPool, n*11+3)
	author := pick(authorPool, n*5+19)

	model := models.MediaModelFor(category)
	if model == "" {
		model = pick(modelPool, n*17+23)
	}

	likes := int64(math.Floor(pseudoRand(n*29+31) * MaxGeneratedLikes))
	age := int64(math.Floor(pseudoRand(n*37+41) * float64(CreatedAtSpread)))

	tags := []string{
		models.DefaultTag,
		stripSpaces(topic),
		strings.Fields(string(category))[0],
		stripSpaces(adjective),
	}

	return &models.Prompt{
		ID:              fmt.Sprintf("gen-%d", n),
		Title:           fmt.Sprintf("%s %s Prompt", adjective, topic),
		Description:     fmt.Sprintf("A %s prompt for %s workflows.", strings.ToLower(adjective), strings.ToLower(topic)),
		Content:         promptBody(topic),
		Category:        category,
		Tags:            tags,
		Author:          author,
		Likes:           likes,
		ModelSuggestion: model,
		CreatedAt:       g.Anchor - age,
	}
}

// Batch generates count prompts starting at sequence number start.
func (g *Generator) Batch(start int64, count int) []*models.Prompt {
	out := make([]*models.Prompt, count)
	for i := range out {
		out[i] = g.Generate(start + int64(i))
	}
	return out
}

func promptBody(topic string) string {
	return strings.Join([]string{
		"You are an expert assistant specialized in " + topic + ".",
		"Goal: <goal>",
		"Constraints: <constraints>",
		"Context: <context>",
		"Output format: <format>",
		"Now produce the best possible result.",
	}, "\n")
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
