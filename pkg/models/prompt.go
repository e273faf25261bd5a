// Package models contains domain models for promptverse.
package models

// Category is one member of the fixed prompt category set.
type Category string

// Prompt categories.
const (
	CategoryCoding    Category = "Coding"
	CategoryWebDev    Category = "Web Development"
	CategoryWriting   Category = "Creative Writing"
	CategoryImage     Category = "Image Generation"
	Category3D        Category = "3D Generation"
	CategoryCartoon   Category = "Cartoon"
	CategoryVideo     Category = "Video Generation"
	CategoryBusiness  Category = "Business"
	CategoryLearning  Category = "Learning"
	CategoryFun       Category = "Fun"
	CategoryAll                = "All" // list filter sentinel and the total key in CategoryCounts
	DefaultCategory            = CategoryCoding
	DefaultTag                 = "Community"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryCoding,
	CategoryWebDev,
	CategoryWriting,
	CategoryImage,
	Category3D,
	CategoryCartoon,
	CategoryVideo,
	CategoryBusiness,
	CategoryLearning,
	CategoryFun,
}

// Valid reports whether c is a member of the category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Downstream model names suggested for prompts.
const (
	ModelTextFlash = "gemini-3-flash-preview"
	ModelTextPro   = "gemini-3-pro-preview"
	ModelImage     = "gemini-2.5-flash-image"
	ModelVideo     = "veo-3.1-fast-generate-preview"
)

// MediaModelFor returns the model a category is bound to, or "" when the
// category renders text and any text model will do.
func MediaModelFor(c Category) string {
	switch c {
	case CategoryVideo:
		return ModelVideo
	case CategoryImage, Category3D, CategoryCartoon:
		return ModelImage
	}
	return ""
}

// Prompt is a shareable prompt as served to a specific client.
// LikedByMe and MyRating are relative to the requesting client.
type Prompt struct {
	ModelSuggestion string   `json:"modelSuggestion,omitempty"`
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Content         string   `json:"content"`
	Category        Category `json:"category"`
	Author          string   `json:"author"`
	Tags            []string `json:"tags"`
	Likes           int64    `json:"likes"`
	Copies          int64    `json:"copies"`
	CreatedAt       int64    `json:"createdAt"`
	MyRating        int      `json:"myRating"`
	LikedByMe       bool     `json:"likedByMe"`
}

// PromptPage is one page of a filtered listing.
type PromptPage struct {
	Prompts []*Prompt `json:"prompts"`
	Total   int64     `json:"total"`
}

// ListFilter selects prompts for a paginated listing.
type ListFilter struct {
	Category string // "All" or one Category
	Query    string
	Page     int
	PageSize int
}

// CategoryCounts maps category name to prompt count; the "All" key holds the total.
type CategoryCounts map[string]int64

// NewPrompt carries the fields accepted on submission.
type NewPrompt struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Content         string   `json:"content"`
	Category        Category `json:"category"`
	Author          string   `json:"author"`
	ModelSuggestion string   `json:"modelSuggestion,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Likes           *int64   `json:"likes,omitempty"`
	CreatedAt       *int64   `json:"createdAt,omitempty"`
}

// PromptEdit carries the mutable fields of a prompt.
type PromptEdit struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    Category `json:"category"`
}

// LikeState is the result of a like toggle.
type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// AuthorProfile describes a prompt author for display.
type AuthorProfile struct {
	Name        string `json:"name" yaml:"name"`
	Bio         string `json:"bio" yaml:"bio"`
	JoinedDate  string `json:"joinedDate" yaml:"joined_date"`
	AvatarColor string `json:"avatarColor,omitempty" yaml:"avatar_color"`
	AvatarURL   string `json:"avatarUrl,omitempty" yaml:"avatar_url"`
}

// Handoff is what the model invocation client needs to run a prompt.
type Handoff struct {
	PromptID   string   `json:"promptId"`
	Content    string   `json:"content"`
	Category   Category `json:"category"`
	Model      string   `json:"model"`
	TokenCount int      `json:"tokenCount"`
}
