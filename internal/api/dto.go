package api

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/tutorials"
)

// CreateTutorialRequest is the request body for adding a tutorial.
type CreateTutorialRequest struct {
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// Validate enforces the boundary rules: title, category, and content are
// required, and the title must survive trimming; difficulty must be one of
// the accepted values. Category membership in the configured list is checked
// separately by the handler.
func (r CreateTutorialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.By(notBlank)),
		validation.Field(&r.Category, validation.Required.Error("category is required")),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Difficulty, validation.By(validDifficulty)),
	)
}

// UpdateTutorialRequest is the request body for editing a tutorial. Nil
// fields are left unchanged; supplied fields overwrite the stored values in
// full. Content may be the empty string.
type UpdateTutorialRequest struct {
	Content    *string   `json:"content"`
	Title      *string   `json:"title"`
	Category   *string   `json:"category"`
	Author     *string   `json:"author"`
	Difficulty *string   `json:"difficulty"`
	Tags       *[]string `json:"tags"`
}

// Validate rejects updates that would blank the title or set an unknown
// difficulty.
func (r UpdateTutorialRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return validation.NewError("validation_title", "title cannot be blank")
	}
	if r.Difficulty != nil {
		if err := validDifficulty(*r.Difficulty); err != nil {
			return err
		}
	}
	return nil
}

// ToInput converts the request into a store update.
func (r UpdateTutorialRequest) ToInput() tutorials.UpdateInput {
	return tutorials.UpdateInput{
		Content:    r.Content,
		Title:      r.Title,
		Category:   r.Category,
		Author:     r.Author,
		Difficulty: r.Difficulty,
		Tags:       r.Tags,
	}
}

// notBlank rejects values that are whitespace-only. The store trims titles
// before slugging, so a blank one would persist as an empty title with the
// fallback slug.
func notBlank(value any) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

func validDifficulty(value any) error {
	d, _ := value.(string)
	if !models.ValidDifficulty(d) {
		return validation.NewError("validation_difficulty", "difficulty must be one of \"\", Beginner, Intermediate, Advanced")
	}
	return nil
}

// TutorialListResponse wraps record listings.
type TutorialListResponse struct {
	Tutorials []models.Tutorial `json:"tutorials"`
	Total     int               `json:"total"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []models.Tutorial `json:"results"`
	Total   int               `json:"total"`
}

// CategoriesResponse wraps the configured category enumeration.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// StatsResponse is the portal home page summary.
type StatsResponse struct {
	Tutorials    int `json:"tutorials"`
	Categories   int `json:"categories"`
	ContentFiles int `json:"content_files"`
}
