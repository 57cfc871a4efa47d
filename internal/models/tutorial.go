// Package models defines the domain types for Sowilo.
package models

// Difficulty levels. The empty string means "unspecified" and is a valid
// stored value.
const (
	DifficultyNone         = ""
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Difficulties lists every accepted difficulty value in display order.
var Difficulties = []string{
	DifficultyNone,
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// ValidDifficulty reports whether d is an accepted difficulty value.
func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// Tutorial is one tutorial's metadata entry. The Markdown body lives in a
// separate content file referenced by Path; Slug and Path are assigned at
// creation and never change afterwards.
type Tutorial struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Category   string   `json:"category"`
	Author     string   `json:"author"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
	Path       string   `json:"path"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// Document is the persisted metadata document: the ordered list of all
// tutorial records under a single fixed key. Records are only ever appended
// or mutated in place; there is no delete operation.
type Document struct {
	Tutorials []Tutorial `json:"tutorials"`
}

// FindSlug returns a pointer to the record with the given slug, or nil.
// The pointer aliases the document's backing array so callers can mutate
// the record in place before saving.
func (d *Document) FindSlug(slug string) *Tutorial {
	for i := range d.Tutorials {
		if d.Tutorials[i].Slug == slug {
			return &d.Tutorials[i]
		}
	}
	return nil
}

// Slugs returns the set of all slugs currently in the document.
func (d *Document) Slugs() map[string]struct{} {
	out := make(map[string]struct{}, len(d.Tutorials))
	for i := range d.Tutorials {
		out[d.Tutorials[i].Slug] = struct{}{}
	}
	return out
}
