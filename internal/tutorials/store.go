// Package tutorials implements the metadata store: the single source of
// truth for tutorial records and the mediator of all reads and writes
// against the JSON metadata document and the Markdown content directory.
//
// Every operation performs its own independent load-mutate-save cycle with
// no locking and no cross-call caching. Two overlapping writers race: the
// last Save wins and silently discards the other's metadata changes. That
// lost-update anomaly is an accepted property of this single-user tool.
package tutorials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/sowilo/internal/apperr"
	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/slug"
	"github.com/starford/sowilo/internal/storage"
)

// Store owns the metadata document and coordinates it with the content
// provider. It is the only writer of the metadata file.
type Store struct {
	metadataPath string
	content      storage.Provider

	// now is swappable in tests for deterministic timestamps.
	now func() string
}

// NewStore creates a metadata store persisting records at metadataPath and
// content files through the given provider.
func NewStore(metadataPath string, content storage.Provider) *Store {
	return &Store{
		metadataPath: metadataPath,
		content:      content,
		now:          nowUTC,
	}
}

// nowUTC returns the current time as ISO-8601 UTC with microsecond
// precision and a trailing "Z". The fixed fractional width keeps stored
// timestamps lexicographically ordered.
func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}

// Load reads the metadata document from disk. Any failure — missing file,
// unreadable file, malformed JSON — yields an empty document instead of an
// error so callers never crash on a corrupt store.
func (s *Store) Load() models.Document {
	data, err := os.ReadFile(s.metadataPath)
	if err != nil {
		return models.Document{}
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}
	}
	return doc
}

// Save serializes the document as indented JSON and overwrites the metadata
// file in full, creating the data directory first. There is no atomic-write
// guarantee for the metadata file; a crash mid-write can corrupt it, an
// accepted risk at this usage frequency.
func (s *Store) Save(doc models.Document) error {
	if err := os.MkdirAll(filepath.Dir(s.metadataPath), 0o755); err != nil {
		return fmt.Errorf("tutorials: create data dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("tutorials: encode document: %w", err)
	}
	if err := os.WriteFile(s.metadataPath, data, 0o644); err != nil {
		return fmt.Errorf("tutorials: write document: %w", err)
	}
	return nil
}

// AddInput carries the caller-supplied fields for a new tutorial. Empty
// title/content validation happens at the boundary, not here.
type AddInput struct {
	Title      string
	Category   string
	Content    string
	Author     string
	Difficulty string
	Tags       []string
}

// Add creates a new tutorial: it derives the slug from the title, resolves
// collisions against existing records before any file is written (so the
// stored path always names the file actually on disk), writes the content
// file, and appends the record with created_at == updated_at == now.
//
// A content write failure aborts the whole operation with no metadata entry.
// A metadata save failure after a successful content write leaves the
// orphaned file behind; nothing is rolled back.
func (s *Store) Add(in AddInput) (models.Tutorial, error) {
	doc := s.Load()

	unique := uniqueSlug(slug.Make(in.Title), doc.Slugs())
	filename := unique + ".md"

	if err := s.content.Write(filename, []byte(in.Content)); err != nil {
		return models.Tutorial{}, fmt.Errorf("tutorials: write content file: %w", err)
	}

	now := s.now()
	rec := models.Tutorial{
		Title:      strings.TrimSpace(in.Title),
		Slug:       unique,
		Category:   in.Category,
		Author:     strings.TrimSpace(in.Author),
		Difficulty: in.Difficulty,
		Tags:       nonNil(in.Tags),
		Path:       filename,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	doc.Tutorials = append(doc.Tutorials, rec)

	if err := s.Save(doc); err != nil {
		return models.Tutorial{}, err
	}
	return rec, nil
}

// uniqueSlug appends -2, -3, ... to base until it no longer collides.
func uniqueSlug(base string, taken map[string]struct{}) string {
	candidate := base
	for i := 2; ; i++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// UpdateInput carries the optional fields for an update. Nil pointers mean
// "leave unchanged"; a supplied field overwrites the stored value in full,
// including Tags (no merge).
type UpdateInput struct {
	Content    *string
	Title      *string
	Category   *string
	Author     *string
	Difficulty *string
	Tags       *[]string
}

// Update mutates the record matching slug in place. If new content is
// supplied (empty string allowed) the existing content file is rewritten
// first; a write failure aborts with metadata untouched. Slug and path
// never change. updated_at is refreshed on success.
func (s *Store) Update(slugID string, in UpdateInput) (models.Tutorial, error) {
	doc := s.Load()
	rec := doc.FindSlug(slugID)
	if rec == nil {
		return models.Tutorial{}, apperr.ErrNotFound
	}

	if in.Content != nil {
		if err := s.content.Write(rec.Path, []byte(*in.Content)); err != nil {
			return models.Tutorial{}, fmt.Errorf("tutorials: update content file: %w", err)
		}
	}

	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.Category != nil {
		rec.Category = *in.Category
	}
	if in.Author != nil {
		rec.Author = *in.Author
	}
	if in.Difficulty != nil {
		rec.Difficulty = *in.Difficulty
	}
	if in.Tags != nil {
		rec.Tags = nonNil(*in.Tags)
	}
	rec.UpdatedAt = s.now()

	if err := s.Save(doc); err != nil {
		return models.Tutorial{}, err
	}
	return *rec, nil
}

// Get returns the record matching slug or apperr.ErrNotFound.
func (s *Store) Get(slugID string) (models.Tutorial, error) {
	doc := s.Load()
	rec := doc.FindSlug(slugID)
	if rec == nil {
		return models.Tutorial{}, apperr.ErrNotFound
	}
	return *rec, nil
}

// GetContent returns the Markdown body for the record matching slug.
// Unknown slugs yield apperr.ErrNotFound; records whose content file cannot
// be read yield an error wrapping apperr.ErrUnreadableContent. Rendering
// either condition as placeholder Markdown is the caller's choice.
func (s *Store) GetContent(slugID string) (string, error) {
	doc := s.Load()
	rec := doc.FindSlug(slugID)
	if rec == nil {
		return "", apperr.ErrNotFound
	}
	data, err := s.content.Read(rec.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", apperr.ErrUnreadableContent, rec.Path, err)
	}
	return string(data), nil
}

// All returns every record in document order.
func (s *Store) All() []models.Tutorial {
	return nonNil(s.Load().Tutorials)
}

// ListByCategory returns the records whose category exactly equals the
// argument, in document order. Unknown categories yield an empty slice.
func (s *Store) ListByCategory(category string) []models.Tutorial {
	doc := s.Load()
	out := []models.Tutorial{}
	for _, t := range doc.Tutorials {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Search returns the records where the lowercased query is a substring of
// title, category, or tags, or of the Markdown body. An empty or
// whitespace-only query yields no results. Content files that cannot be
// read are skipped silently for the content leg of the match. Results keep
// document order; there is no ranking.
func (s *Store) Search(query string) []models.Tutorial {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Tutorial{}
	if q == "" {
		return out
	}
	doc := s.Load()
	for _, t := range doc.Tutorials {
		hay := strings.ToLower(t.Title + " " + t.Category + " " + strings.Join(t.Tags, " "))
		if strings.Contains(hay, q) {
			out = append(out, t)
			continue
		}
		data, err := s.content.Read(t.Path)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(data)), q) {
			out = append(out, t)
		}
	}
	return out
}

// Stats summarizes the store for the portal home page.
type Stats struct {
	Tutorials    int `json:"tutorials"`
	ContentFiles int `json:"content_files"`
}

// Stats counts records and content files. A content listing failure is
// reported as zero files rather than an error.
func (s *Store) Stats() Stats {
	doc := s.Load()
	files, err := s.content.List()
	if err != nil {
		files = nil
	}
	return Stats{
		Tutorials:    len(doc.Tutorials),
		ContentFiles: len(files),
	}
}

// MetadataPath returns the path of the persisted metadata document.
func (s *Store) MetadataPath() string {
	return s.metadataPath
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// WithNow overrides the timestamp source. Test hook.
func (s *Store) WithNow(now func() string) *Store {
	s.now = now
	return s
}
