package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/sowilo/internal/apperr"
	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/tutorials"
)

// Legacy placeholder documents rendered by the content endpoint. The store
// reports not-found and read errors through its error channel; turning them
// back into renderable Markdown is this boundary's choice, kept verbatim
// from the original portal.
const (
	placeholderNotFound = "# Not found\nThe requested tutorial does not exist."
	placeholderError    = "# Error\nCould not read tutorial content."
)

const maxBodyBytes = 10 << 20 // 10 MB

// Handler holds API route handlers.
type Handler struct {
	store      *tutorials.Store
	categories []string
}

// NewHandler creates a new Handler bound to the store and the configured
// category enumeration.
func NewHandler(store *tutorials.Store, categories []string) *Handler {
	return &Handler{store: store, categories: categories}
}

func (h *Handler) hasCategory(name string) bool {
	for _, c := range h.categories {
		if c == name {
			return true
		}
	}
	return false
}

// ListTutorials handles GET /tutorials. The optional category query
// parameter filters by exact match.
func (h *Handler) ListTutorials(w http.ResponseWriter, r *http.Request) {
	var items []models.Tutorial
	if cat := r.URL.Query().Get("category"); cat != "" {
		items = h.store.ListByCategory(cat)
	} else {
		items = h.store.All()
	}
	writeJSON(w, http.StatusOK, TutorialListResponse{Tutorials: items, Total: len(items)})
}

// GetTutorial handles GET /tutorials/{slug}.
func (h *Handler) GetTutorial(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	rec, err := h.store.Get(slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("get tutorial failed", slog.String("slug", slug), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetContent handles GET /tutorials/{slug}/content. It always renders
// Markdown with status 200: unknown slugs and unreadable files produce the
// legacy placeholder documents instead of error responses, so the portal UI
// can display the body verbatim.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	body, err := h.store.GetContent(slug)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		body = placeholderNotFound
	case errors.Is(err, apperr.ErrUnreadableContent):
		slog.Warn("tutorial content unreadable", slog.String("slug", slug), slog.String("error", err.Error()))
		body = placeholderError
	case err != nil:
		slog.Error("get content failed", slog.String("slug", slug), slog.String("error", err.Error()))
		body = placeholderError
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// CreateTutorial handles POST /tutorials.
func (h *Handler) CreateTutorial(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateTutorialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if !h.hasCategory(req.Category) {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown category: "+req.Category))
		return
	}

	rec, err := h.store.Add(tutorials.AddInput{
		Title:      req.Title,
		Category:   req.Category,
		Content:    req.Content,
		Author:     req.Author,
		Difficulty: req.Difficulty,
		Tags:       req.Tags,
	})
	if err != nil {
		slog.Error("create tutorial failed", slog.String("title", req.Title), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save tutorial"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateTutorial handles PATCH /tutorials/{slug}. Any subset of the mutable
// fields may be supplied; slug and path never change.
func (h *Handler) UpdateTutorial(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	slug := chi.URLParam(r, "slug")

	var req UpdateTutorialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if req.Category != nil && !h.hasCategory(*req.Category) {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown category: "+*req.Category))
		return
	}

	rec, err := h.store.Update(slug, req.ToInput())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("update tutorial failed", slog.String("slug", slug), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save tutorial"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Search handles GET /search. An empty query returns an empty result list.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := h.store.Search(q)
	writeJSON(w, http.StatusOK, SearchResponse{Results: results, Total: len(results)})
}

// Categories handles GET /categories.
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: h.categories})
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	st := h.store.Stats()
	writeJSON(w, http.StatusOK, StatsResponse{
		Tutorials:    st.Tutorials,
		Categories:   len(h.categories),
		ContentFiles: st.ContentFiles,
	})
}
