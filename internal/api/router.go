package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/sowilo/internal/tutorials"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(store *tutorials.Store, categories []string, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(store, categories)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Tutorials CRUD (no delete, by design).
	r.Get("/tutorials", h.ListTutorials)
	r.Post("/tutorials", h.CreateTutorial)
	r.Post("/tutorials/import", h.ImportTutorial)
	r.Get("/tutorials/{slug}", h.GetTutorial)
	r.Patch("/tutorials/{slug}", h.UpdateTutorial)
	r.Get("/tutorials/{slug}/content", h.GetContent)

	// Search.
	r.Get("/search", h.Search)

	// Portal configuration and stats.
	r.Get("/categories", h.Categories)
	r.Get("/stats", h.Stats)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
