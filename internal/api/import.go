package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starford/sowilo/internal/tutorials"
)

const maxImportBytes = 10 << 20 // 10 MB

// ImportTutorial handles POST /tutorials/import: multipart/form-data with a
// "file" field holding a Markdown file plus the usual metadata form fields.
// This is the "upload a .md file" path of the portal; the file body becomes
// the tutorial content, everything else behaves like a regular create.
func (h *Handler) ImportTutorial(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".md") {
		writeJSON(w, http.StatusBadRequest, errorBody("only .md files can be imported"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read uploaded file"))
		return
	}

	req := CreateTutorialRequest{
		Title:      r.FormValue("title"),
		Category:   r.FormValue("category"),
		Content:    string(data),
		Author:     r.FormValue("author"),
		Difficulty: r.FormValue("difficulty"),
		Tags:       splitTags(r.FormValue("tags")),
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
		slog.Error("import tutorial failed", slog.String("filename", header.Filename), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save tutorial"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// splitTags parses a comma-separated tag field, dropping blanks.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := []string{}
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
