// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the tutorial library for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/tutorials"
)

// Server wraps the MCP server with Sowilo tools.
type Server struct {
	mcp        *server.MCPServer
	store      *tutorials.Store
	categories []string
}

// New creates a new MCP server with all Sowilo tools registered.
func New(store *tutorials.Store, categories []string) *Server {
	s := &Server{store: store, categories: categories}

	s.mcp = server.NewMCPServer(
		"Sowilo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_tutorials",
		mcp.WithDescription("Substring search across tutorial titles, categories, tags, and Markdown content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchTutorials)

	s.mcp.AddTool(mcp.NewTool("read_tutorial",
		mcp.WithDescription("Read the full Markdown body of a tutorial."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Tutorial slug (e.g. vpn-setup)")),
	), s.readTutorial)

	s.mcp.AddTool(mcp.NewTool("add_tutorial",
		mcp.WithDescription("Add a new tutorial. Content must be Markdown following the "+
			"authoring contract; read it first via the get_tutorial_contract tool or the "+
			"sowilo://tutorial-format resource. The slug is derived from the title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Tutorial title")),
		mcp.WithString("category", mcp.Required(), mcp.Description("One of the configured categories (see list_categories)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown body")),
		mcp.WithString("author", mcp.Description("Optional author name")),
		mcp.WithString("difficulty", mcp.Description("Optional: Beginner, Intermediate, or Advanced")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tags")),
	), s.addTutorial)

	s.mcp.AddTool(mcp.NewTool("update_tutorial",
		mcp.WithDescription("Update an existing tutorial's content and/or metadata. "+
			"Supplied fields replace stored values in full; the slug never changes."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Slug of the tutorial to update")),
		mcp.WithString("content", mcp.Description("New Markdown body (replaces the old one)")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("category", mcp.Description("New category")),
		mcp.WithString("author", mcp.Description("New author")),
		mcp.WithString("difficulty", mcp.Description("New difficulty")),
		mcp.WithString("tags", mcp.Description("New comma-separated tag list (replaces the old one)")),
	), s.updateTutorial)

	s.mcp.AddTool(mcp.NewTool("list_by_category",
		mcp.WithDescription("List tutorial records in one category, in document order."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Exact category name")),
	), s.listByCategory)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the configured category names in display order."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("portal_stats",
		mcp.WithDescription("Counts of tutorials, categories, and content files."),
	), s.portalStats)

	s.mcp.AddTool(mcp.NewTool("get_tutorial_contract",
		mcp.WithDescription("Returns the tutorial authoring contract. Call this before "+
			"adding or updating tutorials."),
	), s.getTutorialContract)

	// Resource: tutorial authoring contract.
	s.mcp.AddResource(
		mcp.NewResource("sowilo://tutorial-format", "Tutorial Format Contract",
			mcp.WithResourceDescription("Authoring rules for tutorial Markdown and metadata."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTutorialFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) hasCategory(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Server) searchTutorials(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := s.store.Search(query)
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readTutorial(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := s.store.GetContent(slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read tutorial %s: %v", slug, err)), nil
	}
	return mcp.NewToolResultText(body), nil
}

func (s *Server) addTutorial(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(title) == "" || content == "" {
		return mcp.NewToolResultError("title and content must be non-empty"), nil
	}
	if !s.hasCategory(category) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s (see list_categories)", category)), nil
	}

	in := tutorials.AddInput{Title: title, Category: category, Content: content}
	if v, err := req.RequireString("author"); err == nil {
		in.Author = v
	}
	if v, err := req.RequireString("difficulty"); err == nil {
		if !models.ValidDifficulty(v) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid difficulty: %s (use Beginner, Intermediate, or Advanced)", v)), nil
		}
		in.Difficulty = v
	}
	if v, err := req.RequireString("tags"); err == nil {
		in.Tags = splitTags(v)
	}

	rec, err := s.store.Add(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s", rec.Slug)), nil
}

func (s *Server) updateTutorial(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var in tutorials.UpdateInput
	if v, err := req.RequireString("content"); err == nil {
		in.Content = &v
	}
	if v, err := req.RequireString("title"); err == nil {
		if strings.TrimSpace(v) == "" {
			return mcp.NewToolResultError("title cannot be blank"), nil
		}
		in.Title = &v
	}
	if v, err := req.RequireString("category"); err == nil {
		if !s.hasCategory(v) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", v)), nil
		}
		in.Category = &v
	}
	if v, err := req.RequireString("author"); err == nil {
		in.Author = &v
	}
	if v, err := req.RequireString("difficulty"); err == nil {
		if !models.ValidDifficulty(v) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid difficulty: %s (use Beginner, Intermediate, or Advanced)", v)), nil
		}
		in.Difficulty = &v
	}
	if v, err := req.RequireString("tags"); err == nil {
		tags := splitTags(v)
		in.Tags = &tags
	}

	rec, err := s.store.Update(slug, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", rec.Slug)), nil
}

func (s *Server) listByCategory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	records := s.store.ListByCategory(category)
	out, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(s.categories, "\n")), nil
}

func (s *Server) portalStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.store.Stats()
	out, _ := json.MarshalIndent(map[string]int{
		"tutorials":     st.Tutorials,
		"categories":    len(s.categories),
		"content_files": st.ContentFiles,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getTutorialContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TutorialFormatContract), nil
}

func (s *Server) readTutorialFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "sowilo://tutorial-format",
			MIMEType: "text/markdown",
			Text:     TutorialFormatContract,
		},
	}, nil
}

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
