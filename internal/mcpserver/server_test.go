package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/sowilo/internal/testutil"
	"github.com/starford/sowilo/internal/tutorials"
)

var testCategories = []string{"Networking", "Accounts"}

func testServer(t *testing.T) (*Server, *tutorials.Store) {
	t.Helper()
	store := testutil.TestStore(t)
	return New(store, testCategories), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_tutorials":
		result, err = srv.searchTutorials(ctx, req)
	case "read_tutorial":
		result, err = srv.readTutorial(ctx, req)
	case "add_tutorial":
		result, err = srv.addTutorial(ctx, req)
	case "update_tutorial":
		result, err = srv.updateTutorial(ctx, req)
	case "list_by_category":
		result, err = srv.listByCategory(ctx, req)
	case "list_categories":
		result, err = srv.listCategories(ctx, req)
	case "portal_stats":
		result, err = srv.portalStats(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAddAndReadTutorial(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_tutorial", map[string]interface{}{
		"title":    "VPN Setup",
		"category": "Networking",
		"content":  "# VPN\nSteps...",
		"tags":     "vpn, remote-access",
	})
	if text := resultText(r); text != "added: vpn-setup" {
		t.Errorf("add result = %q", text)
	}

	r = callTool(t, srv, "read_tutorial", map[string]interface{}{"slug": "vpn-setup"})
	if text := resultText(r); text != "# VPN\nSteps..." {
		t.Errorf("read result = %q", text)
	}
}

func TestAddRejectsUnknownCategory(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_tutorial", map[string]interface{}{
		"title":    "Bad",
		"category": "Cooking",
		"content":  "x",
	})
	if !r.IsError {
		t.Error("expected error result for unknown category")
	}
}

func TestAddRejectsInvalidDifficulty(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "add_tutorial", map[string]interface{}{
		"title":      "Bad",
		"category":   "Networking",
		"content":    "x",
		"difficulty": "Wizard",
	})
	if !r.IsError {
		t.Error("expected error result for invalid difficulty")
	}
	if len(store.All()) != 0 {
		t.Error("record persisted despite invalid difficulty")
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	srv, store := testServer(t)

	r := callTool(t, srv, "add_tutorial", map[string]interface{}{
		"title":    "   ",
		"category": "Networking",
		"content":  "x",
	})
	if !r.IsError {
		t.Error("expected error result for blank title")
	}
	if len(store.All()) != 0 {
		t.Error("record persisted despite blank title")
	}
}

func TestUpdateTutorial(t *testing.T) {
	srv, store := testServer(t)
	rec, err := store.Add(tutorials.AddInput{Title: "Old", Category: "Accounts", Content: "v1"})
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "update_tutorial", map[string]interface{}{
		"slug":    rec.Slug,
		"title":   "New Title",
		"content": "v2",
	})
	if text := resultText(r); text != "updated: "+rec.Slug {
		t.Errorf("update result = %q", text)
	}
	got, _ := store.Get(rec.Slug)
	if got.Title != "New Title" {
		t.Errorf("title = %q", got.Title)
	}
	if c, _ := store.GetContent(rec.Slug); c != "v2" {
		t.Errorf("content = %q", c)
	}
}

func TestUpdateRejectsInvalidDifficulty(t *testing.T) {
	srv, store := testServer(t)
	rec, err := store.Add(tutorials.AddInput{Title: "Old", Category: "Accounts", Content: "v1", Difficulty: "Beginner"})
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "update_tutorial", map[string]interface{}{
		"slug":       rec.Slug,
		"difficulty": "Wizard",
	})
	if !r.IsError {
		t.Error("expected error result for invalid difficulty")
	}
	got, _ := store.Get(rec.Slug)
	if got.Difficulty != "Beginner" {
		t.Errorf("difficulty = %q, want Beginner", got.Difficulty)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	srv, store := testServer(t)
	rec, err := store.Add(tutorials.AddInput{Title: "Keep Me", Category: "Accounts", Content: "v1"})
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "update_tutorial", map[string]interface{}{
		"slug":  rec.Slug,
		"title": "  ",
	})
	if !r.IsError {
		t.Error("expected error result for blank title")
	}
	got, _ := store.Get(rec.Slug)
	if got.Title != "Keep Me" {
		t.Errorf("title = %q, want Keep Me", got.Title)
	}
}

func TestSearchTool(t *testing.T) {
	srv, store := testServer(t)
	_, _ = store.Add(tutorials.AddInput{Title: "VPN Setup", Category: "Networking", Content: "steps"})

	r := callTool(t, srv, "search_tutorials", map[string]interface{}{"query": "vpn"})
	if text := resultText(r); !strings.Contains(text, "vpn-setup") {
		t.Errorf("search result = %q", text)
	}
}

func TestListCategories(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_categories", nil)
	if text := resultText(r); text != "Networking\nAccounts" {
		t.Errorf("categories = %q", text)
	}
}

func TestPortalStats(t *testing.T) {
	srv, store := testServer(t)
	_, _ = store.Add(tutorials.AddInput{Title: "A", Category: "Accounts", Content: "a"})

	r := callTool(t, srv, "portal_stats", nil)
	text := resultText(r)
	if !strings.Contains(text, `"tutorials": 1`) || !strings.Contains(text, `"categories": 2`) {
		t.Errorf("stats = %q", text)
	}
}
