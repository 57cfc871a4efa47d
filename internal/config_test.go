package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestCategoriesRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Categories = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty category list should fail validation")
	}
}

func TestCategoriesUnique(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Categories = []string{"Networking", "Networking"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("duplicate categories should fail validation")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHasCategory(t *testing.T) {
	cfg := NewDefaultConfig()
	if !cfg.HasCategory("Networking") {
		t.Error("Networking should be a configured category")
	}
	if cfg.HasCategory("networking") {
		t.Error("category match must be exact, no case folding")
	}
}

func TestLibraryConfig_MetadataPath(t *testing.T) {
	cfg := LibraryConfig{DataDir: "/srv/sowilo/data", MetadataFile: "tutorials.json"}
	if got := cfg.MetadataPath(); got != "/srv/sowilo/data/tutorials.json" {
		t.Errorf("MetadataPath = %q", got)
	}
}

func TestLibraryConfig_RequiredFields(t *testing.T) {
	cfg := LibraryConfig{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty library config should fail validation")
	}
}
