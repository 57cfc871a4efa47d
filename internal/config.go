package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Library    LibraryConfig     `yaml:"library"`
	Categories []string          `yaml:"categories"`
	Auth       AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Library.Validate(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// validateCategories enforces a non-empty list of non-empty, unique names.
// The list is configuration, not data: categories are never created or
// removed at runtime.
func (c *Config) validateCategories() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("categories: at least one category is required")
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat == "" {
			return fmt.Errorf("categories: empty category name")
		}
		if _, dup := seen[cat]; dup {
			return fmt.Errorf("categories: duplicate category %q", cat)
		}
		seen[cat] = struct{}{}
	}
	return nil
}

// HasCategory reports whether name is one of the configured categories.
func (c *Config) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// LibraryConfig holds the on-disk layout of the tutorial library: the data
// directory with the JSON metadata document and the flat directory of
// Markdown content files.
type LibraryConfig struct {
	DataDir      string `yaml:"data_dir"`
	TutorialsDir string `yaml:"tutorials_dir"`
	MetadataFile string `yaml:"metadata_file"`
}

// MetadataPath returns the full path of the metadata document.
func (c *LibraryConfig) MetadataPath() string {
	return filepath.Join(c.DataDir, c.MetadataFile)
}

// Validate validates the library configuration.
func (c *LibraryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.TutorialsDir, validation.Required),
		validation.Field(&c.MetadataFile, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Library: LibraryConfig{
			DataDir:      "./data",
			TutorialsDir: "./tutorials",
			MetadataFile: "tutorials.json",
		},
		Categories: []string{
			"Networking",
			"Accounts",
			"Hardware",
			"Software",
			"Security",
			"Other",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
