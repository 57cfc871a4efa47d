// Package storage defines the content-directory abstraction for tutorial
// Markdown files.
package storage

import "time"

// FileInfo is lightweight metadata for one content file.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Provider is the interface for content file operations. Paths are plain
// filenames relative to the content directory; the directory is flat.
type Provider interface {
	// Read returns the raw bytes of the file with the given name.
	Read(name string) ([]byte, error)
	// Write writes content to the named file, creating or replacing it.
	Write(name string, content []byte) error
	// Exists reports whether the named file is present.
	Exists(name string) bool
	// List returns metadata for every .md file in the content directory.
	List() ([]FileInfo, error)
}
