// Package apperr defines sentinel errors shared across service boundaries.
package apperr

import "errors"

var (
	// ErrNotFound means no tutorial record matches the requested slug.
	ErrNotFound = errors.New("not found")
	// ErrUnreadableContent means a record exists but its content file
	// could not be read (broken path link, permissions).
	ErrUnreadableContent = errors.New("unreadable content")
)
