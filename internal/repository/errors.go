package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrVersionConflict is returned when a habit changed between read and write.
	ErrVersionConflict = errors.New("document was modified concurrently")
)
