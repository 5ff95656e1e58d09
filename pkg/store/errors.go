package store

import "errors"

// Sentinel errors for repository operations.
var (
	// ErrNotFound indicates an update targeted a record that does not exist.
	// Lookups never return it; a missing record reads as nil.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID indicates a create supplied an id that is already taken.
	ErrDuplicateID = errors.New("duplicate record id")
)
