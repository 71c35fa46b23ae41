package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness constraint was violated. Under
	// concurrent writes this is the authoritative duplicate signal; callers
	// must handle it even after a passing pre-check.
	ErrConflict = errors.New("conflict")
)
