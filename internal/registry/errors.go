package registry

import "errors"

// Errors returned by registry operations. A registry call that fails with
// one of these leaves the registry exactly as it was.
var (
	// ErrNotFound means a referenced id is not in the registry.
	ErrNotFound = errors.New("source not found")
	// ErrPathConflict means the requested path belongs to another source.
	ErrPathConflict = errors.New("path already registered")
	// ErrInvalidArgument means a move named zero or two anchors.
	ErrInvalidArgument = errors.New("invalid argument")
)
