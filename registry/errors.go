package registry

import "errors"

// Sentinel errors. Callers branch with errors.Is, never by string match.
var (
	// ErrGraphNotFound indicates an operation referenced a graph id the
	// registry has no record of (never created, or already stopped).
	ErrGraphNotFound = errors.New("registry: graph not found")

	// ErrEmptyName indicates CreateGraph was called with an empty name.
	ErrEmptyName = errors.New("registry: graph name is empty")
)
