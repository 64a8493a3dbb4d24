// SPDX-License-Identifier: MIT
// Package: pregel-ex/builder
package builder

import "errors"

// Only sentinel variables are exposed; callers MUST use errors.Is to branch.
var (
	// ErrEmptyGraphName indicates New was called with an empty graph name.
	ErrEmptyGraphName = errors.New("builder: graph name is empty")

	// ErrDuplicateVertexName indicates AddVertex was called twice with the
	// same local name. Names are the builder's own namespace, distinct from
	// the engine-minted vertex ids Finish produces.
	ErrDuplicateVertexName = errors.New("builder: duplicate vertex name")

	// ErrUnknownVertexName indicates AddEdge referenced a local name that was
	// never registered via AddVertex.
	ErrUnknownVertexName = errors.New("builder: unknown vertex name")
)
