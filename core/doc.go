// Package core implements the Pregel-style superstep execution engine: the
// Vertex state machine, the two-stage pending/incoming message buffers, and
// the five-phase Bulk Synchronous Parallel (BSP) round driven by Graph.Run /
// Graph.ExecuteSuperstep.
//
// A Graph owns a set of Vertex actors keyed by opaque id. Each Vertex
// serializes access to its own state behind a mutex — the same
// one-lock-per-concern discipline the rest of this module's Graph type
// uses — so the superstep engine may safely fan Phase 1 (compute) out across
// goroutines, one per active vertex, and join before moving to Phase 2.
//
// Configuration is expressed as functional options (GraphOption,
// VertexOption, EdgeOption, RunOption) resolved once at construction time;
// errors are package-level sentinels wrapped with fmt.Errorf("%w", ...) so
// callers can branch with errors.Is/errors.As instead of string matching.
package core
