// Package registry is the process-wide supervisor of Graph lifetimes. It
// owns the graph id → *core.Graph directory, mints graph ids the same way
// core mints vertex ids, and re-exposes the core.Graph CRUD and engine
// operations behind a (graph_id, ...) signature so an embedder can address
// any graph by id. CreateGraph and ListGraphs still return the *core.Graph
// handles themselves.
package registry
