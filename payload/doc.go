// Package payload defines the dynamic value carried by vertex state and
// message content: a small tagged sum type over numbers, maps, lists, and
// opaque scalars, plus the two table-dispatched operations the engine needs
// on top of it — Aggregate (inbox → one value) and Merge (new partial value
// ⊕ aggregated base).
//
// Values are immutable from the caller's point of view: Aggregate and Merge
// always return a new Value rather than mutating an argument in place.
package payload
