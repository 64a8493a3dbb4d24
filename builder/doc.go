// SPDX-License-Identifier: MIT
// Package: pregel-ex/builder
//
// Package builder is a fluent graph-construction helper. It accumulates a
// pending description — a name, a set of named vertices, and a set of edges
// between those names — and at Finish translates the description into a
// sequence of registry.Registry CRUD calls, propagating the first error and
// tearing down the partially constructed graph rather than leaving it
// half-built.
package builder
