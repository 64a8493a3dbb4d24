// SPDX-License-Identifier: MIT
// Package: pregel-ex/builder
package builder

import (
	"fmt"

	"github.com/Gearhartlove/pregel-ex/core"
	"github.com/Gearhartlove/pregel-ex/registry"
)

// vertexSpec is one AddVertex call, held pending until Finish.
type vertexSpec struct {
	name string
	fn   core.ComputeFunc
	opts []core.VertexOption
}

// edgeSpec is one AddEdge call. from/to are the builder's own local names,
// resolved to minted vertex ids only at Finish time.
type edgeSpec struct {
	from, to string
	opts     []core.EdgeOption
}

// Builder accumulates a pending graph description — name, vertices, edges —
// against a target Registry, and at Finish translates it into a sequence of
// Registry CRUD calls. It is not safe for concurrent use by multiple
// goroutines; a pending description belongs to one caller until finished.
type Builder struct {
	r    *registry.Registry
	cfg  builderConfig
	name string

	vertices []vertexSpec
	vSeen    map[string]struct{}
	edges    []edgeSpec

	err error // first error encountered; short-circuits further accumulation
}

// New starts a pending graph description named name, to be materialized
// against r once Finish is called.
func New(r *registry.Registry, name string, opts ...BuilderOption) *Builder {
	b := &Builder{
		r:     r,
		cfg:   newBuilderConfig(opts...),
		name:  name,
		vSeen: make(map[string]struct{}),
	}
	if name == "" {
		b.err = ErrEmptyGraphName
	}
	return b
}

// AddVertex registers a vertex under local name, to be created at Finish
// time. Chaining after an error is a no-op; Finish surfaces the first error
// any call in the chain produced.
func (b *Builder) AddVertex(name string, fn core.ComputeFunc, opts ...core.VertexOption) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.vSeen[name]; dup {
		b.err = fmt.Errorf("AddVertex(%q): %w", name, ErrDuplicateVertexName)
		return b
	}
	b.vSeen[name] = struct{}{}
	b.vertices = append(b.vertices, vertexSpec{name: name, fn: fn, opts: opts})
	return b
}

// AddEdge registers an edge between two local vertex names, to be created at
// Finish time once both names have resolved to minted vertex ids.
func (b *Builder) AddEdge(from, to string, opts ...core.EdgeOption) *Builder {
	if b.err != nil {
		return b
	}
	b.edges = append(b.edges, edgeSpec{from: from, to: to, opts: opts})
	return b
}

// Finish materializes the pending description against the Registry: creates
// the graph, then every vertex, then every edge, in the order they were
// added. The first error — from accumulation (AddVertex/AddEdge) or from a
// Registry call — aborts construction; any graph already created by this
// Finish call is torn down via Registry.StopGraph before the error returns,
// so a failed Finish never leaves a half-built graph registered.
func (b *Builder) Finish() (string, *core.Graph, error) {
	if b.err != nil {
		return "", nil, fmt.Errorf("Finish: %w", b.err)
	}

	g, err := b.r.CreateGraph(b.name, b.cfg.graphOpts...)
	if err != nil {
		return "", nil, fmt.Errorf("Finish: %w", err)
	}

	nameToID := make(map[string]string, len(b.vertices))
	for _, vs := range b.vertices {
		v, err := b.r.CreateVertex(g.ID(), vs.name, vs.fn, vs.opts...)
		if err != nil {
			_ = b.r.StopGraph(g.ID())
			return "", nil, fmt.Errorf("Finish: AddVertex(%q): %w", vs.name, err)
		}
		nameToID[vs.name] = v.ID()
	}

	for _, es := range b.edges {
		fromID, ok := nameToID[es.from]
		if !ok {
			_ = b.r.StopGraph(g.ID())
			return "", nil, fmt.Errorf("Finish: AddEdge(%q, %q): %w", es.from, es.to, ErrUnknownVertexName)
		}
		toID, ok := nameToID[es.to]
		if !ok {
			_ = b.r.StopGraph(g.ID())
			return "", nil, fmt.Errorf("Finish: AddEdge(%q, %q): %w", es.from, es.to, ErrUnknownVertexName)
		}
		if err := b.r.CreateEdge(g.ID(), fromID, toID, es.opts...); err != nil {
			_ = b.r.StopGraph(g.ID())
			return "", nil, fmt.Errorf("Finish: AddEdge(%q, %q): %w", es.from, es.to, err)
		}
	}

	return g.ID(), g, nil
}
