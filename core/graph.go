package core

import (
	"encoding/hex"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Gearhartlove/pregel-ex/payload"
	"github.com/google/uuid"
)

// vertexIDPrefix namespaces every minted vertex id, so ids are
// self-describing when they show up in logs, tests, or a DeliveryWarning.
const vertexIDPrefix = "vtx."

// mintVertexID generates an opaque vertex id from 16 cryptographically
// random bytes (google/uuid's CSPRNG-backed generator, the same primitive
// used for entity ids elsewhere in this stack), hex-encoded and namespaced.
func mintVertexID() string {
	id := uuid.New()
	return vertexIDPrefix + hex.EncodeToString(id[:])
}

// DeliveryWarning reports a non-fatal problem encountered while routing
// messages: either a recipient that no longer exists, or an edge Condition
// that panicked during broadcast (treated as "do not send").
type DeliveryWarning struct {
	Message Message
	Reason  string
}

// WarnFunc receives DeliveryWarnings as they occur. The default is a no-op;
// the core engine carries no logging surface of its own, so a caller that
// wants these observed must install one via WithWarnHandler.
type WarnFunc func(DeliveryWarning)

// GraphOption configures a Graph at creation time.
type GraphOption func(*Graph)

// WithWarnHandler installs fn to receive delivery warnings raised during
// Phase 3 (deliver) and broadcast. The default handler discards them.
func WithWarnHandler(fn WarnFunc) GraphOption {
	return func(g *Graph) { g.warn = fn }
}

// Graph owns one graph's vertex directory and hosts the superstep engine
// that drives every vertex in it through BSP rounds. muVert guards the
// vertex map and the final-vertex bookkeeping that CRUD mutates; running is
// a separate atomic flag so a CRUD call can reject itself without taking
// muVert merely to check whether the engine is mid-run.
type Graph struct {
	id   string
	name string

	muVert        sync.RWMutex
	vertices      map[string]*Vertex
	finalVertexID string
	hasFinal      bool

	round   uint64
	running atomic.Bool

	warn WarnFunc
}

// NewGraph constructs an empty Graph. id is minted by the caller (see
// registry.Registry.CreateGraph); name is the caller's human label.
func NewGraph(id, name string, opts ...GraphOption) *Graph {
	g := &Graph{
		id:       id,
		name:     name,
		vertices: make(map[string]*Vertex),
		warn:     func(DeliveryWarning) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the graph's identifier.
func (g *Graph) ID() string { return g.id }

// Name returns the graph's human label.
func (g *Graph) Name() string { return g.name }

// IsRunning reports whether the superstep engine currently owns this graph.
func (g *Graph) IsRunning() bool { return g.running.Load() }

func (g *Graph) guardNotRunning() error {
	if g.running.Load() {
		return ErrGraphRunning
	}
	return nil
}

// CreateVertex mints a vertex id, constructs the vertex, and publishes it
// into the graph's directory. Creation is atomic from the caller's point of
// view: either a fully-initialized vertex is registered and returned, or an
// error is returned and nothing changes.
func (g *Graph) CreateVertex(name string, fn ComputeFunc, opts ...VertexOption) (*Vertex, error) {
	if err := g.guardNotRunning(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilComputeFunc
	}

	v := newVertex(g.id, mintVertexID(), name, fn, opts...)

	g.muVert.Lock()
	defer g.muVert.Unlock()
	if v.vtype == Final && g.hasFinal {
		return nil, ErrDuplicateFinalVertex
	}
	g.vertices[v.id] = v
	if v.vtype == Final {
		g.hasFinal = true
		g.finalVertexID = v.id
	}
	return v, nil
}

// StopVertex removes a vertex from the directory, releasing its state.
func (g *Graph) StopVertex(id string) error {
	if err := g.guardNotRunning(); err != nil {
		return err
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()
	if _, ok := g.vertices[id]; !ok {
		return ErrVertexNotFound
	}
	delete(g.vertices, id)
	if g.hasFinal && g.finalVertexID == id {
		g.hasFinal = false
		g.finalVertexID = ""
	}
	return nil
}

// GetVertex looks up a vertex by id.
func (g *Graph) GetVertex(id string) (*Vertex, error) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	return v, nil
}

// ListVertices returns every vertex, sorted by id for deterministic
// enumeration.
func (g *Graph) ListVertices() []*Vertex {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// VertexCount returns the number of vertices currently in the graph.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.vertices)
}

// CreateEdge validates that both endpoints exist, then installs the edge on
// from's outgoing-edge map (overwriting any prior edge to the same target,
// preserving invariant 2: at most one edge per (from, to) pair).
func (g *Graph) CreateEdge(from, to string, opts ...EdgeOption) error {
	if err := g.guardNotRunning(); err != nil {
		return err
	}
	fromV, err := g.GetVertex(from)
	if err != nil {
		return err
	}
	if _, err := g.GetVertex(to); err != nil {
		return err
	}
	fromV.AddOutgoingEdge(newEdge(from, to, opts...))
	return nil
}

// RemoveEdge deletes the edge from->to, or ErrEdgeNotFound if none exists.
func (g *Graph) RemoveEdge(from, to string) error {
	if err := g.guardNotRunning(); err != nil {
		return err
	}
	fromV, err := g.GetVertex(from)
	if err != nil {
		return err
	}
	return fromV.RemoveOutgoingEdge(to)
}

// GetVertexEdges returns vertex id's outgoing edges.
func (g *Graph) GetVertexEdges(id string) ([]Edge, error) {
	v, err := g.GetVertex(id)
	if err != nil {
		return nil, err
	}
	edges := v.GetOutgoingEdges()
	out := make([]Edge, 0, len(edges))
	targets := make([]string, 0, len(edges))
	for t := range edges {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		out = append(out, edges[t])
	}
	return out, nil
}

// GetVertexNeighbors returns vertex id's outgoing-edge target ids, sorted.
func (g *Graph) GetVertexNeighbors(id string) ([]string, error) {
	v, err := g.GetVertex(id)
	if err != nil {
		return nil, err
	}
	return v.GetNeighbors(), nil
}

// ListEdges returns the concatenation of every vertex's outgoing edges.
// Ordering between vertices is unspecified; within a vertex, edges are
// sorted by target id.
func (g *Graph) ListEdges() []Edge {
	var out []Edge
	for _, v := range g.ListVertices() {
		edges := v.GetOutgoingEdges()
		targets := make([]string, 0, len(edges))
		for t := range edges {
			targets = append(targets, t)
		}
		sort.Strings(targets)
		for _, t := range targets {
			out = append(out, edges[t])
		}
	}
	return out
}

// SendMessage looks up sender and recipient, validating both exist, then
// forwards content into the sender's outbox via EnqueueOutbox.
func (g *Graph) SendMessage(from, to string, content payload.Value) error {
	fromV, err := g.GetVertex(from)
	if err != nil {
		return err
	}
	if _, err := g.GetVertex(to); err != nil {
		return err
	}
	fromV.EnqueueOutbox(to, content)
	return nil
}

// GetFinalValue returns the state of the graph's unique Final-typed vertex,
// or ErrFinalVertexNotFound if none exists.
func (g *Graph) GetFinalValue() (VertexState, error) {
	g.muVert.RLock()
	id, ok := g.finalVertexID, g.hasFinal
	g.muVert.RUnlock()
	if !ok {
		return VertexState{}, ErrFinalVertexNotFound
	}
	v, err := g.GetVertex(id)
	if err != nil {
		return VertexState{}, ErrFinalVertexNotFound
	}
	return v.GetState(), nil
}
