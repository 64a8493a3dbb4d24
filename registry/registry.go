package registry

import (
	"encoding/hex"
	"sort"
	"sync"

	"github.com/Gearhartlove/pregel-ex/core"
	"github.com/Gearhartlove/pregel-ex/payload"
	"github.com/google/uuid"
)

// graphIDPrefix namespaces every minted graph id, mirroring core's
// vertexIDPrefix so both id families are self-describing wherever they
// show up together (logs, HTTP routes, test fixtures).
const graphIDPrefix = "grph."

func mintGraphID() string {
	id := uuid.New()
	return graphIDPrefix + hex.EncodeToString(id[:])
}

// Registry is the process-wide supervisor of *core.Graph lifetimes. It is
// the only shared mutable structure in the system: mutated at
// CreateGraph/StopGraph time, otherwise read-only while any of its graphs
// is running its own superstep engine.
type Registry struct {
	mu     sync.RWMutex
	graphs map[string]*core.Graph
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{graphs: make(map[string]*core.Graph)}
}

// CreateGraph mints a graph id, constructs the backing *core.Graph, and
// publishes it into the registry's directory.
func (r *Registry) CreateGraph(name string, opts ...core.GraphOption) (*core.Graph, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	g := core.NewGraph(mintGraphID(), name, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.graphs[g.ID()] = g
	return g, nil
}

// StopGraph removes a graph from the directory, releasing it (and every
// vertex it owns) for garbage collection.
func (r *Registry) StopGraph(graphID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.graphs[graphID]; !ok {
		return ErrGraphNotFound
	}
	delete(r.graphs, graphID)
	return nil
}

// getGraph looks up graphID, wrapping the miss as ErrGraphNotFound so
// callers never see a bare "not found" from the wrong package.
func (r *Registry) getGraph(graphID string) (*core.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.graphs[graphID]
	if !ok {
		return nil, ErrGraphNotFound
	}
	return g, nil
}

// ListGraphs returns every live graph, sorted by id for deterministic
// enumeration.
func (r *Registry) ListGraphs() []*core.Graph {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*core.Graph, 0, len(r.graphs))
	for _, g := range r.graphs {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// GraphCount returns the number of graphs currently registered.
func (r *Registry) GraphCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.graphs)
}

// --- Per-graph passthroughs -------------------------------------------------
//
// Everything below resolves graphID to its *core.Graph and forwards the
// call. The registry itself never touches vertex/edge state directly —
// core.Graph remains the sole owner of that concern; vertex state is never
// shared, and that holds through the registry layer unchanged.

func (r *Registry) CreateVertex(graphID, name string, fn core.ComputeFunc, opts ...core.VertexOption) (*core.Vertex, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return nil, err
	}
	return g.CreateVertex(name, fn, opts...)
}

func (r *Registry) StopVertex(graphID, vertexID string) error {
	g, err := r.getGraph(graphID)
	if err != nil {
		return err
	}
	return g.StopVertex(vertexID)
}

func (r *Registry) GetVertexState(graphID, vertexID string) (core.VertexState, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return core.VertexState{}, err
	}
	v, err := g.GetVertex(vertexID)
	if err != nil {
		return core.VertexState{}, err
	}
	return v.GetState(), nil
}

func (r *Registry) ListVertices(graphID string) ([]*core.Vertex, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return nil, err
	}
	return g.ListVertices(), nil
}

func (r *Registry) VertexCount(graphID string) (int, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return 0, err
	}
	return g.VertexCount(), nil
}

func (r *Registry) CreateEdge(graphID, from, to string, opts ...core.EdgeOption) error {
	g, err := r.getGraph(graphID)
	if err != nil {
		return err
	}
	return g.CreateEdge(from, to, opts...)
}

func (r *Registry) RemoveEdge(graphID, from, to string) error {
	g, err := r.getGraph(graphID)
	if err != nil {
		return err
	}
	return g.RemoveEdge(from, to)
}

func (r *Registry) GetVertexEdges(graphID, vertexID string) ([]core.Edge, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return nil, err
	}
	return g.GetVertexEdges(vertexID)
}

func (r *Registry) GetVertexNeighbors(graphID, vertexID string) ([]string, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return nil, err
	}
	return g.GetVertexNeighbors(vertexID)
}

func (r *Registry) ListEdges(graphID string) ([]core.Edge, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return nil, err
	}
	return g.ListEdges(), nil
}

func (r *Registry) SendMessage(graphID, from, to string, content payload.Value) error {
	g, err := r.getGraph(graphID)
	if err != nil {
		return err
	}
	return g.SendMessage(from, to, content)
}

func (r *Registry) ComputeVertex(graphID, vertexID string) ([]core.Message, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return nil, err
	}
	return g.ComputeVertex(vertexID)
}

func (r *Registry) ExecuteSuperstep(graphID string) (core.SuperstepStatus, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return core.SuperstepStatus{}, err
	}
	return g.ExecuteSuperstep()
}

func (r *Registry) Run(graphID string, opts ...core.RunOption) (core.RunLog, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return core.RunLog{}, err
	}
	return g.Run(opts...)
}

func (r *Registry) GetFinalValue(graphID string) (core.VertexState, error) {
	g, err := r.getGraph(graphID)
	if err != nil {
		return core.VertexState{}, err
	}
	return g.GetFinalValue()
}
