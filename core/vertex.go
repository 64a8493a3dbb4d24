package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Gearhartlove/pregel-ex/payload"
)

// VertexType classifies a vertex's role in the superstep schedule.
type VertexType uint8

const (
	// Normal vertices start dormant and only run once a message arrives.
	Normal VertexType = iota
	// Source vertices start active at superstep 0 and are the only type
	// that may fire without incoming messages.
	Source
	// Final marks the sink whose value Graph.GetFinalValue reports. At most
	// one vertex per graph may hold this type (invariant 5).
	Final
)

func (t VertexType) String() string {
	switch t {
	case Source:
		return "source"
	case Final:
		return "final"
	default:
		return "normal"
	}
}

// VertexState is a read-only snapshot of a Vertex, returned by GetState and
// by the registry's get_vertex_state / get_final_value operations.
type VertexState struct {
	GraphID          string
	ID               string
	Name             string
	Type             VertexType
	Value            payload.Value
	Active           bool
	Superstep        uint64
	IncomingMessages []Message
	OutgoingMessages []Message
}

// Vertex is the per-vertex actor: it owns its state exclusively and
// serializes every operation against it behind mu, following the same
// one-lock-per-concern discipline the rest of this package uses for Graph.
// All fields below mu are accessed only while holding it.
type Vertex struct {
	mu sync.Mutex

	graphID string
	id      string
	name    string
	vtype   VertexType
	fn      ComputeFunc

	value         payload.Value
	outgoingEdges map[string]Edge // target id -> Edge

	pending  []Message // delivered this round, exposed as incoming next round
	incoming []Message // this round's consumable inbox
	outgoing []Message // produced this round, awaiting routing

	superstep uint64
	active    bool
}

// VertexOption configures a Vertex at creation time.
type VertexOption func(*Vertex)

// WithInitialValue seeds the vertex's value instead of leaving it payload.Nil.
func WithInitialValue(v payload.Value) VertexOption {
	return func(vx *Vertex) { vx.value = v }
}

// WithVertexType sets the vertex's type (default Normal).
func WithVertexType(t VertexType) VertexOption {
	return func(vx *Vertex) { vx.vtype = t }
}

func newVertex(graphID, id, name string, fn ComputeFunc, opts ...VertexOption) *Vertex {
	v := &Vertex{
		graphID:       graphID,
		id:            id,
		name:          name,
		fn:            fn,
		value:         payload.Nil,
		outgoingEdges: make(map[string]Edge),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.active = v.vtype == Source
	return v
}

// IsActive reports whether the vertex will participate in the next
// Phase 1 (compute).
func (v *Vertex) IsActive() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// GetType returns the vertex's type.
func (v *Vertex) GetType() VertexType {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vtype
}

// ID returns the vertex's identifier.
func (v *Vertex) ID() string { return v.id }

// Name returns the vertex's human label.
func (v *Vertex) Name() string { return v.name }

// GetState takes a consistent snapshot of the vertex's state.
func (v *Vertex) GetState() VertexState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return VertexState{
		GraphID:          v.graphID,
		ID:               v.id,
		Name:             v.name,
		Type:             v.vtype,
		Value:            v.value,
		Active:           v.active,
		Superstep:        v.superstep,
		IncomingMessages: cloneMessages(v.incoming),
		OutgoingMessages: cloneMessages(v.outgoing),
	}
}

// AddOutgoingEdge installs e under v's outgoing-edge map, keyed by e.To.
// The caller (Graph.CreateEdge) is responsible for verifying both endpoints
// exist; Vertex itself only enforces at-most-one-entry-per-target by
// overwriting any prior edge to the same target.
func (v *Vertex) AddOutgoingEdge(e Edge) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.outgoingEdges[e.To] = e
}

// RemoveOutgoingEdge deletes the edge to target, or returns ErrEdgeNotFound
// if none exists.
func (v *Vertex) RemoveOutgoingEdge(target string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.outgoingEdges[target]; !ok {
		return ErrEdgeNotFound
	}
	delete(v.outgoingEdges, target)
	return nil
}

// GetOutgoingEdges returns a copy of v's outgoing-edge map.
func (v *Vertex) GetOutgoingEdges() map[string]Edge {
	v.mu.Lock()
	defer v.mu.Unlock()
	cp := make(map[string]Edge, len(v.outgoingEdges))
	for k, e := range v.outgoingEdges {
		cp[k] = e
	}
	return cp
}

// GetNeighbors returns the sorted, unique target ids of v's outgoing edges.
func (v *Vertex) GetNeighbors() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.outgoingEdges))
	for target := range v.outgoingEdges {
		out = append(out, target)
	}
	sort.Strings(out)
	return out
}

// EnqueueOutbox appends an explicit, user-initiated message to v's outbox.
// It accumulates alongside any compute-generated messages and follows the
// same routing path once the engine drains outboxes.
func (v *Vertex) EnqueueOutbox(target string, content payload.Value) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.outgoing = append(v.outgoing, NewMessage(v.id, target, content, v.superstep))
}

// DrainOutbox returns v's outbox and clears it (Phase 2 of the superstep
// engine; Phase 4's "Clear" is then a no-op for this vertex).
func (v *Vertex) DrainOutbox() []Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	msgs := v.outgoing
	v.outgoing = nil
	return msgs
}

// Receive appends msgs to v's pending buffer. Pending messages are never
// observed by the user function (invariant 4); they surface as incoming
// only after the next Advance.
func (v *Vertex) Receive(msgs []Message) {
	if len(msgs) == 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = append(v.pending, msgs...)
}

// Advance closes out the round: superstep increments, pending becomes
// incoming, pending is cleared, and — only if pending was non-empty — the
// vertex becomes active. An empty pending buffer preserves whatever active
// value the vertex already had.
func (v *Vertex) Advance() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.superstep++
	v.incoming = v.pending
	v.pending = nil
	if len(v.incoming) > 0 {
		v.active = true
	}
}

// ConditionPanic records that an edge's send-predicate panicked during
// broadcast. A panicking Condition is treated as "do not send" and surfaced
// to the caller as a non-fatal delivery warning rather than failing the
// round.
type ConditionPanic struct {
	VertexID string
	Target   string
}

// Compute runs one round for v through its state machine, in order.
//
//   - Dormant (active == false): skipped, no transition, (nil, nil, nil).
//   - Active with an empty inbox past superstep 0: auto-halt — deactivate,
//     value unchanged, no messages.
//   - Otherwise: invoke fn, classify the Result, merge/broadcast.
//
// The returned messages are also buffered into v's outbox; callers that
// only care about the round-wide message set should prefer DrainOutbox.
func (v *Vertex) Compute() ([]Message, []ConditionPanic, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.active {
		return nil, nil, nil
	}
	if v.superstep > 0 && len(v.incoming) == 0 {
		v.active = false
		return nil, nil, nil
	}

	aggregated := payload.Aggregate(contentsOf(v.incoming))
	ctx := ComputeContext{
		Value:              v.value,
		RawMessages:        cloneMessages(v.incoming),
		AggregatedMessages: aggregated,
		VertexID:           v.id,
		Superstep:          v.superstep,
		OutgoingEdges:      v.copyEdgesLocked(),
	}

	result, err := v.safeInvoke(ctx)
	if err != nil {
		return nil, nil, &UserFunctionError{VertexID: v.id, Superstep: v.superstep, Err: err}
	}

	switch result.kind {
	case resultHalt:
		v.active = false
		return nil, nil, nil
	case resultUnchanged:
		// value unchanged; still broadcasts, then deactivates.
		v.active = false
	case resultNewValue:
		v.value = payload.Merge(result.value, aggregated)
		// remains active until it votes to halt or runs dry next round.
	}

	ctx.Value = v.value
	emitted, warnings := v.broadcastLocked(ctx)
	v.outgoing = append(v.outgoing, emitted...)
	return emitted, warnings, nil
}

// safeInvoke calls v.fn, converting a panic into an error so it is surfaced
// as a *UserFunctionError by the caller rather than crashing the driver
// goroutine (user functions must be finite and non-blocking, but they are
// not trusted to be panic-free).
func (v *Vertex) safeInvoke(ctx ComputeContext) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return v.fn(ctx)
}

func (v *Vertex) copyEdgesLocked() map[string]Edge {
	cp := make(map[string]Edge, len(v.outgoingEdges))
	for k, e := range v.outgoingEdges {
		cp[k] = e
	}
	return cp
}

// broadcastLocked builds one Message per outgoing edge (in a deterministic
// order), skipping edges whose Condition rejects ctx or panics. A panicking
// Condition is reported back as a ConditionPanic rather than failing the
// round. Callers must already hold v.mu.
//
// Order is by target id, not insertion order: outgoingEdges is map-keyed, so
// insertion order isn't retained. Sorted-by-target is used as a deterministic
// substitute; this is a deliberate deviation, not an oversight.
func (v *Vertex) broadcastLocked(ctx ComputeContext) ([]Message, []ConditionPanic) {
	targets := make([]string, 0, len(v.outgoingEdges))
	for target := range v.outgoingEdges {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	msgs := make([]Message, 0, len(targets))
	var warnings []ConditionPanic
	for _, target := range targets {
		edge := v.outgoingEdges[target]
		send, panicked := edge.shouldSend(ctx)
		if panicked {
			warnings = append(warnings, ConditionPanic{VertexID: v.id, Target: target})
		}
		if !send {
			continue
		}
		msgs = append(msgs, NewMessage(v.id, target, ctx.Value, v.superstep))
	}
	return msgs, warnings
}
