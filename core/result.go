package core

import "github.com/Gearhartlove/pregel-ex/payload"

// resultKind tags the variant a Result holds. Detecting "no change" by
// equality against the vertex's current value is fragile for deeply nested
// payloads, so Unchanged is its own explicit variant rather than inferred
// from Value.
type resultKind uint8

const (
	resultHalt resultKind = iota
	resultUnchanged
	resultNewValue
)

// Result is what a ComputeFunc returns: a vote to halt, an explicit
// "nothing changed this round", or a new partial value to merge with the
// round's aggregated incoming payload.
type Result struct {
	kind  resultKind
	value payload.Value
}

// Halt votes the vertex to deactivate. Its value is left unchanged and it
// emits no outgoing messages this round.
func Halt() Result { return Result{kind: resultHalt} }

// Unchanged reports that compute produced no new value. The vertex still
// broadcasts its current value along outgoing edges (subject to their
// conditions), then deactivates.
func Unchanged() Result { return Result{kind: resultUnchanged} }

// NewValue carries a new partial value. It is merged with the round's
// aggregated incoming payload (map ⊕ map merges key-wise, newly wins;
// otherwise newly replaces) to become the vertex's new value, which is then
// broadcast. The vertex remains active.
func NewValue(v payload.Value) Result { return Result{kind: resultNewValue, value: v} }

// ComputeFunc is the user-supplied per-vertex function. It must be finite
// and must not call back into the engine; a returned error (or a recovered
// panic) aborts the current round with a *UserFunctionError.
type ComputeFunc func(ctx ComputeContext) (Result, error)

// ComputeContext is the read-only view a ComputeFunc receives.
type ComputeContext struct {
	Value              payload.Value
	RawMessages        []Message
	AggregatedMessages payload.Value
	VertexID           string
	Superstep          uint64
	OutgoingEdges      map[string]Edge
}
