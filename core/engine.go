package core

import (
	"context"
	"sort"
	"sync"
	"time"
)

// SuperstepStatus reports the outcome of one ExecuteSuperstep call.
type SuperstepStatus struct {
	Halted bool
	Round  uint64
}

// RunLog summarizes a completed (halted) Run.
type RunLog struct {
	Rounds           uint64
	DeliveryWarnings []DeliveryWarning
}

const (
	defaultMaxSupersteps = 1000
	defaultTimeout       = 60 * time.Second
)

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	maxSupersteps uint64
	timeout       time.Duration
}

func newRunConfig(opts ...RunOption) runConfig {
	cfg := runConfig{maxSupersteps: defaultMaxSupersteps, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MaxSupersteps overrides the default round bound (1000).
func MaxSupersteps(n uint64) RunOption {
	return func(cfg *runConfig) { cfg.maxSupersteps = n }
}

// Timeout overrides the default wall-clock bound (60s).
func Timeout(d time.Duration) RunOption {
	return func(cfg *runConfig) { cfg.timeout = d }
}

// ComputeVertex runs a single vertex's Compute in isolation, outside the
// engine's phase barrier — a diagnostic escape hatch. The emitted messages
// remain in the vertex's outbox for inspection; nothing is drained, routed,
// or advanced. A *UserFunctionError from the vertex is returned verbatim.
func (g *Graph) ComputeVertex(id string) ([]Message, error) {
	v, err := g.GetVertex(id)
	if err != nil {
		return nil, err
	}
	msgs, _, err := v.Compute()
	return msgs, err
}

// ExecuteSuperstep drives exactly one BSP round through its five strictly
// ordered phases (compute, drain, deliver, clear, advance), then checks
// termination. It is both the step the engine loop itself uses and the
// public manual single-round diagnostic operation.
func (g *Graph) ExecuteSuperstep() (SuperstepStatus, error) {
	g.running.Store(true)
	defer g.running.Store(false)
	status, _, err := g.runPhases()
	return status, err
}

// runPhases is ExecuteSuperstep's body, factored out so Run can drive many
// rounds without repeatedly flipping the running flag between them.
func (g *Graph) runPhases() (SuperstepStatus, []DeliveryWarning, error) {
	vertices := g.ListVertices() // snapshot; phase 1 observes the active set at entry.

	// Phase 1 — Compute. Fan out across goroutines, one per active vertex,
	// and join on a WaitGroup before Phase 2 begins, so the per-vertex work
	// runs independently under a global barrier.
	type outcome struct {
		msgs     []Message
		warnings []ConditionPanic
		err      error
	}
	outcomes := make([]outcome, len(vertices))
	var wg sync.WaitGroup
	for i, v := range vertices {
		if !v.IsActive() {
			continue
		}
		wg.Add(1)
		go func(i int, v *Vertex) {
			defer wg.Done()
			msgs, warnings, err := v.Compute()
			outcomes[i] = outcome{msgs: msgs, warnings: warnings, err: err}
		}(i, v)
	}
	wg.Wait()

	var warnings []DeliveryWarning
	for i, oc := range outcomes {
		if oc.err != nil {
			return SuperstepStatus{Round: g.round}, nil, oc.err
		}
		for _, w := range oc.warnings {
			warnings = append(warnings, DeliveryWarning{
				Message: Message{Sender: w.VertexID, Recipient: w.Target, Superstep: vertices[i].superstep},
				Reason:  "condition panicked; treated as do-not-send",
			})
		}
	}

	// Phase 2 — Drain outboxes into one round-wide sequence. Per-sender
	// emission order is preserved; order across senders is unspecified.
	var allMsgs []Message
	for _, v := range vertices {
		allMsgs = append(allMsgs, v.DrainOutbox()...)
	}

	// Phase 3 — Deliver, grouped by recipient, preserving the grouped
	// order within each recipient.
	byRecipient := make(map[string][]Message)
	order := make([]string, 0)
	for _, m := range allMsgs {
		if _, seen := byRecipient[m.Recipient]; !seen {
			order = append(order, m.Recipient)
		}
		byRecipient[m.Recipient] = append(byRecipient[m.Recipient], m)
	}
	sort.Strings(order) // deterministic even though inter-recipient order is otherwise unspecified.
	for _, recipient := range order {
		msgs := byRecipient[recipient]
		target, err := g.GetVertex(recipient)
		if err != nil {
			for _, m := range msgs {
				warnings = append(warnings, DeliveryWarning{Message: m, Reason: "recipient not found"})
			}
			continue
		}
		target.Receive(msgs)
	}
	for _, w := range warnings {
		g.warn(w)
	}

	// Phase 4 — Clear. DrainOutbox already emptied every outbox in Phase 2;
	// this phase exists so the round keeps its five-phase structure, even
	// though there is nothing left to do here.

	// Phase 5 — Advance. Pending becomes incoming; vertices with new
	// pending messages become active for the next round.
	for _, v := range vertices {
		v.Advance()
	}
	g.round++

	return SuperstepStatus{Halted: !g.anyActive(vertices), Round: g.round}, warnings, nil
}

func (g *Graph) anyActive(vertices []*Vertex) bool {
	for _, v := range vertices {
		if v.IsActive() {
			return true
		}
	}
	return false
}

// Run iterates ExecuteSuperstep's phases until the graph halts, the round
// counter reaches MaxSupersteps, or wall time exceeds Timeout. The two
// bounds are independent; whichever triggers first is reported via
// *BoundedFailureError with the offending round number attached.
// MaxSupersteps(0) fails immediately with round 0, before any phase runs.
func (g *Graph) Run(opts ...RunOption) (RunLog, error) {
	cfg := newRunConfig(opts...)

	g.running.Store(true)
	defer g.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	var log RunLog
	for {
		if g.round >= cfg.maxSupersteps {
			return log, &BoundedFailureError{Kind: MaxSuperstepsExceeded, Round: g.round}
		}
		select {
		case <-ctx.Done():
			return log, &BoundedFailureError{Kind: TimeoutExceeded, Round: g.round}
		default:
		}

		status, warnings, err := g.runPhases()
		if err != nil {
			return log, err
		}
		log.Rounds = status.Round
		log.DeliveryWarnings = append(log.DeliveryWarnings, warnings...)
		if status.Halted {
			return log, nil
		}
	}
}
