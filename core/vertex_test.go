package core_test

import (
	"errors"
	"testing"

	"github.com/Gearhartlove/pregel-ex/core"
	"github.com/Gearhartlove/pregel-ex/payload"
	"github.com/stretchr/testify/require"
)

func echo(ctx core.ComputeContext) (core.Result, error) {
	return core.NewValue(ctx.AggregatedMessages), nil
}

func TestVertex_SourceStartsActive(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v, err := g.CreateVertex("start", echo, core.WithVertexType(core.Source))
	require.NoError(t, err)
	require.True(t, v.IsActive())
}

func TestVertex_NormalStartsDormant(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v, err := g.CreateVertex("mid", echo)
	require.NoError(t, err)
	require.False(t, v.IsActive())
}

func TestVertex_AdvanceOnEmptyPending_PreservesActiveAndIncoming(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v, err := g.CreateVertex("start", echo, core.WithVertexType(core.Source))
	require.NoError(t, err)

	v.Advance()
	require.True(t, v.IsActive(), "advance with empty pending must preserve active")
	require.Empty(t, v.GetState().IncomingMessages)
}

func TestVertex_AutoHaltOnEmptyInboxPastSuperstepZero(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v, err := g.CreateVertex("mid", echo, core.WithVertexType(core.Source))
	require.NoError(t, err)

	v.Advance() // superstep becomes 1, incoming stays empty (pending was empty)
	msgs, warnings, err := v.Compute()
	require.NoError(t, err)
	require.Nil(t, msgs)
	require.Nil(t, warnings)
	require.False(t, v.IsActive())
}

func TestVertex_HaltEmitsNoMessages(t *testing.T) {
	g := core.NewGraph("g1", "test")
	haltFn := func(ctx core.ComputeContext) (core.Result, error) { return core.Halt(), nil }
	v, err := g.CreateVertex("v", haltFn, core.WithVertexType(core.Source))
	require.NoError(t, err)
	other, err := g.CreateVertex("other", echo)
	require.NoError(t, err)
	require.NoError(t, g.CreateEdge(v.ID(), other.ID()))

	msgs, _, err := v.Compute()
	require.NoError(t, err)
	require.Empty(t, msgs)
	require.False(t, v.IsActive())
}

func TestVertex_UnchangedBroadcastsThenDeactivates(t *testing.T) {
	g := core.NewGraph("g1", "test")
	same := func(ctx core.ComputeContext) (core.Result, error) { return core.Unchanged(), nil }
	v, err := g.CreateVertex("v", same, core.WithVertexType(core.Source), core.WithInitialValue(payload.Number(1)))
	require.NoError(t, err)
	other, err := g.CreateVertex("other", echo)
	require.NoError(t, err)
	require.NoError(t, g.CreateEdge(v.ID(), other.ID()))

	msgs, _, err := v.Compute()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.False(t, v.IsActive())
}

func TestVertex_NewValueMergesWithAggregatedAndStaysActive(t *testing.T) {
	g := core.NewGraph("g1", "test")
	incr := func(ctx core.ComputeContext) (core.Result, error) {
		agg := ctx.AggregatedMessages
		sum, ok := agg.Number()
		if !ok {
			sum = 0
		}
		return core.NewValue(payload.Number(sum + 1)), nil
	}
	v, err := g.CreateVertex("v", incr, core.WithVertexType(core.Source))
	require.NoError(t, err)

	_, _, err = v.Compute()
	require.NoError(t, err)
	require.True(t, v.IsActive())
	n, ok := v.GetState().Value.Number()
	require.True(t, ok)
	require.Equal(t, float64(1), n)
}

func TestVertex_ComputeFunc_ErrorBecomesUserFunctionError(t *testing.T) {
	g := core.NewGraph("g1", "test")
	boom := func(ctx core.ComputeContext) (core.Result, error) { return core.Halt(), errors.New("boom") }
	v, err := g.CreateVertex("v", boom, core.WithVertexType(core.Source))
	require.NoError(t, err)

	_, _, err = v.Compute()
	require.Error(t, err)
	var ufe *core.UserFunctionError
	require.ErrorAs(t, err, &ufe)
	require.Equal(t, v.ID(), ufe.VertexID)
}

func TestVertex_ComputeFunc_PanicBecomesUserFunctionError(t *testing.T) {
	g := core.NewGraph("g1", "test")
	boom := func(ctx core.ComputeContext) (core.Result, error) { panic("kaboom") }
	v, err := g.CreateVertex("v", boom, core.WithVertexType(core.Source))
	require.NoError(t, err)

	_, _, err = v.Compute()
	require.Error(t, err)
	var ufe *core.UserFunctionError
	require.ErrorAs(t, err, &ufe)
}

func TestVertex_EdgeLifecycle(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v1, err := g.CreateVertex("v1", echo)
	require.NoError(t, err)
	v2, err := g.CreateVertex("v2", echo)
	require.NoError(t, err)
	v3, err := g.CreateVertex("v3", echo)
	require.NoError(t, err)

	require.NoError(t, g.CreateEdge(v1.ID(), v2.ID(), core.WithWeight(1.5)))
	require.NoError(t, g.CreateEdge(v1.ID(), v3.ID(), core.WithWeight(2.0)))
	require.NoError(t, g.CreateEdge(v2.ID(), v3.ID(), core.WithWeight(0.5)))

	nbs, err := g.GetVertexNeighbors(v1.ID())
	require.NoError(t, err)
	require.Equal(t, sortedIDs(v2.ID(), v3.ID()), nbs)

	require.NoError(t, g.RemoveEdge(v1.ID(), v2.ID()))
	nbs, err = g.GetVertexNeighbors(v1.ID())
	require.NoError(t, err)
	require.Equal(t, []string{v3.ID()}, nbs)

	require.Len(t, g.ListEdges(), 2)
}

// sortedIDs returns a and b in the order GetVertexNeighbors guarantees
// (sorted ascending), since minted ids are opaque and not declaration-order.
func sortedIDs(a, b string) []string {
	if a < b {
		return []string{a, b}
	}
	return []string{b, a}
}

func TestVertex_RemoveEdge_RoundTrip(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v1, err := g.CreateVertex("v1", echo)
	require.NoError(t, err)
	v2, err := g.CreateVertex("v2", echo)
	require.NoError(t, err)
	require.NoError(t, g.CreateEdge(v1.ID(), v2.ID()))

	before, err := g.GetVertexEdges(v1.ID())
	require.NoError(t, err)

	require.NoError(t, g.RemoveEdge(v1.ID(), v2.ID()))
	require.NoError(t, g.CreateEdge(v1.ID(), v2.ID()))

	after, err := g.GetVertexEdges(v1.ID())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestVertex_RemoveEdge_NotFound(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v1, err := g.CreateVertex("v1", echo)
	require.NoError(t, err)
	v2, err := g.CreateVertex("v2", echo)
	require.NoError(t, err)

	err = g.RemoveEdge(v1.ID(), v2.ID())
	require.ErrorIs(t, err, core.ErrEdgeNotFound)
}

func TestVertex_CreateEdge_VertexNotFound(t *testing.T) {
	g := core.NewGraph("g1", "test")
	v1, err := g.CreateVertex("v1", echo)
	require.NoError(t, err)

	err = g.CreateEdge(v1.ID(), "ghost")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}
