package payload_test

import (
	"testing"

	"github.com/Gearhartlove/pregel-ex/payload"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	got := payload.Aggregate(nil)
	require.True(t, got.IsNil())
}

func TestAggregate_AllNumbers_Sums(t *testing.T) {
	got := payload.Aggregate([]payload.Value{
		payload.Number(1),
		payload.Number(2),
		payload.Number(3),
	})
	n, ok := got.Number()
	require.True(t, ok)
	require.Equal(t, float64(6), n)
}

func TestAggregate_AllMaps_LeftToRightMerge(t *testing.T) {
	got := payload.Aggregate([]payload.Value{
		payload.Map(map[string]payload.Value{"a": payload.Number(1), "b": payload.Number(1)}),
		payload.Map(map[string]payload.Value{"b": payload.Number(2)}),
	})
	m, ok := got.Map()
	require.True(t, ok)
	a, _ := m["a"].Number()
	b, _ := m["b"].Number()
	require.Equal(t, float64(1), a)
	require.Equal(t, float64(2), b, "later message's key must win")
}

func TestAggregate_Mixed_BecomesList(t *testing.T) {
	got := payload.Aggregate([]payload.Value{
		payload.Number(1),
		payload.Opaque("hi"),
	})
	list, ok := got.List()
	require.True(t, ok)
	require.Len(t, list, 2)
}

func TestMerge_MapOverMap_NewlyWins(t *testing.T) {
	base := payload.Map(map[string]payload.Value{"sum": payload.Number(1), "keep": payload.Number(9)})
	newly := payload.Map(map[string]payload.Value{"sum": payload.Number(2)})
	got := payload.Merge(newly, base)
	m, ok := got.Map()
	require.True(t, ok)
	sum, _ := m["sum"].Number()
	keep, _ := m["keep"].Number()
	require.Equal(t, float64(2), sum)
	require.Equal(t, float64(9), keep, "base keys not present in newly must survive")
}

func TestMerge_NonMap_NewlyReplaces(t *testing.T) {
	base := payload.Number(5)
	newly := payload.Number(7)
	got := payload.Merge(newly, base)
	n, ok := got.Number()
	require.True(t, ok)
	require.Equal(t, float64(7), n)
}

func TestEqual(t *testing.T) {
	require.True(t, payload.Equal(payload.Nil, payload.Value{}))
	require.True(t, payload.Equal(payload.Number(1), payload.Number(1)))
	require.False(t, payload.Equal(payload.Number(1), payload.Number(2)))
	require.True(t, payload.Equal(
		payload.Map(map[string]payload.Value{"a": payload.Number(1)}),
		payload.Map(map[string]payload.Value{"a": payload.Number(1)}),
	))
}
