package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphRollsBackOnCycle(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.SetDependencies("a", []string{"b"}))
	require.NoError(t, g.SetDependencies("b", []string{"c"}))

	err := g.SetDependencies("c", []string{"a"})
	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"c", "a", "b", "c"}, cycleErr.Cycle)

	// The rejected edge set must not survive.
	assert.Empty(t, g.Dependencies("c"))
	assert.Equal(t, []string{"b", "c"}, g.Dependencies("a"))
}

func TestGraphDiamondReloadOrder(t *testing.T) {
	// a depends on b and c, both depend on d.
	g := NewGraph()
	require.NoError(t, g.SetDependencies("b", []string{"d"}))
	require.NoError(t, g.SetDependencies("c", []string{"d"}))
	require.NoError(t, g.SetDependencies("a", []string{"b", "c"}))

	order := g.ReloadOrder([]string{"d"})
	require.Len(t, order, 4)
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	assert.Less(t, pos["d"], pos["b"])
	assert.Less(t, pos["d"], pos["c"])
	assert.Less(t, pos["b"], pos["a"])
	assert.Less(t, pos["c"], pos["a"])
}

func TestGraphRemoveDropsBothDirections(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.SetDependencies("a", []string{"b"}))
	require.NoError(t, g.SetDependencies("b", []string{"c"}))

	g.Remove("b")
	assert.Empty(t, g.Dependencies("a"))
	assert.Empty(t, g.Dependents("c"))
}

func TestGraphDependentsTransitive(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.SetDependencies("a", []string{"b"}))
	require.NoError(t, g.SetDependencies("b", []string{"c"}))

	assert.Equal(t, []string{"a", "b"}, g.Dependents("c"))
}
