package graphmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_BuildsLookupableGraph(t *testing.T) {
	g := NewBuilder().
		AddNode("a", "Person").
		AddNode("b", "").
		AddEdge("r", 1, 1, false, "KNOWS").
		Build()

	a, ok := g.NodeByAlias("a")
	assert.True(t, ok)
	assert.True(t, a.HasLabel())
	assert.Equal(t, "Person", a.Label)

	b, ok := g.NodeByAlias("b")
	assert.True(t, ok)
	assert.False(t, b.HasLabel())

	r, ok := g.EdgeByAlias("r")
	assert.True(t, ok)
	assert.Equal(t, 1, r.MinHops)
	assert.Equal(t, []string{"KNOWS"}, r.RelTypes)

	_, ok = g.NodeByAlias("missing")
	assert.False(t, ok)
}
