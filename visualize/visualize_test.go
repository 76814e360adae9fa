package visualize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/graphtraverse/algebra"
)

func TestString_RendersNodesAndEdges(t *testing.T) {
	ordering := []*algebra.Expression{
		algebra.NewFusedScanTraversal("a", "Person", "r", "b", algebra.HopRange{Min: 1, Max: 1}, "KNOWS"),
	}
	dot, err := String(ordering)
	require.NoError(t, err)
	assert.Contains(t, dot, "\"a:Person\"", "a's fused label must show up on its node")
	assert.Contains(t, dot, "\"b\"")
	assert.Contains(t, dot, "KNOWS")
}

func TestString_RendersDestinationLabel(t *testing.T) {
	ordering := []*algebra.Expression{
		algebra.NewFusedTraversalScan("a", "r", "b", "Person", algebra.HopRange{Min: 1, Max: 1}),
	}
	dot, err := String(ordering)
	require.NoError(t, err)
	assert.Contains(t, dot, "\"a\"")
	assert.Contains(t, dot, "\"b:Person\"")
}

func TestString_MarksTransposedEdgesDashed(t *testing.T) {
	e := algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1})
	e.Transpose()
	dot, err := String([]*algebra.Expression{e})
	require.NoError(t, err)
	assert.Contains(t, dot, "dashed")
}
