package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/boundvars"
)

func TestIsValidOrdering_RejectsUnresolvedChain(t *testing.T) {
	a := algebra.NewTraversal("a", "r1", "b", algebra.HopRange{Min: 1, Max: 1})
	disconnected := algebra.NewTraversal("x", "r2", "y", algebra.HopRange{Min: 1, Max: 1})

	ok := isValidOrdering([]*algebra.Expression{a, disconnected}, boundvars.Empty())
	assert.False(t, ok)
}

func TestIsValidOrdering_AcceptsChainedOrdering(t *testing.T) {
	a := algebra.NewTraversal("a", "r1", "b", algebra.HopRange{Min: 1, Max: 1})
	b := algebra.NewTraversal("b", "r2", "c", algebra.HopRange{Min: 1, Max: 1})

	ok := isValidOrdering([]*algebra.Expression{a, b}, boundvars.Empty())
	assert.True(t, ok)
}

func TestIsValidOrdering_RejectsBareLabeledOpener(t *testing.T) {
	r := algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1})
	l0 := algebra.NewScan("a", "Person")
	l1 := algebra.NewScan("b", "")

	ok := isValidOrdering([]*algebra.Expression{r, l0, l1}, boundvars.New("a"))
	assert.False(t, ok, "opener is a bare edge with a labeled endpoint, which must be rejected")
}

func TestIsValidOrdering_AcceptsLabelScanOpener(t *testing.T) {
	r := algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1})
	l0 := algebra.NewScan("a", "Person")
	l1 := algebra.NewScan("b", "")

	ok := isValidOrdering([]*algebra.Expression{l0, r, l1}, boundvars.New("a"))
	assert.True(t, ok)
}

func TestIsValidOrdering_FusedOpenerNotRestricted(t *testing.T) {
	fused := algebra.NewFusedScanTraversal("a", "Person", "r", "b", algebra.HopRange{Min: 1, Max: 1})

	ok := isValidOrdering([]*algebra.Expression{fused}, boundvars.New("a"))
	assert.True(t, ok, "a fused scan+edge opener isn't a bare edge, so the label doesn't disqualify it")
}

func TestIsValidOrdering_DestinationFusedOpenerNotRestricted(t *testing.T) {
	fused := algebra.NewFusedTraversalScan("a", "r", "b", "Person", algebra.HopRange{Min: 1, Max: 1})

	ok := isValidOrdering([]*algebra.Expression{fused}, boundvars.New("b"))
	assert.True(t, ok, "a destination-labeled fusion is a two-operand expression, not a bare edge")
}

func TestSourceResolved_OnlyChecksSourceSide(t *testing.T) {
	a := algebra.NewTraversal("a", "r1", "b", algebra.HopRange{Min: 1, Max: 1})
	b := algebra.NewTraversal("c", "r2", "a", algebra.HopRange{Min: 1, Max: 1})

	ordering := []*algebra.Expression{a, b}
	assert.False(t, sourceResolved(ordering, 1), "b's source is c, resolved by neither a's source nor destination")

	c := algebra.NewTraversal("b", "r3", "d", algebra.HopRange{Min: 1, Max: 1})
	ordering2 := []*algebra.Expression{a, c}
	assert.True(t, sourceResolved(ordering2, 1), "c's source b equals a's destination")
}
