package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/storage"
	memstore "github.com/cube2222/graphtraverse/storage/csv"
)

func testStore() storage.GraphStore {
	return memstore.New(
		[]storage.StoredNode{
			{ID: "a1", Label: "Person", Properties: storage.PropertyMap{"name": "Alice"}},
			{ID: "b1", Label: "Person", Properties: storage.PropertyMap{"name": "Bob"}},
			{ID: "c1", Label: "Post"},
		},
		[]storage.StoredEdge{
			{ID: "e1", From: "a1", To: "b1", RelType: "KNOWS"},
			{ID: "e2", From: "b1", To: "c1", RelType: "LIKES"},
		},
	)
}

func TestScanOperator_FiltersByLabel(t *testing.T) {
	op := NewScanOperator(testStore(), algebra.NewScan("a", "Person"))
	rows, err := op.Next(nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestConditionalTraverseOperator_BindsNewAlias(t *testing.T) {
	op := NewConditionalTraverseOperator(testStore(), algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1}, "KNOWS"))
	rows, err := op.Next([]Row{{"a": "a1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b1", rows[0]["b"])
}

func TestConditionalTraverseOperator_Transposed(t *testing.T) {
	e := algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1}, "KNOWS")
	e.Transpose() // now source=b, destination=a
	op := NewConditionalTraverseOperator(testStore(), e)
	rows, err := op.Next([]Row{{"b": "b1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a1", rows[0]["a"])
}

func TestConditionalTraverseOperator_FiltersByDestinationLabel(t *testing.T) {
	e := algebra.NewFusedTraversalScan("b", "r2", "c", "Post", algebra.HopRange{Min: 1, Max: 1}, "LIKES")
	op := NewConditionalTraverseOperator(testStore(), e)
	rows, err := op.Next([]Row{{"b": "b1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c1", rows[0]["c"])
}

func TestConditionalTraverseOperator_DestinationLabelExcludesMismatch(t *testing.T) {
	e := algebra.NewFusedTraversalScan("a", "r", "b", "Post", algebra.HopRange{Min: 1, Max: 1}, "KNOWS")
	op := NewConditionalTraverseOperator(testStore(), e)
	rows, err := op.Next([]Row{{"a": "a1"}})
	require.NoError(t, err)
	assert.Empty(t, rows, "b1 is labeled Person, not Post, so it must not bind")
}

func TestVariableLengthTraverseOperator_FiltersByDestinationLabel(t *testing.T) {
	e := algebra.NewFusedTraversalScan("a", "r", "b", "Post", algebra.HopRange{Min: 1, Max: 2})
	op := NewVariableLengthTraverseOperator(testStore(), e)
	rows, err := op.Next([]Row{{"a": "a1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1, "only c1, reached at hop 2, carries the Post label")
	assert.Equal(t, "c1", rows[0]["b"])
}

func TestExpandIntoOperator_FiltersUnconnectedRows(t *testing.T) {
	op := NewExpandIntoOperator(testStore(), algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1}, "KNOWS"))
	rows, err := op.Next([]Row{{"a": "a1", "b": "b1"}, {"a": "a1", "b": "c1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b1", rows[0]["b"])
}

func TestExpandIntoOperator_FiltersByDestinationLabel(t *testing.T) {
	e := algebra.NewFusedTraversalScan("a", "r", "b", "Post", algebra.HopRange{Min: 1, Max: 1}, "KNOWS")
	op := NewExpandIntoOperator(testStore(), e)
	rows, err := op.Next([]Row{{"a": "a1", "b": "b1"}})
	require.NoError(t, err)
	assert.Empty(t, rows, "b1 is labeled Person, not Post")
}

func TestVariableLengthTraverseOperator_RespectsHopBounds(t *testing.T) {
	op := NewVariableLengthTraverseOperator(testStore(), algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 2, Max: 2}))
	rows, err := op.Next([]Row{{"a": "a1"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c1", rows[0]["b"])
}

func TestBuild_RejectsUnresolvedSource(t *testing.T) {
	_, err := Build(testStore(), []*algebra.Expression{
		algebra.NewTraversal("x", "r", "y", algebra.HopRange{Min: 1, Max: 1}),
	})
	assert.NoError(t, err) // the first expression is always the scan/opener, so this is valid.

	_, err = Build(testStore(), []*algebra.Expression{
		algebra.NewTraversal("a", "r1", "b", algebra.HopRange{Min: 1, Max: 1}),
		algebra.NewTraversal("x", "r2", "y", algebra.HopRange{Min: 1, Max: 1}),
	})
	assert.Error(t, err, "x is bound by no predecessor")

	_, err = Build(testStore(), nil)
	assert.Error(t, err)
}

func TestBuild_ChainsScanThenTraverse(t *testing.T) {
	ops, err := Build(testStore(), []*algebra.Expression{
		algebra.NewScan("a", "Person"),
		algebra.NewTraversal("a", "r", "b", algebra.HopRange{Min: 1, Max: 1}, "KNOWS"),
	})
	require.NoError(t, err)
	require.Len(t, ops, 2)

	rows, err := ops[0].Next(nil)
	require.NoError(t, err)
	rows, err = ops[1].Next(rows)
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}
