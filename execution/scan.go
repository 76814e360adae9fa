package execution

import (
	"github.com/pkg/errors"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/storage"
)

// ScanOperator produces one row per node carrying the expression's
// label (or every node, if the expression carries no label), bound to
// the expression's source alias.
type ScanOperator struct {
	store storage.GraphStore
	alias string
	label string
}

// NewScanOperator builds the scan operator for a compiled expression's
// leftmost (opening) position.
func NewScanOperator(store storage.GraphStore, e *algebra.Expression) *ScanOperator {
	return &ScanOperator{store: store, alias: e.Source(), label: e.Label()}
}

// Next ignores source (a scan has no predecessor rows) and returns one
// row per matching node.
func (op *ScanOperator) Next(source []Row) ([]Row, error) {
	nodes, err := op.store.ScanNodes(op.label)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't scan nodes")
	}
	out := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Row{op.alias: n.ID})
	}
	return out, nil
}
