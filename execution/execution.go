// Package execution implements the downstream traversal operators the
// planner's ordered expressions are specified only by their structural
// contract with: the first expression in a planner-ordered array opens
// with a Scan (plus a traverse if it carries an edge), and every later
// expression's source alias must already be bound by some earlier
// operator in the chain. These operators are intentionally simple — no
// cost-based execution, no result formatting beyond a row of
// alias→value pairs.
package execution

import (
	"github.com/pkg/errors"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/storage"
)

// Row is one partial or complete pattern match: alias to bound node ID.
type Row map[string]string

// Operator is the common shape of every node in the execution chain
// the planner's ordered expressions compile down to.
type Operator interface {
	// Next returns the rows produced by extending each row from
	// source by this operator's expression (a scan ignores source and
	// produces fresh rows), or an error.
	Next(source []Row) ([]Row, error)
}

// Build compiles a planner-ordered expression array into an operator
// chain over store: position 0 becomes a Scan (followed by a traverse
// of its edge, if it has one), and every later position becomes a
// VariableLengthTraverse (edge other than a single fixed hop), a
// ConditionalTraverse (destination not yet bound) or an ExpandInto
// (destination already bound by an earlier
// operator) — the same choice a real traversal compiler makes based
// on the chain invariant the planner guarantees (spec.md P2/P3).
func Build(store storage.GraphStore, expressions []*algebra.Expression) ([]Operator, error) {
	if len(expressions) == 0 {
		return nil, errors.New("cannot build an operator chain from zero expressions")
	}

	bound := map[string]bool{}
	ops := make([]Operator, 0, len(expressions))

	first := expressions[0]
	ops = append(ops, NewScanOperator(store, first))
	bound[first.Source()] = true
	if first.HasEdge() {
		// A fused scan+traversal (or, when unlabeled, a bare opener
		// edge) still needs its edge walked to bind the destination.
		ops = append(ops, traverseOperator(store, first, false))
	}
	bound[first.Destination()] = true

	for _, e := range expressions[1:] {
		if !bound[e.Source()] {
			return nil, errors.Errorf("expression with source %q is not resolved by any predecessor", e.Source())
		}
		ops = append(ops, traverseOperator(store, e, bound[e.Destination()]))
		bound[e.Destination()] = true
	}

	return ops, nil
}

// traverseOperator picks the right operator for a traversal step,
// including the opener's edge: variable-length hops always breadth-first expand;
// a fixed single hop either filters (destination already bound) or
// binds a fresh alias (destination not yet bound).
func traverseOperator(store storage.GraphStore, e *algebra.Expression, destinationBound bool) Operator {
	if e.Hops().Min != 1 || e.Hops().Max != 1 {
		return NewVariableLengthTraverseOperator(store, e)
	}
	if destinationBound {
		return NewExpandIntoOperator(store, e)
	}
	return NewConditionalTraverseOperator(store, e)
}
