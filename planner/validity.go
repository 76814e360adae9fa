package planner

import (
	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/boundvars"
)

// endpointResolved reports whether position i's expression shares an
// endpoint with some predecessor at position j < i (spec.md §4.2's
// chaining rule): source(j) == source(i), destination(j) == source(i),
// source(j) == destination(i), or destination(j) == destination(i).
func endpointResolved(ordering []*algebra.Expression, i int) bool {
	ei := ordering[i]
	for j := 0; j < i; j++ {
		ej := ordering[j]
		if ej.Source() == ei.Source() ||
			ej.Destination() == ei.Source() ||
			ej.Source() == ei.Destination() ||
			ej.Destination() == ei.Destination() {
			return true
		}
	}
	return false
}

// sourceResolved is the chaining predicate restricted to the
// source side only: whether source(i) equals the source or
// destination of some predecessor j < i. Used by scoring's penalty
// (§4.3) and by the sequence resolver's phase 1 (§4.4).
func sourceResolved(ordering []*algebra.Expression, i int) bool {
	ei := ordering[i]
	for j := 0; j < i; j++ {
		ej := ordering[j]
		if ej.Source() == ei.Source() || ej.Destination() == ei.Source() {
			return true
		}
	}
	return false
}

// isOpenerValid implements spec.md §4.2's opener rule: the first
// expression may not be a bare (single-operand), edge-bearing
// expression whose source or destination node carries a label — that
// label-scan must come first instead.
func isOpenerValid(e0 *algebra.Expression, labeledAliases boundvars.Set) bool {
	if !e0.HasEdge() {
		return true
	}
	if e0.OperandCount() != 1 {
		return true
	}
	if labeledAliases.Contains(e0.Source()) || labeledAliases.Contains(e0.Destination()) {
		return false
	}
	return true
}

// isValidOrdering reports whether ordering satisfies both the
// chaining rule and the opener rule of spec.md §4.2.
func isValidOrdering(ordering []*algebra.Expression, labeledAliases boundvars.Set) bool {
	for i := 1; i < len(ordering); i++ {
		if !endpointResolved(ordering, i) {
			return false
		}
	}
	return isOpenerValid(ordering[0], labeledAliases)
}
