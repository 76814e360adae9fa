package planner

import "github.com/cube2222/graphtraverse/algebra"

// resolveSequence is phase 1 of spec.md §4.4: for every position after
// the first, transpose the expression in place if its source isn't
// resolved by any predecessor, so downstream traversal operators can
// assume the chain invariant (spec.md P2/P3).
func resolveSequence(ordering []*algebra.Expression) {
	for i := 1; i < len(ordering); i++ {
		if !sourceResolved(ordering, i) {
			ordering[i].Transpose()
		}
	}
}

// selectEntryPoint is phase 2 of spec.md §4.4: decide whether to
// transpose the opener so execution starts from the cheapest endpoint.
func selectEntryPoint(ordering []*algebra.Expression, inputs ScoringInputs) {
	e0 := ordering[0]

	if e0.OperandCount() == 1 && e0.Source() == e0.Destination() {
		return
	}

	if inputs.BoundVars != nil {
		if inputs.BoundVars.Contains(e0.Source()) {
			return
		}
		if inputs.BoundVars.Contains(e0.Destination()) {
			e0.Transpose()
			return
		}
	}

	srcScore := 0
	if inputs.FilteredAliases.Contains(e0.Source()) {
		srcScore += F
	}
	if inputs.LabeledAliases.Contains(e0.Source()) {
		srcScore += L
	}

	destScore := 0
	if inputs.FilteredAliases.Contains(e0.Destination()) {
		destScore += F
	}
	if inputs.LabeledAliases.Contains(e0.Destination()) {
		destScore += L
	}

	if destScore > srcScore {
		e0.Transpose()
	}
}
