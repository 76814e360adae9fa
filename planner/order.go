// Package planner implements the traversal-order planner: given a set
// of algebraic expressions describing a graph pattern match, it
// decides the order in which they will be evaluated and, for each,
// whether to transpose it so execution is cheapest.
//
// The planner is single-threaded, synchronous, and pure: it mutates
// only the caller-owned expression slice passed to OrderExpressions,
// at the well-defined phases spec.md §4.4 describes, and never touches
// the query graph or filter tree the caller derived its ScoringInputs
// from. Multiple calls may run concurrently on disjoint inputs without
// coordination.
package planner

import "github.com/cube2222/graphtraverse/algebra"

// OrderExpressions mutates expressions in place: it reorders them and
// transposes individual expressions so that (a) every expression after
// the first has its source resolved by some predecessor, and (b) the
// ordering scores highest against the heuristic cost model of
// spec.md §4.3. len(expressions) must be >= 1; a PlannerBug panic
// signals a precondition violation (spec.md §7).
func OrderExpressions(expressions []*algebra.Expression, inputs ScoringInputs) {
	n := len(expressions)
	if n == 0 {
		panic(newPlannerBug("order_expressions called with an empty expression array"))
	}

	if n == 1 && expressions[0].OperandCount() == 1 && expressions[0].Source() == expressions[0].Destination() {
		// spec.md invariant 4: a single self-loop scan is left untouched.
		return
	}

	orderings := generatePermutations(expressions)

	var winner []*algebra.Expression
	if len(orderings) == 1 {
		// spec.md §4.5 step 4: nothing to validate or score.
		winner = orderings[0]
	} else {
		winner = selectBestOrdering(orderings, inputs)
	}

	copy(expressions, winner)
	resolveSequence(expressions)
	selectEntryPoint(expressions, inputs)
}

// selectBestOrdering filters orderings down to the valid ones
// (spec.md §4.2), scores each (spec.md §4.3), and returns the winner:
// the first ordering to reach the maximum score, with ties broken
// lexicographically by source alias (spec.md §9's suggested
// determinism fix, resolved in SPEC_FULL.md).
func selectBestOrdering(orderings [][]*algebra.Expression, inputs ScoringInputs) []*algebra.Expression {
	var best []*algebra.Expression
	bestScore := 0

	found := false
	for _, ordering := range orderings {
		if !isValidOrdering(ordering, inputs.LabeledAliases) {
			continue
		}

		s := score(ordering, inputs)
		switch {
		case !found:
			best, bestScore, found = ordering, s, true
		case s > bestScore:
			best, bestScore = ordering, s
		case s == bestScore && lexLess(ordering, best):
			best = ordering
		}
	}

	if !found {
		panic(newPlannerBug("no valid ordering survived the chaining/opener rules"))
	}
	return best
}

// lexLess reports whether a should be preferred to b as a
// deterministic tie-break: the first position whose source alias
// differs decides it.
func lexLess(a, b []*algebra.Expression) bool {
	for i := range a {
		if as, bs := a[i].Source(), b[i].Source(); as != bs {
			return as < bs
		}
	}
	return false
}
