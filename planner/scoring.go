package planner

import (
	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/boundvars"
)

// Scoring constants from spec.md §4.3: T is the per-transpose penalty;
// L, F, and B are rewards for a labeled, filtered, and bound endpoint
// respectively, each a strict multiple of the one below it so a bound
// endpoint always outweighs a filtered one, which always outweighs a
// labeled one (spec.md P8).
const (
	T = 1
	L = 2 * T
	F = 4 * T
	B = 8 * F
)

// ScoringInputs carries everything the scoring function and the
// entry-point selector need about the surrounding graph and query,
// precomputed once by the caller so planner never has to call back
// into the query graph mid-search (spec.md §9's "node_by_alias is
// unwisely expensive" note). FilteredAliases and LabeledAliases are
// always non-nil, possibly empty, sets. BoundVars is nil when the
// caller has no bound-variable set to supply at all, and non-nil
// (possibly empty) when one is supplied — spec.md §4.3/§4.4
// distinguish "supplied but empty" from "not supplied".
type ScoringInputs struct {
	FilteredAliases           boundvars.Set
	LabeledAliases            boundvars.Set
	BoundVars                 boundvars.Set
	MaintainTransposeMatrices bool
}

// score assigns ordering an integer score: reward minus penalty
// (spec.md §4.3).
func score(ordering []*algebra.Expression, inputs ScoringInputs) int {
	return reward(ordering, inputs) - penalty(ordering, inputs)
}

func penalty(ordering []*algebra.Expression, inputs ScoringInputs) int {
	if inputs.MaintainTransposeMatrices {
		return 0
	}

	total := T * ordering[0].TransposeCount()
	for i := 1; i < len(ordering); i++ {
		ei := ordering[i]
		if sourceResolved(ordering, i) {
			total += T * ei.TransposeCount()
		} else {
			total += T * (ei.OperandCount() - ei.TransposeCount())
		}
	}
	return total
}

func reward(ordering []*algebra.Expression, inputs ScoringInputs) int {
	n := len(ordering)
	total := 0
	for i, ei := range ordering {
		factor := n - i
		if inputs.BoundVars != nil {
			if inputs.BoundVars.Contains(ei.Source()) {
				total += B * factor
			}
			if inputs.BoundVars.Contains(ei.Destination()) {
				total += B * factor
			}
		}
		if inputs.FilteredAliases.Contains(ei.Source()) {
			total += F * factor
		}
		if inputs.FilteredAliases.Contains(ei.Destination()) {
			total += F * factor
		}
		if inputs.LabeledAliases.Contains(ei.Source()) {
			total += L * factor
		}
	}
	return total
}
