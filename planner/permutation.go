package planner

import "github.com/cube2222/graphtraverse/algebra"

// generatePermutations enumerates every ordering of expressions: a
// recursive swap over a single working array (swap l with each index
// in [l, n-1], recurse on l+1, unswap), cloning the working array into
// the output each time it reaches a full-length prefix. Order of
// production is stable under identical input; after the full
// traversal the working array is restored to its original contents.
func generatePermutations(expressions []*algebra.Expression) [][]*algebra.Expression {
	n := len(expressions)
	working := make([]*algebra.Expression, n)
	copy(working, expressions)

	var orderings [][]*algebra.Expression

	var recurse func(l int)
	recurse = func(l int) {
		if l == n-1 {
			clone := make([]*algebra.Expression, n)
			copy(clone, working)
			orderings = append(orderings, clone)
			return
		}
		for i := l; i < n; i++ {
			working[l], working[i] = working[i], working[l]
			recurse(l + 1)
			working[l], working[i] = working[i], working[l]
		}
	}
	recurse(0)

	return orderings
}
