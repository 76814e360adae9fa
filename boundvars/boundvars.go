// Package boundvars names the alias-set type used both for the
// caller-supplied bound-variable set and for the filter tree's
// modified-alias set, so planner never imports golang-set directly.
package boundvars

import mapset "github.com/deckarep/golang-set/v2"

// Set is a set of graph-pattern aliases.
type Set = mapset.Set[string]

// New returns a Set containing aliases.
func New(aliases ...string) Set {
	return mapset.NewSet(aliases...)
}

// Empty returns an empty Set.
func Empty() Set {
	return mapset.NewSet[string]()
}
