// Package filtertree implements the opaque filter tree collaborator:
// a predicate tree over graph-pattern aliases from which the set of
// "modified aliases" (the aliases filters reference) can be extracted
// once, before scoring.
package filtertree

import "github.com/cube2222/graphtraverse/boundvars"

// Kind tags a filtertree.Node.
type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindComparison
)

// Node is one node of the filter predicate tree. Only the fields
// relevant to its Kind are populated, mirroring physical.Expression's
// tagged-union shape.
type Node struct {
	Kind Kind

	// KindAnd / KindOr
	Children []Node

	// KindComparison: a predicate referencing one or two pattern
	// aliases, e.g. "a.age > 18" or "a.id = b.id".
	LeftAlias  string
	RightAlias string // "" if this comparison is alias-vs-literal.
}

// And builds a conjunction node.
func And(children ...Node) Node { return Node{Kind: KindAnd, Children: children} }

// Or builds a disjunction node.
func Or(children ...Node) Node { return Node{Kind: KindOr, Children: children} }

// Compare builds a leaf comparison node referencing leftAlias and,
// optionally, rightAlias.
func Compare(leftAlias, rightAlias string) Node {
	return Node{Kind: KindComparison, LeftAlias: leftAlias, RightAlias: rightAlias}
}

// CollectModifiedAliases walks the tree once and returns the set of
// aliases referenced anywhere in it.
func CollectModifiedAliases(root Node) boundvars.Set {
	out := boundvars.Empty()
	walkAliases(root, out)
	return out
}

func walkAliases(n Node, into boundvars.Set) {
	switch n.Kind {
	case KindAnd, KindOr:
		for _, child := range n.Children {
			walkAliases(child, into)
		}
	case KindComparison:
		if n.LeftAlias != "" {
			into.Add(n.LeftAlias)
		}
		if n.RightAlias != "" {
			into.Add(n.RightAlias)
		}
	}
}
