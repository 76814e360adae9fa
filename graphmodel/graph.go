// Package graphmodel implements the opaque query graph the planner
// reads: a mapping from alias to either a node (with an optional
// label) or an edge (with hop bounds, a relationship-type filter, and
// a bidirectionality flag).
package graphmodel

// Node is a graph-pattern node bound to an alias.
type Node struct {
	Alias string
	Label string // "" if the pattern doesn't constrain this node's label.
}

// HasLabel reports whether this node's pattern carries a label constraint.
func (n Node) HasLabel() bool { return n.Label != "" }

// Edge is a graph-pattern edge bound to an alias.
type Edge struct {
	Alias         string
	MinHops       int
	MaxHops       int
	RelTypes      []string
	Bidirectional bool
}

// QueryGraph maps pattern aliases to the node or edge they refer to.
// Exactly one of NodeByAlias/EdgeByAlias will report ok=true for any
// alias that appears in the pattern.
type QueryGraph struct {
	nodes map[string]Node
	edges map[string]Edge
}

// NewQueryGraph returns an empty graph; populate it with a Builder.
func NewQueryGraph() *QueryGraph {
	return &QueryGraph{
		nodes: make(map[string]Node),
		edges: make(map[string]Edge),
	}
}

// NodeByAlias looks up the node bound to alias.
func (g *QueryGraph) NodeByAlias(alias string) (Node, bool) {
	n, ok := g.nodes[alias]
	return n, ok
}

// EdgeByAlias looks up the edge bound to alias.
func (g *QueryGraph) EdgeByAlias(alias string) (Edge, bool) {
	e, ok := g.edges[alias]
	return e, ok
}

// Builder assembles a QueryGraph incrementally as a pattern is parsed,
// mirroring physical.DataSourceRepository's register/lookup shape.
type Builder struct {
	graph *QueryGraph
}

// NewBuilder starts a new, empty graph under construction.
func NewBuilder() *Builder {
	return &Builder{graph: NewQueryGraph()}
}

// AddNode registers a pattern node under alias, with an optional label.
func (b *Builder) AddNode(alias, label string) *Builder {
	b.graph.nodes[alias] = Node{Alias: alias, Label: label}
	return b
}

// AddEdge registers a pattern edge under alias.
func (b *Builder) AddEdge(alias string, minHops, maxHops int, bidirectional bool, relTypes ...string) *Builder {
	b.graph.edges[alias] = Edge{
		Alias:         alias,
		MinHops:       minHops,
		MaxHops:       maxHops,
		RelTypes:      append([]string(nil), relTypes...),
		Bidirectional: bidirectional,
	}
	return b
}

// Build finalizes and returns the constructed graph.
func (b *Builder) Build() *QueryGraph {
	return b.graph
}
