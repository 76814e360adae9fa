// Package compile turns a parsed MATCH clause into the inputs the
// traversal-order planner needs — an algebraic expression slice, a
// query graph, a filter tree, and a bound-variable set — and then
// calls planner.OrderExpressions, playing the role spec.md's
// "external collaborator" (the algebraic expression module together
// with the query compiler) plays relative to the planner.
package compile

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/boundvars"
	"github.com/cube2222/graphtraverse/filtertree"
	"github.com/cube2222/graphtraverse/graphmodel"
	"github.com/cube2222/graphtraverse/parser"
	"github.com/cube2222/graphtraverse/planner"
)

// Options configures a single compilation.
type Options struct {
	MaintainTransposeMatrices bool
	BoundVars                 boundvars.Set // nil if the caller has none bound yet.
	Debug                     bool
}

// Plan is the result of compiling and ordering a MATCH clause: the
// query graph it was built against and the expressions, in the
// planner's chosen execution order.
type Plan struct {
	Graph       *graphmodel.QueryGraph
	Expressions []*algebra.Expression
	FilterTree  filtertree.Node
}

// OrderExpressions is the literal external interface spec.md §6
// names: it takes a query graph, an expression array, a filter tree,
// and an optional bound-variable set, and mutates the array in place.
// It precomputes the label-presence and filtered-alias sets the
// planner needs (spec.md §9's node_by_alias hot-spot fix) and then
// delegates to planner.OrderExpressions, which never touches Graph or
// FilterTree directly.
func OrderExpressions(graph *graphmodel.QueryGraph, expressions []*algebra.Expression, filterTree filtertree.Node, boundVars boundvars.Set, maintainTransposeMatrices bool) {
	labeled := labeledAliases(graph, expressions)
	filtered := filtertree.CollectModifiedAliases(filterTree)

	planner.OrderExpressions(expressions, planner.ScoringInputs{
		FilteredAliases:           filtered,
		LabeledAliases:            labeled,
		BoundVars:                 boundVars,
		MaintainTransposeMatrices: maintainTransposeMatrices,
	})
}

// labeledAliases precomputes the set of aliases whose query-graph node
// carries a label, scanning each expression's endpoints exactly once
// rather than letting scoring call back into the graph per-ordering.
func labeledAliases(graph *graphmodel.QueryGraph, expressions []*algebra.Expression) boundvars.Set {
	out := boundvars.Empty()
	seen := map[string]bool{}
	for _, e := range expressions {
		for _, alias := range []string{e.Source(), e.Destination()} {
			if seen[alias] {
				continue
			}
			seen[alias] = true
			if n, ok := graph.NodeByAlias(alias); ok && n.HasLabel() {
				out.Add(alias)
			}
		}
	}
	return out
}

// Compile parses query, builds its query graph, filter tree, and
// algebraic expressions, and runs the planner over them, returning the
// resulting Plan.
func Compile(query string, opts Options) (*Plan, error) {
	clause, err := parser.Parse(query)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse query")
	}

	graph, expressions, err := build(clause)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't build query graph")
	}

	filterTree := filtertree.And()
	if clause.Where != nil {
		filterTree = translateCondition(*clause.Where)
	}

	if opts.Debug {
		fmt.Println("compiled query graph:")
		spew.Dump(graph)
	}

	OrderExpressions(graph, expressions, filterTree, opts.BoundVars, opts.MaintainTransposeMatrices)

	return &Plan{Graph: graph, Expressions: expressions, FilterTree: filterTree}, nil
}

// build assembles a query graph and an unordered algebraic expression
// for every edge in the parsed pattern, fusing every labeled node's
// scan into each edge that touches it, on that node's side of the
// edge, so the opener rule (spec.md §4.2) has a legal opener available
// and every label constraint, not just the first one encountered,
// survives into execution however the planner orders and transposes
// the expressions.
func build(clause *parser.MatchClause) (*graphmodel.QueryGraph, []*algebra.Expression, error) {
	if len(clause.Nodes) == 0 {
		return nil, nil, errors.New("pattern has no nodes")
	}

	builder := graphmodel.NewBuilder()
	for i, n := range clause.Nodes {
		alias := n.Alias
		if alias == "" {
			alias = fmt.Sprintf("_anon%d", i)
		}
		builder.AddNode(alias, n.Label)
	}
	for i, e := range clause.Edges {
		alias := e.Alias
		if alias == "" {
			alias = fmt.Sprintf("_edge%d", i)
		}
		builder.AddEdge(alias, e.MinHops, e.MaxHops, e.Direction == parser.DirectionEither, e.RelTypes...)
	}
	graph := builder.Build()

	if len(clause.Edges) == 0 {
		n := clause.Nodes[0]
		alias := aliasOrAnon(n.Alias, 0)
		return graph, []*algebra.Expression{algebra.NewScan(alias, n.Label)}, nil
	}

	expressions := make([]*algebra.Expression, 0, len(clause.Edges))
	for i, e := range clause.Edges {
		from := aliasOrAnon(clause.Nodes[i].Alias, i)
		to := aliasOrAnon(clause.Nodes[i+1].Alias, i+1)
		// Both endpoints carry their own label, so whichever expression
		// ends up binding a node — as the opener's scanned source or as
		// a traversal's destination — checks that node's label.
		fromLabel := clause.Nodes[i].Label
		toLabel := clause.Nodes[i+1].Label

		if e.Direction == parser.DirectionLeft {
			from, to = to, from
			fromLabel, toLabel = toLabel, fromLabel
		}

		hops := algebra.HopRange{Min: e.MinHops, Max: e.MaxHops}
		edgeAlias := e.Alias
		if edgeAlias == "" {
			edgeAlias = fmt.Sprintf("_edge%d", i)
		}

		switch {
		case fromLabel != "" && toLabel != "":
			expressions = append(expressions, algebra.NewDoublyLabeledTraversal(from, fromLabel, edgeAlias, to, toLabel, hops, e.RelTypes...))
		case fromLabel != "":
			expressions = append(expressions, algebra.NewFusedScanTraversal(from, fromLabel, edgeAlias, to, hops, e.RelTypes...))
		case toLabel != "":
			expressions = append(expressions, algebra.NewFusedTraversalScan(from, edgeAlias, to, toLabel, hops, e.RelTypes...))
		default:
			expressions = append(expressions, algebra.NewTraversal(from, edgeAlias, to, hops, e.RelTypes...))
		}
	}

	return graph, expressions, nil
}

func aliasOrAnon(alias string, index int) string {
	if alias != "" {
		return alias
	}
	return fmt.Sprintf("_anon%d", index)
}

func translateCondition(c parser.Condition) filtertree.Node {
	switch c.Kind {
	case parser.ConditionAnd:
		children := make([]filtertree.Node, len(c.Children))
		for i, child := range c.Children {
			children[i] = translateCondition(child)
		}
		return filtertree.And(children...)
	case parser.ConditionOr:
		children := make([]filtertree.Node, len(c.Children))
		for i, child := range c.Children {
			children[i] = translateCondition(child)
		}
		return filtertree.Or(children...)
	default:
		return filtertree.Compare(c.LeftAlias, c.RightAlias)
	}
}
