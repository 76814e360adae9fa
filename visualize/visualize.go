// Package visualize renders a chosen expression ordering as a DOT
// graph, adapted from the teacher's graph package (which renders a
// physical operator tree as a record-shaped graphviz tree) to a
// left-to-right chain of traversal steps instead of a tree.
package visualize

import (
	"fmt"
	"strings"

	"github.com/awalterschulze/gographviz"

	"github.com/cube2222/graphtraverse/algebra"
)

// Show renders ordering as a directed graphviz graph: one record node
// per alias, one edge per edge-bearing expression (a bare label scan
// adds only its node), labeled with its position in the chain and
// drawn dashed when transposed.
func Show(ordering []*algebra.Expression) (*gographviz.Graph, error) {
	graph := gographviz.NewGraph()
	graph.Directed = true
	if err := graph.AddAttr("", "rankdir", "LR"); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	ensureNode := func(alias, label string) error {
		if seen[alias] {
			return nil
		}
		seen[alias] = true
		display := alias
		if label != "" {
			display = fmt.Sprintf("%s:%s", alias, label)
		}
		return graph.AddNode("", nodeID(alias), map[string]string{
			"shape": "record",
			"label": fmt.Sprintf("\"%s\"", display),
		})
	}

	for i, e := range ordering {
		if err := ensureNode(e.Source(), e.Label()); err != nil {
			return nil, err
		}
		if err := ensureNode(e.Destination(), e.DestinationLabel()); err != nil {
			return nil, err
		}
		if !e.HasEdge() {
			continue
		}

		attrs := map[string]string{
			"label": fmt.Sprintf("\"#%d %s\"", i, edgeLabel(e)),
		}
		if e.IsTransposed() {
			attrs["style"] = "dashed"
		}
		if err := graph.AddEdge(nodeID(e.Source()), nodeID(e.Destination()), true, attrs); err != nil {
			return nil, err
		}
	}

	return graph, nil
}

// String renders ordering directly to a DOT-format string.
func String(ordering []*algebra.Expression) (string, error) {
	g, err := Show(ordering)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

func nodeID(alias string) string {
	return strings.Replace(alias, " ", "_", -1)
}

func edgeLabel(e *algebra.Expression) string {
	if len(e.RelTypes()) == 0 {
		return e.Edge()
	}
	return fmt.Sprintf("%s:%s", e.Edge(), strings.Join(e.RelTypes(), "|"))
}
