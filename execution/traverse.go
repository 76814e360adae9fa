package execution

import (
	"github.com/pkg/errors"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/storage"
)

// ConditionalTraverseOperator extends each source row along the
// expression's edge, binding a fresh destination alias per matching
// neighbor. It reverses From/To lookups when the expression is
// transposed, the runtime counterpart to the planner flipping an
// expression's source and destination at plan time.
type ConditionalTraverseOperator struct {
	store            storage.GraphStore
	source           string
	destination      string
	destinationLabel string
	relTypes         []string
	transposed       bool
}

// NewConditionalTraverseOperator builds the traverse operator for e,
// whose destination is not yet bound by any predecessor.
func NewConditionalTraverseOperator(store storage.GraphStore, e *algebra.Expression) *ConditionalTraverseOperator {
	return &ConditionalTraverseOperator{
		store:            store,
		source:           e.Source(),
		destination:      e.Destination(),
		destinationLabel: e.DestinationLabel(),
		relTypes:         e.RelTypes(),
		transposed:       e.IsTransposed(),
	}
}

func (op *ConditionalTraverseOperator) Next(source []Row) ([]Row, error) {
	out := make([]Row, 0, len(source))
	for _, row := range source {
		fromID, ok := row[op.source]
		if !ok {
			return nil, errors.Errorf("row is missing bound alias %q", op.source)
		}

		var edges []storage.StoredEdge
		var err error
		if op.transposed {
			edges, err = incomingEdges(op.store, fromID, op.relTypes)
		} else {
			edges, err = op.store.OutgoingEdges(fromID, op.relTypes)
		}
		if err != nil {
			return nil, errors.Wrap(err, "couldn't fetch neighbor edges")
		}

		for _, e := range edges {
			neighbor := e.To
			if op.transposed {
				neighbor = e.From
			}
			ok, err := matchesLabel(op.store, neighbor, op.destinationLabel)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			extended := extendRow(row)
			extended[op.destination] = neighbor
			out = append(out, extended)
		}
	}
	return out, nil
}

// ExpandIntoOperator is ConditionalTraverse's counterpart for the case
// where the destination is already bound: instead of producing a new
// binding, it filters rows down to those where an edge actually
// connects the two already-bound aliases.
type ExpandIntoOperator struct {
	store            storage.GraphStore
	source           string
	destination      string
	destinationLabel string
	relTypes         []string
	transposed       bool
}

// NewExpandIntoOperator builds the filter operator for e, whose
// destination has already been bound by an earlier expression in the
// chain (a pattern with a repeated alias, or a cycle).
func NewExpandIntoOperator(store storage.GraphStore, e *algebra.Expression) *ExpandIntoOperator {
	return &ExpandIntoOperator{
		store:            store,
		source:           e.Source(),
		destination:      e.Destination(),
		destinationLabel: e.DestinationLabel(),
		relTypes:         e.RelTypes(),
		transposed:       e.IsTransposed(),
	}
}

func (op *ExpandIntoOperator) Next(source []Row) ([]Row, error) {
	out := make([]Row, 0, len(source))
	for _, row := range source {
		fromID, ok := row[op.source]
		if !ok {
			return nil, errors.Errorf("row is missing bound alias %q", op.source)
		}
		toID, ok := row[op.destination]
		if !ok {
			return nil, errors.Errorf("row is missing bound alias %q", op.destination)
		}
		labelOK, err := matchesLabel(op.store, toID, op.destinationLabel)
		if err != nil {
			return nil, err
		}
		if !labelOK {
			continue
		}

		var edges []storage.StoredEdge
		if op.transposed {
			edges, err = incomingEdges(op.store, fromID, op.relTypes)
		} else {
			edges, err = op.store.OutgoingEdges(fromID, op.relTypes)
		}
		if err != nil {
			return nil, errors.Wrap(err, "couldn't fetch neighbor edges")
		}

		for _, e := range edges {
			neighbor := e.To
			if op.transposed {
				neighbor = e.From
			}
			if neighbor == toID {
				out = append(out, row)
				break
			}
		}
	}
	return out, nil
}

// VariableLengthTraverseOperator handles a *1..N (or unbounded)
// traversal by breadth-first expanding from each source binding up to
// Max hops, deduplicating destinations already reached at a shorter
// depth.
type VariableLengthTraverseOperator struct {
	store            storage.GraphStore
	source           string
	destination      string
	destinationLabel string
	relTypes         []string
	transposed       bool
	min, max         int // max == -1 means unbounded.
}

// NewVariableLengthTraverseOperator builds the traverse operator for a
// *min..max edge.
func NewVariableLengthTraverseOperator(store storage.GraphStore, e *algebra.Expression) *VariableLengthTraverseOperator {
	return &VariableLengthTraverseOperator{
		store:            store,
		source:           e.Source(),
		destination:      e.Destination(),
		destinationLabel: e.DestinationLabel(),
		relTypes:         e.RelTypes(),
		transposed:       e.IsTransposed(),
		min:              e.Hops().Min,
		max:              e.Hops().Max,
	}
}

func (op *VariableLengthTraverseOperator) Next(source []Row) ([]Row, error) {
	out := make([]Row, 0, len(source))
	for _, row := range source {
		start, ok := row[op.source]
		if !ok {
			return nil, errors.Errorf("row is missing bound alias %q", op.source)
		}

		reached, err := op.reachableWithinHops(start)
		if err != nil {
			return nil, err
		}

		for id, depth := range reached {
			if depth < op.min {
				continue
			}
			labelOK, err := matchesLabel(op.store, id, op.destinationLabel)
			if err != nil {
				return nil, err
			}
			if !labelOK {
				continue
			}
			extended := extendRow(row)
			extended[op.destination] = id
			out = append(out, extended)
		}
	}
	return out, nil
}

// reachableWithinHops breadth-first expands from start, recording the
// shallowest depth each node is first reached at, up to op.max hops
// (or until the frontier empties, if op.max is unbounded).
func (op *VariableLengthTraverseOperator) reachableWithinHops(start string) (map[string]int, error) {
	depth := map[string]int{}
	frontier := []string{start}
	for hop := 1; op.max < 0 || hop <= op.max; hop++ {
		if len(frontier) == 0 {
			break
		}
		var next []string
		for _, id := range frontier {
			var edges []storage.StoredEdge
			var err error
			if op.transposed {
				edges, err = incomingEdges(op.store, id, op.relTypes)
			} else {
				edges, err = op.store.OutgoingEdges(id, op.relTypes)
			}
			if err != nil {
				return nil, errors.Wrap(err, "couldn't fetch neighbor edges")
			}
			for _, e := range edges {
				neighbor := e.To
				if op.transposed {
					neighbor = e.From
				}
				if _, seen := depth[neighbor]; seen {
					continue
				}
				depth[neighbor] = hop
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	return depth, nil
}

// incomingEdges has no direct GraphStore counterpart (the interface
// only exposes outgoing edges), so a transposed traversal scans every
// node's outgoing edges and keeps the ones landing on id. Fine for the
// in-memory csv/json stores; a real backend would index this.
func incomingEdges(store storage.GraphStore, id string, relTypes []string) ([]storage.StoredEdge, error) {
	nodes, err := store.ScanNodes("")
	if err != nil {
		return nil, err
	}
	var out []storage.StoredEdge
	for _, n := range nodes {
		edges, err := store.OutgoingEdges(n.ID, relTypes)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if e.To == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// matchesLabel reports whether id's stored node carries label. An
// empty label means the pattern places no constraint on this
// endpoint, so every node matches.
func matchesLabel(store storage.GraphStore, id, label string) (bool, error) {
	if label == "" {
		return true, nil
	}
	node, err := store.NodeByID(id)
	if err != nil {
		return false, errors.Wrapf(err, "couldn't look up node %q for a label check", id)
	}
	return node.Label == label, nil
}

func extendRow(row Row) Row {
	out := make(Row, len(row)+1)
	for k, v := range row {
		out[k] = v
	}
	return out
}
