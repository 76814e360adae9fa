package algebra

import "fmt"

// OperationKind tags the operand nodes that make up an Expression's
// internal operand tree.
type OperationKind int

const (
	// OperationScan is a leaf operand: a label scan or a bare edge traversal.
	OperationScan OperationKind = iota
	// OperationMultiply chains two operands, the way a traversal step
	// chains a label matrix with an edge matrix.
	OperationMultiply
	// OperationTranspose flips an operand's source/destination.
	OperationTranspose
)

// HopRange bounds a variable-length edge traversal. A fixed-length
// edge has Min == Max == 1.
type HopRange struct {
	Min, Max int
}

// operand is one node of the expression's internal matrix-operand
// tree. Only Left is used for OperationTranspose; both Left and Right
// are used for OperationMultiply; neither is used for OperationScan.
type operand struct {
	kind  OperationKind
	left  *operand
	right *operand
}

func (o *operand) clone() *operand {
	if o == nil {
		return nil
	}
	return &operand{
		kind:  o.kind,
		left:  o.left.clone(),
		right: o.right.clone(),
	}
}

func (o *operand) count(kind OperationKind) int {
	if o == nil {
		return 0
	}
	n := 0
	if o.kind == kind {
		n++
	}
	return n + o.left.count(kind) + o.right.count(kind)
}

func (o *operand) operandCount() int {
	if o == nil {
		return 0
	}
	if o.kind == OperationScan {
		return 1
	}
	return o.left.operandCount() + o.right.operandCount()
}

// transpose wraps the operand tree in a single new transpose node,
// mirroring how a real traversal reuses an existing matrix rather than
// rebuilding it.
func (o *operand) transpose() *operand {
	return &operand{kind: OperationTranspose, left: o}
}

// Expression is the opaque algebraic expression of a single traversal
// step or label scan, built from matrix operands with transpose and
// multiply operations (spec.md GLOSSARY). The planner only ever reads
// it through the getters below, transposes it in place, or clones it.
//
// sourceLabel and destinationLabel travel with whichever alias
// currently occupies that slot: Transpose swaps them along with
// source/destination, so Label() and DestinationLabel() always
// describe the expression's current source and destination, however
// many times it has been transposed.
type Expression struct {
	source      string
	destination string
	edge        string // empty if this is a label-only scan with no edge.
	hops        HopRange
	relTypes    []string

	sourceLabel      string // non-empty when source carries a label constraint.
	destinationLabel string // non-empty when destination carries a label constraint.

	isTransposed bool
	operand      *operand
}

// NewScan builds a label-only scan expression: a single operand
// carrying no edge, just a node label to match at alias.
func NewScan(alias, label string) *Expression {
	return &Expression{
		source:           alias,
		destination:      alias,
		sourceLabel:      label,
		destinationLabel: label,
		operand:          &operand{kind: OperationScan},
	}
}

// NewTraversal builds a single-operand edge traversal from source to
// destination over edge, with the given hop range and relationship
// type filter.
func NewTraversal(source, edge, destination string, hops HopRange, relTypes ...string) *Expression {
	return &Expression{
		source:      source,
		destination: destination,
		edge:        edge,
		hops:        hops,
		relTypes:    append([]string(nil), relTypes...),
		operand:     &operand{kind: OperationScan},
	}
}

// NewFusedScanTraversal builds a two-operand expression fusing a label
// scan of source with an edge traversal to destination, the shape the
// opener rule (spec.md §4.2) exempts from the bare-edge restriction.
func NewFusedScanTraversal(source, label, edge, destination string, hops HopRange, relTypes ...string) *Expression {
	return newLabeledTraversal(source, label, edge, destination, "", hops, relTypes...)
}

// NewFusedTraversalScan builds a two-operand expression fusing an edge
// traversal from source with a label scan of destination — the mirror
// of NewFusedScanTraversal for a pattern whose label sits on the
// traversal's destination instead of its source.
func NewFusedTraversalScan(source, edge, destination, label string, hops HopRange, relTypes ...string) *Expression {
	return newLabeledTraversal(source, "", edge, destination, label, hops, relTypes...)
}

// NewDoublyLabeledTraversal builds a two-operand expression fusing
// label scans on both endpoints of a single edge traversal.
func NewDoublyLabeledTraversal(source, sourceLabel, edge, destination, destinationLabel string, hops HopRange, relTypes ...string) *Expression {
	return newLabeledTraversal(source, sourceLabel, edge, destination, destinationLabel, hops, relTypes...)
}

func newLabeledTraversal(source, sourceLabel, edge, destination, destinationLabel string, hops HopRange, relTypes ...string) *Expression {
	return &Expression{
		source:           source,
		destination:      destination,
		edge:             edge,
		hops:             hops,
		relTypes:         append([]string(nil), relTypes...),
		sourceLabel:      sourceLabel,
		destinationLabel: destinationLabel,
		operand:          &operand{kind: OperationMultiply, left: &operand{kind: OperationScan}, right: &operand{kind: OperationScan}},
	}
}

// Source returns the source alias.
func (e *Expression) Source() string { return e.source }

// Destination returns the destination alias.
func (e *Expression) Destination() string { return e.destination }

// Edge returns the edge alias, or "" if this expression has no edge
// (a bare label scan).
func (e *Expression) Edge() string { return e.edge }

// HasEdge reports whether this is a traversal (as opposed to a
// label-only scan).
func (e *Expression) HasEdge() bool { return e.edge != "" }

// Label returns the label this expression's source carries, if any.
func (e *Expression) Label() string { return e.sourceLabel }

// DestinationLabel returns the label this expression's destination
// carries, if any.
func (e *Expression) DestinationLabel() string { return e.destinationLabel }

// Hops returns the variable-length bound of this expression's edge.
func (e *Expression) Hops() HopRange { return e.hops }

// RelTypes returns the relationship-type filter of this expression's edge.
func (e *Expression) RelTypes() []string { return e.relTypes }

// IsTransposed reports whether the top-level expression is currently
// in transposed form.
func (e *Expression) IsTransposed() bool { return e.isTransposed }

// OperandCount returns the number of leaf (Scan) operands in the
// expression's internal tree.
func (e *Expression) OperandCount() int { return e.operand.operandCount() }

// OperationCount returns how many operand-tree nodes of the given kind
// exist in the expression. Used by the planner exclusively with
// OperationTranspose to read the expression's transpose_count.
func (e *Expression) OperationCount(kind OperationKind) int { return e.operand.count(kind) }

// TransposeCount is shorthand for OperationCount(OperationTranspose).
func (e *Expression) TransposeCount() int { return e.OperationCount(OperationTranspose) }

// Transpose swaps source and destination (and their labels) and
// toggles IsTransposed, in place.
func (e *Expression) Transpose() {
	e.source, e.destination = e.destination, e.source
	e.sourceLabel, e.destinationLabel = e.destinationLabel, e.sourceLabel
	e.isTransposed = !e.isTransposed
	e.operand = e.operand.transpose()
}

// Clone returns a deep copy sharing no mutable state with e.
func (e *Expression) Clone() *Expression {
	return &Expression{
		source:           e.source,
		destination:      e.destination,
		edge:             e.edge,
		hops:             e.hops,
		relTypes:         append([]string(nil), e.relTypes...),
		sourceLabel:      e.sourceLabel,
		destinationLabel: e.destinationLabel,
		isTransposed:     e.isTransposed,
		operand:          e.operand.clone(),
	}
}

func (e *Expression) String() string {
	if !e.HasEdge() {
		return fmt.Sprintf("(%s:%s)", e.source, e.sourceLabel)
	}
	arrow := "->"
	if e.isTransposed {
		arrow = "<-"
	}
	return fmt.Sprintf("(%s)-[%s]%s(%s)", e.source, e.edge, arrow, e.destination)
}
