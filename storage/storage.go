// Package storage defines the GraphStore contract the execution
// operators read through, and is implemented by storage/csv and
// storage/json the way the teacher's datasources package offers one
// implementation per backing file format behind a single interface.
package storage

import "github.com/pkg/errors"

// ErrNotFound is returned by GraphStore lookups that find nothing.
var ErrNotFound = errors.New("not found")

// PropertyMap is a node's or edge's property bag, keyed by property name.
type PropertyMap map[string]interface{}

// StoredNode is one node row as read from a backing store: an ID,
// its label, and its properties.
type StoredNode struct {
	ID         string
	Label      string
	Properties PropertyMap
}

// StoredEdge is one edge row: the IDs of the nodes it connects, its
// relationship type, and its properties.
type StoredEdge struct {
	ID         string
	From, To   string
	RelType    string
	Properties PropertyMap
}

// GraphStore is the narrow read surface the execution package needs:
// scan every node carrying a label, and, for a given node ID, list its
// outgoing edges optionally filtered by relationship type.
type GraphStore interface {
	// ScanNodes returns every stored node whose label matches, or
	// every node if label is "".
	ScanNodes(label string) ([]StoredNode, error)

	// OutgoingEdges returns the edges leaving nodeID whose relationship
	// type is in relTypes, or all outgoing edges if relTypes is empty.
	OutgoingEdges(nodeID string, relTypes []string) ([]StoredEdge, error)

	// NodeByID returns the node stored under id, or ErrNotFound.
	NodeByID(id string) (StoredNode, error)
}
