// Package json implements storage.GraphStore by reading a JSON
// document of the shape {"nodes": [...], "edges": [...]}, grounded on
// the teacher's datasources/json package's path/arrayFormat config
// fields, generalized to a graph's two record kinds instead of one.
package json

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/cube2222/graphtraverse/config"
	"github.com/cube2222/graphtraverse/storage"
)

type nodeRecord struct {
	ID         string                 `json:"id"`
	Label      string                 `json:"label"`
	Properties map[string]interface{} `json:"properties"`
}

type edgeRecord struct {
	ID         string                 `json:"id"`
	From       string                 `json:"from"`
	To         string                 `json:"to"`
	RelType    string                 `json:"relType"`
	Properties map[string]interface{} `json:"properties"`
}

type document struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

func init() {
	storage.Register("json", func(cfg interface{}) (storage.GraphStore, error) {
		sc, ok := cfg.(config.StoreConfig)
		if !ok {
			return nil, errors.Errorf("json store expects a config.StoreConfig, got %T", cfg)
		}
		return NewFromConfig(sc)
	})
}

// Store reads its nodes and edges from a single JSON document, loaded
// fully into memory on construction.
type Store struct {
	nodes []storage.StoredNode
	edges []storage.StoredEdge
}

// NewFromConfig builds a Store from a config.StoreConfig's Path field,
// which names the JSON document.
func NewFromConfig(cfg config.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store config is missing a path")
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "couldn't decode JSON document")
	}

	nodes := make([]storage.StoredNode, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, storage.StoredNode{ID: n.ID, Label: n.Label, Properties: storage.PropertyMap(n.Properties)})
	}
	edges := make([]storage.StoredEdge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edges = append(edges, storage.StoredEdge{ID: e.ID, From: e.From, To: e.To, RelType: e.RelType, Properties: storage.PropertyMap(e.Properties)})
	}

	return &Store{nodes: nodes, edges: edges}, nil
}

// New builds a Store directly from in-memory rows, primarily for tests.
func New(nodes []storage.StoredNode, edges []storage.StoredEdge) *Store {
	return &Store{nodes: nodes, edges: edges}
}

// ScanNodes implements storage.GraphStore.
func (s *Store) ScanNodes(label string) ([]storage.StoredNode, error) {
	if label == "" {
		return s.nodes, nil
	}
	out := make([]storage.StoredNode, 0)
	for _, n := range s.nodes {
		if n.Label == label {
			out = append(out, n)
		}
	}
	return out, nil
}

// OutgoingEdges implements storage.GraphStore.
func (s *Store) OutgoingEdges(nodeID string, relTypes []string) ([]storage.StoredEdge, error) {
	allowed := toSet(relTypes)
	out := make([]storage.StoredEdge, 0)
	for _, e := range s.edges {
		if e.From != nodeID {
			continue
		}
		if len(allowed) > 0 && !allowed[e.RelType] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// NodeByID implements storage.GraphStore.
func (s *Store) NodeByID(id string) (storage.StoredNode, error) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return storage.StoredNode{}, storage.ErrNotFound
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	out := make(map[string]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}
