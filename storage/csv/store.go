// Package csv implements storage.GraphStore by reading two CSV files —
// one row per node, one row per edge — the way the teacher's
// datasources/csv package reads one CSV file per table, generalized
// from flat records to the node/edge shape a graph store needs.
package csv

import (
	"encoding/csv"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/cube2222/graphtraverse/config"
	"github.com/cube2222/graphtraverse/storage"
)

func init() {
	storage.Register("csv", func(cfg interface{}) (storage.GraphStore, error) {
		sc, ok := cfg.(config.StoreConfig)
		if !ok {
			return nil, errors.Errorf("csv store expects a config.StoreConfig, got %T", cfg)
		}
		return NewFromConfig(sc)
	})
}

// Store reads its nodes and edges from two CSV files, loaded fully
// into memory on construction.
type Store struct {
	nodes []storage.StoredNode
	edges []storage.StoredEdge
}

// NewFromConfig builds a Store from a config.StoreConfig's Extras map:
// "nodesPath" and "edgesPath" name the two CSV files, "separator"
// defaults to ",", and "headerRow" defaults to true.
func NewFromConfig(cfg config.StoreConfig) (*Store, error) {
	nodesPath, err := config.GetString(cfg.Extras, "nodesPath")
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get nodesPath")
	}
	edgesPath, err := config.GetString(cfg.Extras, "edgesPath")
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get edgesPath")
	}
	separator, err := config.GetString(cfg.Extras, "separator", config.WithDefault(","))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get separator")
	}
	headerRow, err := config.GetBool(cfg.Extras, "headerRow", config.WithDefault(true))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get headerRow")
	}
	sep, _ := utf8.DecodeRune([]byte(separator))
	if sep == utf8.RuneError {
		return nil, errors.Errorf("couldn't decode separator %q to rune", separator)
	}

	nodes, err := readNodes(nodesPath, sep, headerRow)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read nodes CSV")
	}
	edges, err := readEdges(edgesPath, sep, headerRow)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read edges CSV")
	}

	return &Store{nodes: nodes, edges: edges}, nil
}

// New builds a Store directly from in-memory rows, primarily for tests.
func New(nodes []storage.StoredNode, edges []storage.StoredEdge) *Store {
	return &Store{nodes: nodes, edges: edges}
}

// readNodes expects columns: id,label,prop1,prop2,... with the header
// row (if present) naming the property columns.
func readNodes(path string, sep rune, headerRow bool) ([]storage.StoredNode, error) {
	rows, header, err := readRows(path, sep, headerRow)
	if err != nil {
		return nil, err
	}

	out := make([]storage.StoredNode, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return nil, errors.New("node row must have at least id and label columns")
		}
		props := make(storage.PropertyMap, len(row)-2)
		for i := 2; i < len(row); i++ {
			props[columnName(header, i)] = parseValue(row[i])
		}
		out = append(out, storage.StoredNode{ID: row[0], Label: row[1], Properties: props})
	}
	return out, nil
}

// readEdges expects columns: id,from,to,relType,prop1,prop2,...
func readEdges(path string, sep rune, headerRow bool) ([]storage.StoredEdge, error) {
	rows, header, err := readRows(path, sep, headerRow)
	if err != nil {
		return nil, err
	}

	out := make([]storage.StoredEdge, 0, len(rows))
	for _, row := range rows {
		if len(row) < 4 {
			return nil, errors.New("edge row must have at least id, from, to, and relType columns")
		}
		props := make(storage.PropertyMap, len(row)-4)
		for i := 4; i < len(row); i++ {
			props[columnName(header, i)] = parseValue(row[i])
		}
		out = append(out, storage.StoredEdge{ID: row[0], From: row[1], To: row[2], RelType: row[3], Properties: props})
	}
	return out, nil
}

func readRows(path string, sep rune, headerRow bool) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.TrimLeadingSpace = true

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "couldn't read CSV rows")
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	var header []string
	rows := all
	if headerRow {
		header = all[0]
		rows = all[1:]
	}
	return rows, header, nil
}

func columnName(header []string, i int) string {
	if header != nil && i < len(header) {
		return header[i]
	}
	return "col" + strconv.Itoa(i)
}

func parseValue(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
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
