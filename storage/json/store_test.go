package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/graphtraverse/config"
)

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	doc := `{
		"nodes": [
			{"id": "a1", "label": "Person", "properties": {"name": "Alice"}},
			{"id": "b1", "label": "Person", "properties": {"name": "Bob"}}
		],
		"edges": [
			{"id": "e1", "from": "a1", "to": "b1", "relType": "KNOWS"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, err := NewFromConfig(config.StoreConfig{Path: path})
	require.NoError(t, err)

	nodes, err := store.ScanNodes("Person")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	edges, err := store.OutgoingEdges("a1", nil)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "KNOWS", edges[0].RelType)
}

func TestScanNodes_NoLabelFilterReturnsAll(t *testing.T) {
	store := New(nil, nil)
	nodes, err := store.ScanNodes("")
	require.NoError(t, err)
	assert.Len(t, nodes, 0)
}
