package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/graphtraverse/config"
)

func writeTempCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewFromConfig(t *testing.T) {
	nodesPath := writeTempCSV(t, "nodes.csv", "id,label,name\na1,Person,Alice\nb1,Person,Bob\n")
	edgesPath := writeTempCSV(t, "edges.csv", "id,from,to,relType\ne1,a1,b1,KNOWS\n")

	store, err := NewFromConfig(config.StoreConfig{Extras: map[string]interface{}{
		"nodesPath": nodesPath,
		"edgesPath": edgesPath,
	}})
	require.NoError(t, err)

	nodes, err := store.ScanNodes("Person")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Alice", nodes[0].Properties["name"])

	edges, err := store.OutgoingEdges("a1", nil)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "b1", edges[0].To)
}

func TestOutgoingEdges_FiltersByRelType(t *testing.T) {
	nodesPath := writeTempCSV(t, "nodes.csv", "id,label\na1,Person\nb1,Person\nc1,Person\n")
	edgesPath := writeTempCSV(t, "edges.csv", "id,from,to,relType\ne1,a1,b1,KNOWS\ne2,a1,c1,LIKES\n")

	store, err := NewFromConfig(config.StoreConfig{Extras: map[string]interface{}{
		"nodesPath": nodesPath,
		"edgesPath": edgesPath,
	}})
	require.NoError(t, err)

	edges, err := store.OutgoingEdges("a1", []string{"LIKES"})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "c1", edges[0].To)
}

func TestNodeByID_NotFound(t *testing.T) {
	nodesPath := writeTempCSV(t, "nodes.csv", "id,label\na1,Person\n")
	edgesPath := writeTempCSV(t, "edges.csv", "id,from,to,relType\n")

	store, err := NewFromConfig(config.StoreConfig{Extras: map[string]interface{}{
		"nodesPath": nodesPath,
		"edgesPath": edgesPath,
	}})
	require.NoError(t, err)

	_, err = store.NodeByID("missing")
	assert.Error(t, err)
}
