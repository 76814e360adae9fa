package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
planner:
  maintainTransposeMatrices: true
store:
  kind: csv
  path: ./data
`), 0o644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.MaintainTransposeMatrices())
	assert.Equal(t, "csv", cfg.Store.Kind)
	assert.Equal(t, "./data", cfg.Store.Path)
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestGetString_WithDefault(t *testing.T) {
	cfg := map[string]interface{}{}
	val, err := GetString(cfg, "path", WithDefault("./data"))
	require.NoError(t, err)
	assert.Equal(t, "./data", val)
}

func TestGetString_NotFoundNoDefault(t *testing.T) {
	cfg := map[string]interface{}{}
	_, err := GetString(cfg, "path")
	assert.Error(t, err)
}

func TestGetInterface_Nested(t *testing.T) {
	cfg := map[string]interface{}{
		"store": map[string]interface{}{
			"path": "./data",
		},
	}
	val, err := GetInterface(cfg, "store.path")
	require.NoError(t, err)
	assert.Equal(t, "./data", val)
}
