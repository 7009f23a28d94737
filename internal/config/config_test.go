package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRootsToCurrentDirectory(t *testing.T) {
	ws := Default()
	assert.Equal(t, []string{"."}, ws.Roots())
}

func TestLoadParsesStdlibRootAndSearchPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hbc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stdlib_root: ./stdlib\nsearch_paths:\n  - ./vendor\n  - ./local\n"), 0o644))

	ws, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./stdlib", ws.StdlibRoot)
	assert.Equal(t, []string{"./vendor", "./local", "./stdlib"}, ws.Roots())
}

func TestLoadDefaultsStdlibRootWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hbc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_paths: []\n"), 0o644))

	ws, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", ws.StdlibRoot)
}

func TestLoadErrorsOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}
