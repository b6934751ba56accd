package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathInfo(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	full, parent, err := GetPathInfo("sub/../prog.lsi")
	require.NoError(t, err)

	wantDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(parent)
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
	assert.Equal(t, "prog.lsi", filepath.Base(full))
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lsi")
	require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o644))

	t.Run("Exists", func(t *testing.T) {
		src, full, err := ReadSource(path)
		require.NoError(t, err)
		assert.Equal(t, "int x;\n", src)
		assert.True(t, filepath.IsAbs(full))
	})

	t.Run("Missing", func(t *testing.T) {
		_, _, err := ReadSource(filepath.Join(dir, "missing.lsi"))
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("Directory", func(t *testing.T) {
		_, _, err := ReadSource(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}
