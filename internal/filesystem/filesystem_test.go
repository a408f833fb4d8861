package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFSCreateTruncates(t *testing.T) {
	var fsys Filesystem = DefaultFS{}
	path := filepath.Join(t.TempDir(), "out_0.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is long\n"), 0o644))

	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "new\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := fsys.Open(path)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "new\n", string(b))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())
}

func TestDefaultFSListAndRemove(t *testing.T) {
	var fsys Filesystem = DefaultFS{}
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())

	require.NoError(t, fsys.Remove(path))
	_, err = fsys.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	abs, err := fsys.Abs("relative.txt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestDefaultFSOpenMissing(t *testing.T) {
	_, err := DefaultFS{}.Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
