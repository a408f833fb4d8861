package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
		want  string
	}{
		{name: "extension", input: "data.csv", index: 3, want: "data_3.csv"},
		{name: "no extension", input: "data", index: 3, want: "data_3"},
		{name: "split on final dot only", input: "a.b.csv", index: 0, want: "a.b_0.csv"},
		{name: "multi digit index", input: "log.txt", index: 12, want: "log_12.txt"},
		{name: "dot in directory only", input: filepath.Join("dir.v2", "data"), index: 1, want: filepath.Join("dir.v2", "data_1")},
		{name: "dot in directory and file", input: filepath.Join("dir.v2", "data.tsv"), index: 1, want: filepath.Join("dir.v2", "data_1.tsv")},
		{name: "hidden file", input: ".env", index: 0, want: "_0.env"},
		{name: "trailing dot", input: "data.", index: 2, want: "data_2."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkFilename(tt.input, tt.index))
		})
	}
}

func TestChunkFilenameIsDeterministic(t *testing.T) {
	assert.Equal(t, ChunkFilename("x.log", 7), ChunkFilename("x.log", 7))
	assert.NotEqual(t, ChunkFilename("x.log", 7), ChunkFilename("x.log", 8))
}

func TestSplitExtension(t *testing.T) {
	stem, ext, ok := SplitExtension("archive.tar.gz")
	assert.True(t, ok)
	assert.Equal(t, "archive.tar", stem)
	assert.Equal(t, "gz", ext)

	stem, ext, ok = SplitExtension(".env")
	assert.True(t, ok)
	assert.Empty(t, stem)
	assert.Equal(t, "env", ext)

	stem, ext, ok = SplitExtension(filepath.Join("a.b", "c"))
	assert.False(t, ok)
	assert.Equal(t, filepath.Join("a.b", "c"), stem)
	assert.Empty(t, ext)
}
